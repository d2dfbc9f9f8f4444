package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCertEmbedCommand(t *testing.T) {
	dir := t.TempDir()
	pem := "-----BEGIN CERTIFICATE-----\nABC\n-----END CERTIFICATE-----\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ca-cert.pem"), []byte(pem), 0600))

	cfg := filepath.Join(dir, "profile.json")
	src := `{
    "client": {"organization": "Org1MSP"},
    "peers": {
        "peer0": {"tlsCACerts": {"path": "ca-cert.pem"}}
    }
}`
	require.NoError(t, os.WriteFile(cfg, []byte(src), 0600))

	out := runCommand(t, "cert", "embed", "--config", cfg)
	require.Contains(t, out, "Embedded 1 certificates")

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	tls := doc["peers"].(map[string]interface{})["peer0"].(map[string]interface{})["tlsCACerts"].(map[string]interface{})
	require.Equal(t, pem, tls["pem"])
	_, hasPath := tls["path"]
	require.False(t, hasPath)
}

func TestCertFindCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ca.crt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0600))

	out := runCommand(t, "cert", "find", dir)
	require.Contains(t, out, "Found 1 certificate files:")
	require.Contains(t, out, "ca.crt")
}
