package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testProfile = `{
    "client": {
        "organization": "WrongOrg",
        "connection": {
            "timeout": {}
        }
    },
    "peers": {
        "peer0.org1.example.com": {
            "url": "grpcs://localhost:7051",
            "tlsCACerts": {
                "pem": "-----BEGIN CERTIFICATE-----\nABC\nDEF\n-----END CERTIFICATE-----"
            }
        }
    }
}`

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := RootCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestFixCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "connection-profile.json")
	require.NoError(t, os.WriteFile(cfg, []byte(testProfile), 0600))

	out := runCommand(t, "--config", cfg)
	require.Contains(t, out, "Connection profile has been fixed.")

	// The backup holds the untouched original bytes.
	backup, err := os.ReadFile(cfg + ".bak")
	require.NoError(t, err)
	require.Equal(t, testProfile, string(backup))

	fixed, err := os.ReadFile(cfg)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(fixed, &doc))

	client := doc["client"].(map[string]interface{})
	require.Equal(t, "Org1MSP", client["organization"])

	timeout := client["connection"].(map[string]interface{})["timeout"].(map[string]interface{})
	discover := timeout["discover"].(map[string]interface{})
	require.Equal(t, true, discover["enabled"])
	require.Equal(t, true, discover["asLocalhost"])

	peers := doc["peers"].(map[string]interface{})
	tls := peers["peer0.org1.example.com"].(map[string]interface{})["tlsCACerts"].(map[string]interface{})
	pem := tls["pem"].(string)
	require.NotContains(t, pem, "\n")
	require.Equal(t, `-----BEGIN CERTIFICATE-----\nABC\nDEF\n-----END CERTIFICATE-----`, pem)
}

func TestFixCommandIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "connection-profile.json")
	require.NoError(t, os.WriteFile(cfg, []byte(testProfile), 0600))

	runCommand(t, "--config", cfg)
	first, err := os.ReadFile(cfg)
	require.NoError(t, err)

	runCommand(t, "--config", cfg)
	second, err := os.ReadFile(cfg)
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestFixCommandSeparateOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	backup := filepath.Join(dir, "in.json.orig")
	require.NoError(t, os.WriteFile(cfg, []byte(testProfile), 0600))

	runCommand(t, "--config", cfg, "--out", out, "--backup", backup)

	// The input is untouched when writing elsewhere.
	in, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.Equal(t, testProfile, string(in))

	_, err = os.Stat(backup)
	require.NoError(t, err)

	fixed, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(fixed), `"organization": "Org1MSP"`))
}

func TestFixCommandMissingProfile(t *testing.T) {
	cmd := RootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, cmd.Execute())
}

func TestFixCommandMissingClient(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "connection-profile.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"peers":{}}`), 0600))

	cmd := RootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfg})
	require.Error(t, cmd.Execute())

	// The failed run left the input file alone.
	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.Equal(t, `{"peers":{}}`, string(data))
}
