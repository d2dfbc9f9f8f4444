package profile

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client":{"organization":"X"}}`), 0600))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "X", doc["client"].(map[string]interface{})["organization"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client":`), 0600))

	_, err := Load(path)
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestBackupCopiesBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "profile.json")
	dst := src + ".bak"
	original := []byte(`{"client": {"organization": "X"}}` + "\n")
	require.NoError(t, os.WriteFile(src, original, 0600))

	require.NoError(t, Backup(src, dst))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, original, copied)
}

func TestBackupMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Backup(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.json.bak"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMarshalUsesFourSpaceIndent(t *testing.T) {
	doc := Document{"client": map[string]interface{}{"organization": "X"}}
	data, err := doc.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(data), "\n    \"client\"")
	require.Contains(t, string(data), "\n        \"organization\"")
}
