// Package profile loads, repairs and checks Hyperledger Fabric connection
// profiles stored as JSON documents.
package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/creachadair/atomicfile"
)

// Document is a parsed connection profile. Values follow the encoding/json
// conventions for untyped decoding: map[string]interface{}, []interface{},
// string, float64, bool and nil.
type Document map[string]interface{}

// Load reads and parses the JSON connection profile at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", path, err)
	}
	return doc, nil
}

// Backup copies the raw bytes of src to dst. It must run before any fix is
// written so the original file can be recovered by hand. The copy goes
// through an atomic rename, so a failed backup never leaves a truncated
// file behind.
func Backup(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading profile for backup: %w", err)
	}
	if err := atomicfile.WriteData(dst, data, 0600); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// Marshal renders the document the way profiles are stored on disk,
// pretty-printed with four-space indentation.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "    ")
}
