package profile

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmbedCertificates replaces every tlsCACerts path reference in doc with the
// referenced file's contents inlined under "pem". Relative paths resolve
// against baseDir. It returns the number of entries rewritten; on a read
// failure the document is left partially rewritten in memory and the error
// names the offending path.
func EmbedCertificates(doc Document, baseDir string) (int, error) {
	var count int
	var firstErr error

	walkObjects(map[string]interface{}(doc), func(obj map[string]interface{}) {
		if firstErr != nil {
			return
		}
		tls, ok := obj["tlsCACerts"].(map[string]interface{})
		if !ok {
			return
		}
		path, ok := tls["path"].(string)
		if !ok || path == "" {
			return
		}

		certPath := path
		if !filepath.IsAbs(certPath) {
			certPath = filepath.Join(baseDir, certPath)
		}
		data, err := os.ReadFile(certPath)
		if err != nil {
			firstErr = fmt.Errorf("reading certificate %q: %w", path, err)
			return
		}
		tls["pem"] = string(data)
		delete(tls, "path")
		count++
	})

	if firstErr != nil {
		return 0, firstErr
	}
	return count, nil
}
