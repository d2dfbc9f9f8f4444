// Package cert holds the x509/PEM helpers behind the cert subcommands.
package cert

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creachadair/atomicfile"
)

// FromPEM extracts every CERTIFICATE block from data. Non-certificate blocks
// (keys, CSRs) are skipped.
func FromPEM(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, errors.New("no certificates found")
	}
	return certs, nil
}

// FromFile extracts every CERTIFICATE block from the PEM file at path.
func FromFile(path string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	certs, err := FromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return certs, nil
}

// EncodePEM re-encodes c as a single clean PEM block.
func EncodePEM(c *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: c.Raw,
	})
}

// Convert rewrites the certificates found in src as clean PEM at dst and
// returns how many were written.
func Convert(src, dst string) (int, error) {
	certs, err := FromFile(src)
	if err != nil {
		return 0, err
	}
	var out []byte
	for _, c := range certs {
		out = append(out, EncodePEM(c)...)
	}
	if err := atomicfile.WriteData(dst, out, 0644); err != nil {
		return 0, fmt.Errorf("writing %q: %w", dst, err)
	}
	return len(certs), nil
}

// Find walks dir and returns the paths of certificate-looking files, judged
// by the naming conventions Fabric networks use for their crypto material.
func Find(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".crt") ||
			strings.HasSuffix(name, ".pem") ||
			strings.HasSuffix(name, ".cert") ||
			strings.Contains(name, "ca.") ||
			strings.Contains(name, "ca-cert") ||
			strings.Contains(name, "tlsca") {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

// Describe writes a human-readable summary of c to w.
func Describe(w io.Writer, c *x509.Certificate) {
	fmt.Fprintf(w, "  Subject:     %s\n", c.Subject)
	fmt.Fprintf(w, "  Issuer:      %s\n", c.Issuer)
	fmt.Fprintf(w, "  Valid from:  %s\n", c.NotBefore.Format(time.RFC3339))
	fmt.Fprintf(w, "  Valid until: %s\n", c.NotAfter.Format(time.RFC3339))
	fmt.Fprintf(w, "  Serial:      %s\n", c.SerialNumber)
	fmt.Fprintf(w, "  Is CA:       %t\n", c.IsCA)
	if len(c.DNSNames) > 0 {
		fmt.Fprintf(w, "  DNS names:   %s\n", strings.Join(c.DNSNames, ", "))
	}
}
