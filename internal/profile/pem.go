package profile

import "strings"

const certHeader = "-----BEGIN CERTIFICATE-----"

// flattenCertificates rewrites every object entry keyed "pem" that holds a
// multiline certificate as a single-line string with literal \n separators.
// The walk covers the whole tree; entries under other keys, and pem strings
// without the certificate header or without embedded newlines, pass through
// untouched. Re-running is a no-op: a flattened string has no newline left.
func flattenCertificates(doc Document) error {
	walkObjects(map[string]interface{}(doc), func(obj map[string]interface{}) {
		pem, ok := obj["pem"].(string)
		if !ok {
			return
		}
		if strings.Contains(pem, certHeader) && strings.Contains(pem, "\n") {
			obj["pem"] = FlattenPEM(pem)
		}
	})
	return nil
}

// FlattenPEM joins the trimmed lines of a PEM block with the two-character
// escape sequence backslash-n.
func FlattenPEM(pem string) string {
	return strings.Join(strings.Split(strings.TrimSpace(pem), "\n"), `\n`)
}

// walkObjects visits every JSON object reachable from v, depth-first.
// Sibling order is unspecified; the edits made by visitors are independent.
func walkObjects(v interface{}, visit func(map[string]interface{})) {
	switch x := v.(type) {
	case map[string]interface{}:
		visit(x)
		for _, child := range x {
			walkObjects(child, visit)
		}
	case []interface{}:
		for _, item := range x {
			walkObjects(item, visit)
		}
	}
}
