package profile

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Severity classifies a validation finding.
type Severity int

// Finding severities. Errors make the validate command exit non-zero,
// warnings do not.
const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one structural problem discovered in a profile.
type Finding struct {
	Severity Severity
	Path     string
	Msg      string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s: %s", f.Severity, f.Path, f.Msg)
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate reports the structural problems in p. baseDir anchors relative
// TLS certificate paths, usually the directory holding the profile. The
// returned findings are sorted by path so reports are stable across runs.
func Validate(p ConnectionProfile, baseDir string) []Finding {
	var out []Finding

	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Channels, validation.Required.Error("no channels defined")),
		validation.Field(&p.Organizations, validation.Required.Error("no organizations defined")),
		validation.Field(&p.Orderers, validation.Required.Error("no orderers defined")),
		validation.Field(&p.Peers, validation.Required.Error("no peers defined")),
	); err != nil {
		out = appendRuleErrors(out, "", err)
	}
	if err := validation.ValidateStruct(&p.Client,
		validation.Field(&p.Client.Organization, validation.Required.Error("missing or empty")),
	); err != nil {
		out = appendRuleErrors(out, "client", err)
	}

	for name, ch := range p.Channels {
		path := "channels." + name
		if len(ch.Orderers) == 0 {
			out = append(out, Finding{SeverityError, path, "no orderers defined for channel"})
		}
		if len(ch.Peers) == 0 {
			out = append(out, Finding{SeverityError, path, "no peers defined for channel"})
		}
	}
	for name, org := range p.Organizations {
		path := "organizations." + name
		if org.MSPID == "" {
			out = append(out, Finding{SeverityError, path, "missing mspid"})
		}
		if len(org.Peers) == 0 {
			out = append(out, Finding{SeverityError, path, "no peers defined for organization"})
		}
	}
	for name, ord := range p.Orderers {
		path := "orderers." + name
		out = appendEndpoint(out, path, ord.URL, ord.TLSCACerts, baseDir)
		out = appendGRPCOptions(out, path, ord.GRPCOptions)
	}
	for name, peer := range p.Peers {
		path := "peers." + name
		out = appendEndpoint(out, path, peer.URL, peer.TLSCACerts, baseDir)
		out = appendGRPCOptions(out, path, peer.GRPCOptions)
	}
	for name, ca := range p.CAs {
		path := "certificateAuthorities." + name
		if ca.URL == "" {
			out = append(out, Finding{SeverityError, path, "missing URL"})
		} else if !govalidator.IsURL(ca.URL) {
			out = append(out, Finding{SeverityError, path, fmt.Sprintf("invalid URL %q", ca.URL)})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Msg < out[j].Msg
	})
	return out
}

// appendRuleErrors converts an ozzo error map into findings, one per field.
func appendRuleErrors(out []Finding, prefix string, err error) []Finding {
	errs, ok := err.(validation.Errors)
	if !ok {
		return append(out, Finding{SeverityError, prefix, err.Error()})
	}
	for field, ferr := range errs {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		out = append(out, Finding{SeverityError, path, ferr.Error()})
	}
	return out
}

func appendEndpoint(out []Finding, path, rawURL string, cc CertConfig, baseDir string) []Finding {
	if rawURL == "" {
		out = append(out, Finding{SeverityError, path, "missing URL"})
	} else if err := checkDialAddr(rawURL); err != nil {
		out = append(out, Finding{SeverityError, path, err.Error()})
	}

	switch {
	case cc.Pem != "":
		if !strings.Contains(cc.Pem, certHeader) {
			out = append(out, Finding{SeverityWarning, path, "inline pem does not look like a certificate"})
		}
	case cc.Path == "":
		out = append(out, Finding{SeverityError, path, "no TLS CA certificate configured"})
	default:
		certPath := cc.Path
		if !filepath.IsAbs(certPath) {
			certPath = filepath.Join(baseDir, certPath)
		}
		if _, err := os.Stat(certPath); err != nil {
			out = append(out, Finding{SeverityError, path, fmt.Sprintf("TLS CA certificate not found at %s", certPath)})
		}
	}
	return out
}

// checkDialAddr verifies that raw names a dialable host:port, with or
// without a grpc(s):// scheme prefix.
func checkDialAddr(raw string) error {
	hostport := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		hostport = u.Host
	}
	if !govalidator.IsDialString(hostport) {
		return fmt.Errorf("%q is not a dialable address", raw)
	}
	return nil
}

func appendGRPCOptions(out []Finding, path string, opts map[string]interface{}) []Finding {
	if opts == nil {
		return append(out, Finding{SeverityWarning, path, "missing grpcOptions"})
	}
	if _, ok := opts["ssl-target-name-override"]; !ok {
		out = append(out, Finding{SeverityWarning, path, "missing ssl-target-name-override"})
	}
	return out
}
