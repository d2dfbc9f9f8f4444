package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// ConnectionProfile mirrors the sections of a Fabric connection profile that
// the tooling inspects. Unknown sections are ignored on decode and therefore
// survive a fix run untouched (fixes operate on the untyped Document).
type ConnectionProfile struct {
	Name          string                   `json:"name" mapstructure:"name"`
	Version       string                   `json:"version" mapstructure:"version"`
	Client        ClientConfig             `json:"client" mapstructure:"client"`
	Channels      map[string]ChannelConfig `json:"channels" mapstructure:"channels"`
	Organizations map[string]OrgConfig     `json:"organizations" mapstructure:"organizations"`
	Orderers      map[string]OrdererConfig `json:"orderers" mapstructure:"orderers"`
	Peers         map[string]PeerConfig    `json:"peers" mapstructure:"peers"`
	CAs           map[string]CAConfig      `json:"certificateAuthorities" mapstructure:"certificateAuthorities"`
}

// ClientConfig is the client section of a connection profile.
type ClientConfig struct {
	Organization string           `json:"organization" mapstructure:"organization"`
	Connection   ConnectionConfig `json:"connection" mapstructure:"connection"`
}

// ConnectionConfig holds the client connection timeouts.
type ConnectionConfig struct {
	Timeout TimeoutConfig `json:"timeout" mapstructure:"timeout"`
}

// TimeoutConfig holds per-target timeout settings.
type TimeoutConfig struct {
	Peer     map[string]interface{} `json:"peer" mapstructure:"peer"`
	Orderer  string                 `json:"orderer" mapstructure:"orderer"`
	Discover DiscoverConfig         `json:"discover" mapstructure:"discover"`
}

// DiscoverConfig holds the service discovery settings injected by the fixer.
type DiscoverConfig struct {
	Enabled     bool `json:"enabled" mapstructure:"enabled"`
	AsLocalhost bool `json:"asLocalhost" mapstructure:"asLocalhost"`
}

// ChannelConfig describes a channel and the peers serving it.
type ChannelConfig struct {
	Orderers []string                  `json:"orderers" mapstructure:"orderers"`
	Peers    map[string]PeerRoleConfig `json:"peers" mapstructure:"peers"`
}

// PeerRoleConfig lists the roles a peer plays on a channel.
type PeerRoleConfig struct {
	EndorsingPeer  bool `json:"endorsingPeer" mapstructure:"endorsingPeer"`
	ChaincodeQuery bool `json:"chaincodeQuery" mapstructure:"chaincodeQuery"`
	LedgerQuery    bool `json:"ledgerQuery" mapstructure:"ledgerQuery"`
	EventSource    bool `json:"eventSource" mapstructure:"eventSource"`
}

// OrgConfig describes an organization.
type OrgConfig struct {
	MSPID                  string   `json:"mspid" mapstructure:"mspid"`
	Peers                  []string `json:"peers" mapstructure:"peers"`
	CertificateAuthorities []string `json:"certificateAuthorities" mapstructure:"certificateAuthorities"`
}

// OrdererConfig describes an ordering node endpoint.
type OrdererConfig struct {
	URL         string                 `json:"url" mapstructure:"url"`
	GRPCOptions map[string]interface{} `json:"grpcOptions" mapstructure:"grpcOptions"`
	TLSCACerts  CertConfig             `json:"tlsCACerts" mapstructure:"tlsCACerts"`
}

// PeerConfig describes a peer endpoint.
type PeerConfig struct {
	URL         string                 `json:"url" mapstructure:"url"`
	GRPCOptions map[string]interface{} `json:"grpcOptions" mapstructure:"grpcOptions"`
	TLSCACerts  CertConfig             `json:"tlsCACerts" mapstructure:"tlsCACerts"`
}

// CAConfig describes a certificate authority endpoint.
type CAConfig struct {
	URL         string                 `json:"url" mapstructure:"url"`
	CAName      string                 `json:"caName" mapstructure:"caName"`
	TLSCACerts  CertConfig             `json:"tlsCACerts" mapstructure:"tlsCACerts"`
	HTTPOptions map[string]interface{} `json:"httpOptions" mapstructure:"httpOptions"`
}

// CertConfig is a TLS CA certificate reference, either a file path or the
// PEM text inlined under "pem".
type CertConfig struct {
	Path string `json:"path" mapstructure:"path"`
	Pem  string `json:"pem" mapstructure:"pem"`
}

// LoadTyped reads the profile at path into the typed representation.
func LoadTyped(path string) (ConnectionProfile, error) {
	var cp ConnectionProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return cp, fmt.Errorf("reading profile: %w", err)
	}
	if err := json.Unmarshal(data, &cp); err != nil {
		return cp, fmt.Errorf("parsing profile %q: %w", path, err)
	}
	return cp, nil
}
