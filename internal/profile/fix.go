package profile

import (
	"errors"
	"fmt"

	"github.com/baf-labs/profilefix/libs/log"
)

// OrgMSPID is the organization identifier the client section is pinned to.
const OrgMSPID = "Org1MSP"

// ErrNoClient reports a profile without a client object to repair.
var ErrNoClient = errors.New("client section missing or not an object")

// A fix is a single named repair applied to a profile document in place.
type fix struct {
	desc  string
	apply func(Document) error
}

// plan is the ordered list of repairs ApplyFixes runs. The steps are
// independent of each other; the order only matters for error reporting.
var plan = []fix{
	{
		desc:  fmt.Sprintf("Pin client.organization to %q", OrgMSPID),
		apply: setClientOrganization,
	},
	{
		desc:  "Enable service discovery under client.connection.timeout",
		apply: ensureDiscoverTimeout,
	},
	{
		desc:  "Flatten multiline PEM certificates to single-line strings",
		apply: flattenCertificates,
	},
}

// ApplyFixes runs every step of the plan against doc.
func ApplyFixes(logger log.Logger, doc Document) error {
	for _, f := range plan {
		if err := f.apply(doc); err != nil {
			return fmt.Errorf("%s: %w", f.desc, err)
		}
		logger.Debug("applied fix", "desc", f.desc)
	}
	return nil
}

func setClientOrganization(doc Document) error {
	client, ok := doc["client"].(map[string]interface{})
	if !ok {
		return ErrNoClient
	}
	client["organization"] = OrgMSPID
	return nil
}

func ensureDiscoverTimeout(doc Document) error {
	client, ok := doc["client"].(map[string]interface{})
	if !ok {
		return ErrNoClient
	}
	connection, err := childObject(client, "connection")
	if err != nil {
		return err
	}
	timeout, err := childObject(connection, "timeout")
	if err != nil {
		return err
	}
	timeout["discover"] = map[string]interface{}{
		"enabled":     true,
		"asLocalhost": true,
	}
	return nil
}

// childObject returns m[key] as an object, creating it when absent or null.
func childObject(m map[string]interface{}, key string) (map[string]interface{}, error) {
	v, ok := m[key]
	if !ok || v == nil {
		child := map[string]interface{}{}
		m[key] = child
		return child, nil
	}
	child, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is not an object", key)
	}
	return child, nil
}
