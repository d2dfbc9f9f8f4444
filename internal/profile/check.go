package profile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// CheckValid checks whether data still decodes as a connection profile the
// Fabric SDK would accept. This emulates how the SDK loads the profile and
// runs after the fixes, before any output is written.
func CheckValid(data []byte) error {
	v := viper.New()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("reading profile: %w", err)
	}

	var cp ConnectionProfile
	if err := v.Unmarshal(&cp); err != nil {
		return fmt.Errorf("decoding profile: %w", err)
	}

	if cp.Client.Organization == "" {
		return errors.New("client.organization is empty")
	}
	return nil
}
