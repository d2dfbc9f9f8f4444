package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/baf-labs/profilefix/internal/profile"
)

// ValidateCommand reports structural problems in a connection profile:
// missing sections, bad endpoint URLs, unresolvable TLS CA certificates.
func ValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report structural problems in a connection profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := profile.LoadTyped(configPath)
			if err != nil {
				return err
			}

			findings := profile.Validate(cp, filepath.Dir(configPath))
			out := cmd.OutOrStdout()
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			if profile.HasErrors(findings) {
				return errors.New("profile has structural errors")
			}
			fmt.Fprintln(out, "Connection profile is structurally valid.")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultProfilePath, "connection profile to validate")
	return cmd
}
