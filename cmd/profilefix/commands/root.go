// Package commands wires the profilefix CLI together.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/baf-labs/profilefix/libs/log"
)

// defaultProfilePath is where the network scripts leave the generated
// connection profile, relative to the directory the tool runs in.
const defaultProfilePath = "config/connection-profile.json"

// logger is replaced by PersistentPreRunE before any command runs.
var logger = log.NewNopLogger()

// RootCommand builds the CLI. Invoked bare it repairs the profile at the
// default path; subcommands cover validation and certificate tooling.
func RootCommand() *cobra.Command {
	var (
		logLevel   string
		logFormat  string
		configPath string
		outPath    string
		backupPath string
	)

	cmd := &cobra.Command{
		Use:   "profilefix",
		Short: "Repair and inspect Fabric connection profiles",
		Long: `Repair a Hyperledger Fabric connection profile in place.

A backup of the original file is written next to it before anything is
modified. The repairs pin client.organization, enable service discovery
under client.connection.timeout, and flatten multiline PEM certificates
into single-line strings the SDK accepts. In case of any error while
updating the file, no output is written.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = log.NewDefaultLogger(logFormat, logLevel)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, configPath, outPath, backupPath)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", log.LogFormatPlain, "log format (plain|json)")

	cmd.Flags().StringVar(&configPath, "config", defaultProfilePath, "connection profile to repair")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (defaults to the input)")
	cmd.Flags().StringVar(&backupPath, "backup", "", "backup path (defaults to <config>.bak)")

	cmd.AddCommand(ValidateCommand(), CertCommand())
	return cmd
}
