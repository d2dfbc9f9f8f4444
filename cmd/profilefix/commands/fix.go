package commands

import (
	"fmt"

	"github.com/creachadair/atomicfile"
	"github.com/spf13/cobra"

	"github.com/baf-labs/profilefix/internal/profile"
)

// runFix backs up the profile, applies the repair plan, verifies the result
// still decodes as a connection profile and only then replaces the file.
func runFix(cmd *cobra.Command, configPath, outPath, backupPath string) error {
	if outPath == "" {
		outPath = configPath
	}
	if backupPath == "" {
		backupPath = configPath + ".bak"
	}

	if err := profile.Backup(configPath, backupPath); err != nil {
		return err
	}
	logger.Info("backup written", "path", backupPath)

	doc, err := profile.Load(configPath)
	if err != nil {
		return err
	}

	if err := profile.ApplyFixes(logger, doc); err != nil {
		return fmt.Errorf("updating %q: %w", configPath, err)
	}

	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("formatting profile: %w", err)
	}

	if err := profile.CheckValid(data); err != nil {
		return fmt.Errorf("updated profile is invalid: %w", err)
	}

	if err := atomicfile.WriteData(outPath, data, 0600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Connection profile has been fixed.")
	return nil
}
