package commands

import (
	"fmt"
	"path/filepath"

	"github.com/creachadair/atomicfile"
	"github.com/spf13/cobra"

	"github.com/baf-labs/profilefix/internal/cert"
	"github.com/baf-labs/profilefix/internal/profile"
)

// CertCommand groups the certificate utilities.
func CertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Work with the TLS certificates a profile references",
	}
	cmd.AddCommand(
		certInspectCommand(),
		certConvertCommand(),
		certFindCommand(),
		certEmbedCommand(),
	)
	return cmd
}

func certInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a summary of every certificate in a PEM file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			certs, err := cert.FromFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, c := range certs {
				fmt.Fprintf(out, "Certificate %d:\n", i+1)
				cert.Describe(out, c)
			}
			return nil
		},
	}
}

func certConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode the certificates in a file as clean PEM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cert.Convert(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d certificates to %s\n", n, args[1])
			return nil
		},
	}
}

func certFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find <dir>",
		Short: "List certificate files under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := cert.Find(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d certificate files:\n", len(files))
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}
}

func certEmbedCommand() *cobra.Command {
	var (
		configPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Inline referenced TLS CA certificates into the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = configPath
			}

			doc, err := profile.Load(configPath)
			if err != nil {
				return err
			}
			n, err := profile.EmbedCertificates(doc, filepath.Dir(configPath))
			if err != nil {
				return err
			}

			data, err := doc.Marshal()
			if err != nil {
				return fmt.Errorf("formatting profile: %w", err)
			}
			if err := atomicfile.WriteData(outPath, data, 0600); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d certificates into %s\n", n, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultProfilePath, "connection profile to rewrite")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (defaults to the input)")
	return cmd
}
