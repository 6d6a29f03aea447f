package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the pix command tree. Every call returns fresh
// commands, so tests can run them in parallel.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "pix",
		Short: "Static PIX BR Code generator",
		Long: `pix builds static PIX payment payloads (BR Code) and their QR codes.

Payments are described with flags or a YAML file; flags win over the file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEncodeCommand(),
		newQRCodeCommand(),
		newServeCommand(),
		newVersionCommand(version),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pix %s\n", version)
		},
	}
}
