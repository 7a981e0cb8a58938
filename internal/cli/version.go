package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version é definido em build com -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// NewVersionCommand imprime a versão do binário.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the logstream version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": Version, "go": runtime.Version()})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "logstream %s (%s)\n", Version, runtime.Version())
			return err
		},
	}
}
