package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFixCommand reconcilia todas as funções do projeto no scope selecionado.
func NewFixCommand(rootOpts *RootOptions, v *viper.Viper, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "fix",
		Short: "Subscribe the log groups of every project function",
		Long: `Reconcile the sink permission and the subscription filters of all functions
declared in the project file, using the deployed names of the selected scope.

Each log group is handled independently; a failed one does not stop the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newConvergence(cmd, rootOpts, v, deps)
			if err != nil {
				return err
			}
			report, runErr := svc.FixAll(cmd.Context(), rootOpts.scope())
			if report != nil {
				if err := printReport(cmd.OutOrStdout(), rootOpts.Format, report); err != nil {
					return err
				}
			}
			return exitFor(runErr)
		},
	}
}
