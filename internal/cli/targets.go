package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewTargetsCommand mostra o que um fix faria, sem mutações.
func NewTargetsCommand(rootOpts *RootOptions, v *viper.Viper, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Show the scope, sink and log groups a fix would reconcile",
		Long: `Resolve scope, sink identity and targets without changing anything.
The AWS account id is still looked up to build the sink ARN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newConvergence(cmd, rootOpts, v, deps)
			if err != nil {
				return err
			}
			plan, err := svc.Plan(cmd.Context(), rootOpts.scope())
			if err != nil {
				return exitFor(err)
			}
			return printPlan(cmd.OutOrStdout(), rootOpts.Format, plan)
		},
	}
}
