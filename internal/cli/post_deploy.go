package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raywall/terraform-provider-logstream/internal/project"
)

// PostDeployOptions são as fontes dos nomes implantados.
type PostDeployOptions struct {
	Functions    []string
	DeployedFile string
}

// NewPostDeployCommand assina apenas os log groups das funções recém-implantadas.
func NewPostDeployCommand(rootOpts *RootOptions, v *viper.Viper, deps Deps) *cobra.Command {
	opts := &PostDeployOptions{}

	cmd := &cobra.Command{
		Use:   "post-deploy",
		Short: "Subscribe the log groups of freshly deployed functions",
		Long: `Run after a deployment with the deployed names of the functions that changed.

Names come from repeated --function flags or from a deployment summary file:
  {"deployed": {"us-east-1": [{"lambdaName": "shop-dev-api"}]}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deployed, err := opts.deployedNames()
			if err != nil {
				return err
			}
			svc, err := newConvergence(cmd, rootOpts, v, deps)
			if err != nil {
				return err
			}
			report, runErr := svc.PostDeploy(cmd.Context(), rootOpts.scope(), deployed)
			if report != nil {
				if err := printReport(cmd.OutOrStdout(), rootOpts.Format, report); err != nil {
					return err
				}
			}
			return exitFor(runErr)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Functions, "function", "f", nil, "deployed function name (repeatable)")
	cmd.Flags().StringVar(&opts.DeployedFile, "deployed-file", "", "JSON deployment summary")

	return cmd
}

func (o *PostDeployOptions) deployedNames() ([]string, error) {
	names := append([]string(nil), o.Functions...)
	if o.DeployedFile != "" {
		f, err := os.Open(o.DeployedFile)
		if err != nil {
			return nil, notStarted("opening deployed file: %w", err)
		}
		defer f.Close()

		fromFile, err := project.ParseDeployed(f)
		if err != nil {
			return nil, notStarted("reading deployed file: %w", err)
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return nil, notStarted("no deployed functions: use --function or --deployed-file")
	}
	return names, nil
}
