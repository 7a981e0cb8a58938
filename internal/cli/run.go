package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raywall/terraform-provider-logstream/internal/logging"
	"github.com/raywall/terraform-provider-logstream/internal/project"
	"github.com/raywall/terraform-provider-logstream/internal/service"
)

// newConvergence carrega o projeto e monta o orquestrador com as configurações resolvidas.
func newConvergence(cmd *cobra.Command, opts *RootOptions, v *viper.Viper, deps Deps) (*service.ConvergenceService, error) {
	settings := settingsFrom(v)
	p, err := project.Load(settings.ProjectFile)
	if err != nil {
		return nil, notStarted("loading project: %w", err)
	}

	return &service.ConvergenceService{
		Metadata:      p,
		Cloud:         deps.NewCloud(p),
		Clock:         deps.Clock,
		SettleDelay:   settings.SettleDelay,
		ThrottleDelay: settings.ThrottleDelay,
		ReportBucket:  settings.ReportBucket,
		Log:           logging.New(errWriter(cmd), opts.Verbose),
		NewRunID:      deps.NewRunID,
	}, nil
}

func (o *RootOptions) scope() service.Options {
	return service.Options{Stage: o.Stage, Region: o.Region}
}
