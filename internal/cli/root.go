// Package cli implementa o binário logstream: o gatilho manual (fix), o gancho
// pós-deploy (post-deploy) e a simulação (targets).
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/internal/project"
	"github.com/raywall/terraform-provider-logstream/internal/service"
)

// RootOptions são as flags globais, comuns a todos os comandos.
type RootOptions struct {
	Verbose    bool
	Format     string
	ConfigFile string
	Stage      string
	Region     string
}

// ValidFormats são os formatos aceitos em --format.
var ValidFormats = []string{"text", "json"}

// Deps são as dependências externas dos comandos, substituíveis nos testes.
type Deps struct {
	// NewCloud devolve o provedor de clientes AWS do projeto carregado.
	NewCloud func(p *project.Project) service.CloudProvider
	Clock    service.Clock
	NewRunID func() string
}

func (d Deps) withDefaults() Deps {
	if d.NewCloud == nil {
		d.NewCloud = func(p *project.Project) service.CloudProvider {
			return client.NewPool(p.Profiles())
		}
	}
	if d.Clock == nil {
		d.Clock = service.RealClock{}
	}
	return d
}

// NewRootCommand monta o comando raiz do logstream com seus subcomandos.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{}
	deps = deps.withDefaults()
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "logstream",
		Short: "Envia os logs das funções Lambda para uma função sink",
		Long: `logstream garante, para cada função implantada, um log group no CloudWatch Logs
assinado pela função sink configurada, e a permissão para o serviço de logs invocar o sink.

Exemplos:
  # todas as funções do projeto no stage dev
  logstream fix -s dev

  # apenas as funções recém-implantadas
  logstream post-deploy -s dev --function shop-dev-api --function shop-dev-worker`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(v, opts.ConfigFile); err != nil {
				return notStarted("reading settings: %w", err)
			}
			opts.Format = v.GetString(keyFormat)
			if !isValidFormat(opts.Format) {
				return notStarted("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.String("format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "settings file (default ./.logstream.yaml)")
	flags.String("project-file", project.DefaultFile, "project file describing stages, functions and the sink")
	flags.StringVarP(&opts.Stage, "stage", "s", "", "stage to reconcile")
	flags.StringVarP(&opts.Region, "region", "r", "", "region to reconcile")
	bindFlags(v, flags)

	cmd.AddCommand(NewFixCommand(opts, v, deps))
	cmd.AddCommand(NewPostDeployCommand(opts, v, deps))
	cmd.AddCommand(NewTargetsCommand(opts, v, deps))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func errWriter(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
