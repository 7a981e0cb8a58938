package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/raywall/terraform-provider-logstream/internal/project"
	"github.com/raywall/terraform-provider-logstream/internal/service"
)

// Chaves de configuração. Prioridade: flag > LOGSTREAM_<CHAVE> > arquivo > padrão.
const (
	keyProjectFile   = "project_file"
	keyFormat        = "format"
	keyReportBucket  = "report_bucket"
	keySettleDelay   = "settle_delay"
	keyThrottleDelay = "throttle_delay"
)

// Settings são as configurações resolvidas de uma execução.
type Settings struct {
	ProjectFile   string
	ReportBucket  string
	SettleDelay   time.Duration
	ThrottleDelay time.Duration
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	_ = v.BindPFlag(keyFormat, flags.Lookup("format"))
	_ = v.BindPFlag(keyProjectFile, flags.Lookup("project-file"))
}

func loadSettings(v *viper.Viper, cfgFile string) error {
	v.SetDefault(keyProjectFile, project.DefaultFile)
	v.SetDefault(keyFormat, "text")
	v.SetDefault(keySettleDelay, service.DefaultSettleDelay)
	v.SetDefault(keyThrottleDelay, service.DefaultThrottleDelay)

	v.SetEnvPrefix("LOGSTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(".logstream")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func settingsFrom(v *viper.Viper) Settings {
	return Settings{
		ProjectFile:   v.GetString(keyProjectFile),
		ReportBucket:  v.GetString(keyReportBucket),
		SettleDelay:   v.GetDuration(keySettleDelay),
		ThrottleDelay: v.GetDuration(keyThrottleDelay),
	}
}
