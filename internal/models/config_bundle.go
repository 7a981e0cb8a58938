package models

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/raywall/terraform-provider-logstream/internal/service"
)

// ConfigurationBundle contém o provedor de clientes AWS e as configurações de execução
// para serem injetados nos Resources.
type ConfigurationBundle struct {
	Cloud         service.CloudProvider
	Region        string
	SettleDelay   time.Duration
	ThrottleDelay time.Duration
	ReportBucket  string
	Clock         service.Clock
	Log           logrus.FieldLogger
}

// Convergence monta o orquestrador para os metadados informados.
func (b *ConfigurationBundle) Convergence(meta service.Metadata) *service.ConvergenceService {
	return &service.ConvergenceService{
		Metadata:      meta,
		Cloud:         b.Cloud,
		Clock:         b.Clock,
		SettleDelay:   b.SettleDelay,
		ThrottleDelay: b.ThrottleDelay,
		ReportBucket:  b.ReportBucket,
		Log:           b.Log,
	}
}
