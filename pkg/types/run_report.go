package types

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// TargetResult armazena o resultado da reconciliação de um log group.
type TargetResult struct {
	Function        string `json:"function"`
	LogGroup        string `json:"log_group"`
	LogGroupCreated bool   `json:"log_group_created"`
	FilterApplied   bool   `json:"filter_applied"`
	Error           string `json:"error,omitempty"`

	err error
}

// Fail marca o target como falho, mantendo o erro original para agregação.
func (r *TargetResult) Fail(err error) {
	r.err = err
	r.Error = err.Error()
}

// Err devolve o erro original do target, se houver.
func (r TargetResult) Err() error {
	return r.err
}

// RunReport é o resultado de uma execução completa de convergência.
type RunReport struct {
	RunID              string         `json:"run_id"`
	Trigger            string         `json:"trigger"`
	Scope              Scope          `json:"scope"`
	Sink               SinkIdentity   `json:"sink"`
	PermissionReplaced bool           `json:"permission_replaced"`
	Targets            []TargetResult `json:"targets"`
	StartedAt          time.Time      `json:"started_at"`
	FinishedAt         time.Time      `json:"finished_at"`
}

// Failed devolve os targets cujo subscription filter não foi aplicado.
func (r *RunReport) Failed() []TargetResult {
	var failed []TargetResult
	for _, t := range r.Targets {
		if !t.FilterApplied {
			failed = append(failed, t)
		}
	}
	return failed
}

// Err agrega as falhas por target. Nil quando todos os targets convergiram.
func (r *RunReport) Err() error {
	var result *multierror.Error
	for _, t := range r.Targets {
		if t.FilterApplied {
			continue
		}
		err := t.err
		if err == nil {
			err = fmt.Errorf("%s", t.Error)
		}
		result = multierror.Append(result, fmt.Errorf("%s: %w", t.LogGroup, err))
	}
	return result.ErrorOrNil()
}
