package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/raywall/terraform-provider-logstream/internal/service"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// Códigos de saída do logstream.
const (
	ExitOK           = 0
	ExitNotConverged = 1 // algum log group ficou sem assinatura ou a permissão do sink falhou
	ExitNotStarted   = 2 // configuração ou scope inválidos; nada foi alterado na AWS
)

// ExitError associa um código de saída ao erro que encerrou o comando.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func notStarted(format string, args ...interface{}) error {
	return &ExitError{Code: ExitNotStarted, Err: fmt.Errorf(format, args...)}
}

// ExitCode devolve o código de saída de err. Erros sem código contam como
// ExitNotConverged, pois podem ter ocorrido depois de alguma mutação.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitNotConverged
}

// exitFor classifica um erro de execução: erros de configuração e de scope
// não tocaram a AWS.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	var cfg *service.ConfigurationError
	var amb *service.AmbiguousScopeError
	if errors.As(err, &cfg) || errors.As(err, &amb) {
		return notStarted("log streaming not started: %w", err)
	}
	return &ExitError{Code: ExitNotConverged, Err: err}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, format string, r *types.RunReport) error {
	if format == "json" {
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "run %s (%s) %s\n", r.RunID, r.Trigger, r.Scope)
	fmt.Fprintf(w, "sink %s\n", r.Sink.DestinationArn())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOG GROUP\tCREATED\tSUBSCRIBED\tERROR")
	for _, t := range r.Targets {
		fmt.Fprintf(tw, "%s\t%t\t%t\t%s\n", t.LogGroup, t.LogGroupCreated, t.FilterApplied, t.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d of %d log groups subscribed\n", len(r.Targets)-len(r.Failed()), len(r.Targets))
	return nil
}

func printPlan(w io.Writer, format string, p *service.Plan) error {
	if format == "json" {
		return writeJSON(w, p)
	}

	fmt.Fprintf(w, "scope %s\n", p.Scope)
	fmt.Fprintf(w, "sink %s\n", p.Sink.DestinationArn())
	fmt.Fprintf(w, "permission %s %s -> %s\n", p.Grant.StatementID, p.Grant.Principal, p.Grant.Resource)
	for _, t := range p.Targets {
		fmt.Fprintf(w, "  %s\n", t.LogGroupName)
	}
	return nil
}
