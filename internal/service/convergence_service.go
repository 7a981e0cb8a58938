package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/internal/repository"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// Gatilhos de uma execução.
const (
	TriggerManual     = "manual"
	TriggerPostDeploy = "post-deploy"
)

// CloudProvider entrega o cliente AWS de um scope.
type CloudProvider interface {
	Client(ctx context.Context, scope types.Scope) (*client.AWSClient, error)
}

// Options são as seleções explícitas de scope.
type Options struct {
	Stage  string
	Region string
}

// Plan é o que uma execução faria, sem mutações remotas.
type Plan struct {
	Scope     types.Scope            `json:"scope"`
	Sink      types.SinkIdentity     `json:"sink"`
	Grant     types.PermissionGrant  `json:"permission"`
	Functions []types.FunctionRef    `json:"functions"`
	Targets   []types.LogGroupTarget `json:"targets"`
}

// ConvergenceService Orquestrador da convergência de log streaming.
// Não guarda estado entre execuções; assume uma execução por scope de cada vez.
// Atrasos zerados usam DefaultSettleDelay e DefaultThrottleDelay.
type ConvergenceService struct {
	Metadata      Metadata
	Cloud         CloudProvider
	Clock         Clock
	SettleDelay   time.Duration
	ThrottleDelay time.Duration
	ReportBucket  string
	Log           logrus.FieldLogger
	NewRunID      func() string
}

// FixAll reconcilia todas as funções do projeto no scope selecionado.
func (s *ConvergenceService) FixAll(ctx context.Context, opts Options) (*types.RunReport, error) {
	scope, err := s.resolveScope(opts)
	if err != nil {
		return nil, err
	}
	refs, err := s.functionRefs(scope)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseResolvingScope, Err: err}
	}
	return s.run(ctx, TriggerManual, scope, deployedNames(refs))
}

// PostDeploy reconcilia apenas as funções recém-implantadas (nomes implantados).
func (s *ConvergenceService) PostDeploy(ctx context.Context, opts Options, deployed []string) (*types.RunReport, error) {
	scope, err := s.resolveScope(opts)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, TriggerPostDeploy, scope, deployed)
}

// Plan resolve scope, sink e targets de todas as funções, sem mutações remotas.
// A conta é consultada no STS.
func (s *ConvergenceService) Plan(ctx context.Context, opts Options) (*Plan, error) {
	scope, err := s.resolveScope(opts)
	if err != nil {
		return nil, err
	}
	refs, err := s.functionRefs(scope)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseResolvingScope, Err: err}
	}
	if _, err := SinkDeployedName(s.Metadata, scope); err != nil {
		return nil, &PhaseError{Phase: PhaseResolvingSink, Err: err}
	}
	_, sink, err := s.resolveSink(ctx, scope)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseResolvingSink, Err: err}
	}
	return &Plan{
		Scope:     scope,
		Sink:      sink,
		Grant:     types.NewPermissionGrant(sink, scope.Region),
		Functions: refs,
		Targets:   BuildTargets(deployedNames(refs), sink),
	}, nil
}

func (s *ConvergenceService) resolveScope(opts Options) (types.Scope, error) {
	if s.Metadata == nil {
		return types.Scope{}, &PhaseError{Phase: PhaseResolvingScope, Err: &ConfigurationError{Field: "project", Reason: "no deployment metadata"}}
	}
	scope, err := ResolveScope(opts.Stage, opts.Region, s.Metadata.Stages())
	if err != nil {
		return types.Scope{}, &PhaseError{Phase: PhaseResolvingScope, Err: err}
	}
	return scope, nil
}

func (s *ConvergenceService) functionRefs(scope types.Scope) ([]types.FunctionRef, error) {
	fns := s.Metadata.FunctionNames()
	refs := make([]types.FunctionRef, 0, len(fns))
	for _, fn := range fns {
		name, err := s.Metadata.DeployedName(fn, scope)
		if err != nil {
			return nil, fmt.Errorf("deployed name of %s: %w", fn, err)
		}
		refs = append(refs, types.FunctionRef{LogicalName: fn, DeployedName: name, Scope: scope})
	}
	return refs, nil
}

func deployedNames(refs []types.FunctionRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.DeployedName)
	}
	return names
}

func (s *ConvergenceService) resolveSink(ctx context.Context, scope types.Scope) (*client.AWSClient, types.SinkIdentity, error) {
	c, err := s.Cloud.Client(ctx, scope)
	if err != nil {
		return nil, types.SinkIdentity{}, fmt.Errorf("aws client for %s: %w", scope, err)
	}
	accountID, err := c.AccountID(ctx)
	if err != nil {
		return nil, types.SinkIdentity{}, err
	}
	sink, err := ResolveSink(s.Metadata, scope, accountID)
	if err != nil {
		return nil, types.SinkIdentity{}, err
	}
	return c, sink, nil
}

func (s *ConvergenceService) run(ctx context.Context, trigger string, scope types.Scope, functionNames []string) (*types.RunReport, error) {
	report := &types.RunReport{
		RunID:     s.runID(),
		Trigger:   trigger,
		Scope:     scope,
		StartedAt: s.clock().Now(),
	}
	log := s.logger().WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"trigger": trigger,
		"stage":   scope.Stage,
		"region":  scope.Region,
	})
	fail := func(phase Phase, err error) (*types.RunReport, error) {
		report.FinishedAt = s.clock().Now()
		log.WithError(err).WithField("phase", PhaseFailed).Error("log streaming run failed")
		return report, &PhaseError{Phase: phase, Err: err}
	}

	// Configuração do sink validada antes de qualquer chamada remota.
	log.WithField("phase", PhaseResolvingSink).Info("resolving sink")
	if _, err := SinkDeployedName(s.Metadata, scope); err != nil {
		return fail(PhaseResolvingSink, err)
	}
	c, sink, err := s.resolveSink(ctx, scope)
	if err != nil {
		return fail(PhaseResolvingSink, err)
	}
	report.Sink = sink
	log = log.WithField("sink", sink.DeployedName)

	log.WithField("phase", PhaseReconcilingPermission).Info("reconciling sink permission")
	perms := &PermissionService{
		Repo:        &repository.LambdaRepository{Client: c},
		Clock:       s.clock(),
		SettleDelay: orDefault(s.SettleDelay, DefaultSettleDelay),
		Log:         log,
	}
	replaced, err := perms.Reconcile(ctx, sink, scope)
	report.PermissionReplaced = replaced
	if err != nil {
		return fail(PhaseReconcilingPermission, err)
	}

	targets := BuildTargets(functionNames, sink)
	log.WithFields(logrus.Fields{
		"phase":   PhaseReconcilingSubscriptions,
		"targets": len(targets),
	}).Info("reconciling subscriptions")
	subs := &SubscriptionService{
		Repo:          &repository.CWLogsRepository{Client: c},
		Clock:         s.clock(),
		ThrottleDelay: orDefault(s.ThrottleDelay, DefaultThrottleDelay),
		Log:           log,
	}
	report.Targets = subs.Reconcile(ctx, targets, sink)
	report.FinishedAt = s.clock().Now()

	if s.ReportBucket != "" {
		reports := &repository.ReportRepository{Client: c, Bucket: s.ReportBucket}
		if key, err := reports.PutReport(ctx, report); err != nil {
			log.WithError(err).Warn("could not upload run report")
		} else {
			log.WithField("key", key).Debug("run report uploaded")
		}
	}

	failed := len(report.Failed())
	log.WithFields(logrus.Fields{
		"phase":      PhaseDone,
		"subscribed": len(report.Targets) - failed,
		"failed":     failed,
	}).Info("log streaming run finished")

	if err := report.Err(); err != nil {
		return report, fmt.Errorf("%d of %d log groups not subscribed: %w", failed, len(report.Targets), err)
	}
	return report, nil
}

func (s *ConvergenceService) clock() Clock {
	if s.Clock == nil {
		return RealClock{}
	}
	return s.Clock
}

func (s *ConvergenceService) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s *ConvergenceService) runID() string {
	if s.NewRunID != nil {
		return s.NewRunID()
	}
	return uuid.NewString()
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
