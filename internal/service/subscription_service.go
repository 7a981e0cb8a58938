package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/raywall/terraform-provider-logstream/internal/repository"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// DefaultThrottleDelay mantém as mutações do CloudWatch Logs abaixo do limite por segundo.
const DefaultThrottleDelay = 50 * time.Millisecond

// LogsRepository é o acesso aos log groups e subscription filters.
type LogsRepository interface {
	CreateLogGroup(ctx context.Context, name string) error
	PutSubscriptionFilter(ctx context.Context, f types.SubscriptionFilter) error
}

// SubscriptionService assina cada log group ao sink, um target por vez.
type SubscriptionService struct {
	Repo          LogsRepository
	Clock         Clock
	ThrottleDelay time.Duration
	Log           logrus.FieldLogger
}

// Reconcile processa os targets em ordem. A falha de um target fica registrada no
// resultado dele e não interrompe os demais.
func (s *SubscriptionService) Reconcile(ctx context.Context, targets []types.LogGroupTarget, sink types.SinkIdentity) []types.TargetResult {
	results := make([]types.TargetResult, 0, len(targets))
	for i, target := range targets {
		res, err := s.reconcileTarget(ctx, target, sink)
		results = append(results, res)
		if err != nil {
			// contexto encerrado: os targets restantes não serão tentados
			for _, rest := range targets[i+1:] {
				skipped := types.TargetResult{Function: rest.FunctionName, LogGroup: rest.LogGroupName}
				skipped.Fail(err)
				results = append(results, skipped)
			}
			break
		}
	}
	return results
}

func (s *SubscriptionService) reconcileTarget(ctx context.Context, target types.LogGroupTarget, sink types.SinkIdentity) (types.TargetResult, error) {
	res := types.TargetResult{Function: target.FunctionName, LogGroup: target.LogGroupName}
	log := s.Log.WithField("log_group", target.LogGroupName)

	if err := s.Repo.CreateLogGroup(ctx, target.LogGroupName); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			log.Debug("log group already exists")
		} else {
			log.WithError(err).WithField("code", repository.ErrorCode(err)).Debug("ignoring log group creation failure")
		}
	} else {
		res.LogGroupCreated = true
	}

	if err := s.Clock.Sleep(ctx, s.ThrottleDelay); err != nil {
		res.Fail(err)
		return res, err
	}

	filter := types.NewSubscriptionFilter(target, sink)
	if err := s.Repo.PutSubscriptionFilter(ctx, filter); err != nil {
		mutErr := &RemoteMutationError{Operation: "PutSubscriptionFilter", Resource: target.LogGroupName, Err: err}
		res.Fail(mutErr)
		log.WithError(err).Warn("log group not subscribed")
	} else {
		res.FilterApplied = true
		log.WithField("destination_arn", filter.DestinationArn).Info("log group subscribed")
	}

	if err := s.Clock.Sleep(ctx, s.ThrottleDelay); err != nil {
		return res, err
	}
	return res, nil
}
