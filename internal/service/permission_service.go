package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/raywall/terraform-provider-logstream/internal/repository"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// DefaultSettleDelay é a espera para a Lambda refletir uma mudança de permissão.
const DefaultSettleDelay = time.Second

// PermissionRepository é o acesso às permissões da função sink.
type PermissionRepository interface {
	AddPermission(ctx context.Context, grant types.PermissionGrant) error
	RemovePermission(ctx context.Context, functionArn, statementID, qualifier string) error
}

// PermissionService garante um único statement que permite ao CloudWatch Logs invocar o sink.
type PermissionService struct {
	Repo        PermissionRepository
	Clock       Clock
	SettleDelay time.Duration
	Log         logrus.FieldLogger
}

// Reconcile remove o statement anterior (se houver), aguarda, adiciona o statement
// canônico e aguarda de novo. Devolve true quando um statement anterior foi substituído.
// Falhas na remoção nunca são fatais; falha na adição aborta.
func (s *PermissionService) Reconcile(ctx context.Context, sink types.SinkIdentity, scope types.Scope) (bool, error) {
	grant := types.NewPermissionGrant(sink, scope.Region)
	log := s.Log.WithFields(logrus.Fields{
		"statement_id": grant.StatementID,
		"function_arn": grant.Resource,
	})

	replaced := true
	if err := s.Repo.RemovePermission(ctx, grant.Resource, grant.StatementID, grant.Qualifier); err != nil {
		replaced = false
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("no previous permission statement")
		} else {
			log.WithError(err).WithField("code", repository.ErrorCode(err)).Debug("ignoring permission removal failure")
		}
	}

	if err := s.Clock.Sleep(ctx, s.SettleDelay); err != nil {
		return replaced, err
	}

	if err := s.Repo.AddPermission(ctx, grant); err != nil {
		return replaced, &RemoteMutationError{Operation: "AddPermission", Resource: grant.Resource, Err: err}
	}
	log.WithField("principal", grant.Principal).Info("granted logs invoke permission")

	if err := s.Clock.Sleep(ctx, s.SettleDelay); err != nil {
		return replaced, err
	}
	return replaced, nil
}
