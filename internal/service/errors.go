package service

import (
	"fmt"
	"strings"
)

// Phase é um estado da execução de convergência.
type Phase string

const (
	PhaseIdle                     Phase = "idle"
	PhaseResolvingScope           Phase = "resolving_scope"
	PhaseResolvingSink            Phase = "resolving_sink"
	PhaseReconcilingPermission    Phase = "reconciling_permission"
	PhaseReconcilingSubscriptions Phase = "reconciling_subscriptions"
	PhaseDone                     Phase = "done"
	PhaseFailed                   Phase = "failed"
)

// ConfigurationError indica configuração ausente ou inválida. Nenhuma chamada remota é feita.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// AmbiguousScopeError indica vários candidatos sem seleção explícita.
type AmbiguousScopeError struct {
	Kind       string // "stage" ou "region"
	Candidates []string
}

func (e *AmbiguousScopeError) Error() string {
	flag := "-s <stage>"
	if e.Kind == "region" {
		flag = "-r <region>"
	}
	return fmt.Sprintf("%s is required: %d candidate %ss (%s)", flag, len(e.Candidates), e.Kind, strings.Join(e.Candidates, ", "))
}

// RemoteMutationError é a falha de uma mutação remota que não pode ser ignorada.
type RemoteMutationError struct {
	Operation string
	Resource  string
	Err       error
}

func (e *RemoteMutationError) Error() string {
	return fmt.Sprintf("%s on %s failed: %v", e.Operation, e.Resource, e.Err)
}

func (e *RemoteMutationError) Unwrap() error { return e.Err }

// PhaseError identifica em qual fase a execução se tornou fatal.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("log streaming %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
