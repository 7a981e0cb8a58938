package service

import (
	"context"
	"time"
)

// Clock abstrai o tempo para os atrasos de assentamento e de throttling.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock usa o relógio do sistema.
type RealClock struct{}

// Now devolve a hora atual.
func (RealClock) Now() time.Time { return time.Now() }

// Sleep espera d ou até o contexto terminar.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
