package service_test

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/internal/client/awsfake"
	"github.com/raywall/terraform-provider-logstream/internal/project"
	"github.com/raywall/terraform-provider-logstream/internal/service"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

const account = "123456789012"

// fakeClock registra as esperas sem deixar o tempo passar. Com failAfter > 0,
// a espera de número failAfter devolve err.
type fakeClock struct {
	now       time.Time
	sleeps    []time.Duration
	failAfter int
	err       error
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	if c.failAfter > 0 && len(c.sleeps) >= c.failAfter {
		return c.err
	}
	return nil
}

func shopProject() *project.Project {
	return &project.Project{
		Name:         "shop",
		NameTemplate: "{project}-{stage}-{function}",
		StageList:    []types.Stage{{Name: "dev", Regions: []string{"us-east-1"}}},
		Functions:    []string{"api", "worker", "logShipper"},
		Custom: project.Custom{
			LogStreaming: project.LogStreaming{FunctionName: "logShipper"},
		},
	}
}

// countingMetadata conta as resoluções de nome implantado.
type countingMetadata struct {
	*project.Project
	lookups int
}

func (m *countingMetadata) DeployedName(fn string, scope types.Scope) (string, error) {
	m.lookups++
	return m.Project.DeployedName(fn, scope)
}

func nullLogger() (logrus.FieldLogger, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return l, hook
}

func newConvergence(meta service.Metadata, cloud *awsfake.Cloud, clock *fakeClock) *service.ConvergenceService {
	log, _ := nullLogger()
	return &service.ConvergenceService{
		Metadata:      meta,
		Cloud:         staticCloud{cloud},
		Clock:         clock,
		SettleDelay:   service.DefaultSettleDelay,
		ThrottleDelay: service.DefaultThrottleDelay,
		Log:           log,
		NewRunID:      func() string { return "run-1" },
	}
}

type staticCloud struct{ c *awsfake.Cloud }

func (s staticCloud) Client(_ context.Context, scope types.Scope) (*client.AWSClient, error) {
	return s.c.Client(scope.Region), nil
}
