package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/terraform-provider-logstream/internal/client/awsfake"
	"github.com/raywall/terraform-provider-logstream/internal/repository"
	"github.com/raywall/terraform-provider-logstream/internal/service"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

func targetsFor(names ...string) []types.LogGroupTarget {
	out := make([]types.LogGroupTarget, 0, len(names))
	for _, n := range names {
		out = append(out, types.NewLogGroupTarget(n))
	}
	return out
}

func TestSubscriptionReconcile_CreatesAndSubscribes(t *testing.T) {
	cloud := awsfake.New(account)
	cloud.AddLogGroup("/aws/lambda/shop-dev-worker")
	clock := newFakeClock()
	log, _ := nullLogger()

	svc := &service.SubscriptionService{
		Repo:          &repository.CWLogsRepository{Client: cloud.Client("us-east-1")},
		Clock:         clock,
		ThrottleDelay: 50 * time.Millisecond,
		Log:           log,
	}
	results := svc.Reconcile(context.Background(), targetsFor("shop-dev-api", "shop-dev-worker"), testSink)

	require.Len(t, results, 2)
	assert.True(t, results[0].LogGroupCreated)
	assert.True(t, results[0].FilterApplied)
	assert.False(t, results[1].LogGroupCreated)
	assert.True(t, results[1].FilterApplied)

	assert.Equal(t, []string{
		"CreateLogGroup /aws/lambda/shop-dev-api",
		"PutSubscriptionFilter /aws/lambda/shop-dev-api",
		"CreateLogGroup /aws/lambda/shop-dev-worker",
		"PutSubscriptionFilter /aws/lambda/shop-dev-worker",
	}, cloud.Calls())
	assert.Len(t, clock.sleeps, 4)
	for _, d := range clock.sleeps {
		assert.Equal(t, 50*time.Millisecond, d)
	}

	filters := cloud.Filters("/aws/lambda/shop-dev-api")
	require.Len(t, filters, 1)
	assert.Equal(t, types.SubscriptionFilter{
		LogGroupName:   "/aws/lambda/shop-dev-api",
		FilterName:     "shop-dev-logShipper",
		FilterPattern:  "",
		DestinationArn: testSink.FunctionArn,
	}, filters[0])
}

func TestSubscriptionReconcile_PerTargetIsolation(t *testing.T) {
	cloud := awsfake.New(account)
	cloud.PutFilterErr["/aws/lambda/shop-dev-api"] = &cwtypes.LimitExceededException{Message: aws.String("too many filters")}
	log, hook := nullLogger()

	svc := &service.SubscriptionService{
		Repo:  &repository.CWLogsRepository{Client: cloud.Client("us-east-1")},
		Clock: newFakeClock(),
		Log:   log,
	}
	results := svc.Reconcile(context.Background(), targetsFor("shop-dev-api", "shop-dev-worker"), testSink)

	require.Len(t, results, 2)
	assert.False(t, results[0].FilterApplied)
	assert.Contains(t, results[0].Error, "PutSubscriptionFilter")
	var mut *service.RemoteMutationError
	assert.True(t, errors.As(results[0].Err(), &mut))
	assert.True(t, results[1].FilterApplied)
	assert.Len(t, cloud.Filters("/aws/lambda/shop-dev-worker"), 1)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["log_group"] == "/aws/lambda/shop-dev-api" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestSubscriptionReconcile_CreateFailureIsSwallowed(t *testing.T) {
	cloud := awsfake.New(account)
	cloud.AddLogGroup("/aws/lambda/shop-dev-api")
	cloud.CreateLogGroupErr["/aws/lambda/shop-dev-api"] = &cwtypes.ServiceUnavailableException{Message: aws.String("unavailable")}
	log, _ := nullLogger()

	svc := &service.SubscriptionService{
		Repo:  &repository.CWLogsRepository{Client: cloud.Client("us-east-1")},
		Clock: newFakeClock(),
		Log:   log,
	}
	results := svc.Reconcile(context.Background(), targetsFor("shop-dev-api"), testSink)

	require.Len(t, results, 1)
	assert.False(t, results[0].LogGroupCreated)
	assert.True(t, results[0].FilterApplied)
}

func TestSubscriptionReconcile_StopsWhenContextEnds(t *testing.T) {
	cloud := awsfake.New(account)
	clock := newFakeClock()
	clock.failAfter = 1
	clock.err = context.DeadlineExceeded
	log, _ := nullLogger()

	svc := &service.SubscriptionService{
		Repo:  &repository.CWLogsRepository{Client: cloud.Client("us-east-1")},
		Clock: clock,
		Log:   log,
	}
	results := svc.Reconcile(context.Background(), targetsFor("shop-dev-api", "shop-dev-worker"), testSink)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.FilterApplied)
		assert.ErrorIs(t, r.Err(), context.DeadlineExceeded)
	}
	assert.Equal(t, []string{"CreateLogGroup /aws/lambda/shop-dev-api"}, cloud.Calls())
}
