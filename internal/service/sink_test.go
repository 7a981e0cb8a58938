package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/terraform-provider-logstream/internal/service"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

var devScope = types.Scope{Stage: "dev", Region: "us-east-1"}

func TestResolveSinkInternal(t *testing.T) {
	sink, err := service.ResolveSink(shopProject(), devScope, account)
	require.NoError(t, err)

	assert.Equal(t, "shop-dev-logShipper", sink.DeployedName)
	assert.Equal(t, "arn:aws:lambda:us-east-1:123456789012:function:shop-dev-logShipper", sink.FunctionArn)
	assert.Empty(t, sink.Qualifier)
	assert.Equal(t, sink.FunctionArn, sink.DestinationArn())
}

func TestResolveSinkExternalUsesLiteralName(t *testing.T) {
	p := shopProject()
	p.Custom.LogStreaming.FunctionName = "external-log-processor"
	p.Custom.LogStreaming.External = true
	meta := &countingMetadata{Project: p}

	sink, err := service.ResolveSink(meta, devScope, account)
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:lambda:us-east-1:123456789012:function:external-log-processor", sink.FunctionArn)
	assert.Zero(t, meta.lookups)
}

func TestResolveSinkQualifier(t *testing.T) {
	p := shopProject()
	p.VersionPerStage = true

	sink, err := service.ResolveSink(p, devScope, account)
	require.NoError(t, err)
	assert.Equal(t, "dev", sink.Qualifier)
	assert.Equal(t, sink.FunctionArn+":dev", sink.DestinationArn())
}

func TestResolveSinkConfigurationErrors(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		p := shopProject()
		p.Custom.LogStreaming.FunctionName = ""
		_, err := service.ResolveSink(p, devScope, account)
		var cfg *service.ConfigurationError
		require.True(t, errors.As(err, &cfg))
		assert.Equal(t, "custom.logStreaming.functionName", cfg.Field)
	})

	t.Run("internal sink not in project", func(t *testing.T) {
		p := shopProject()
		p.Custom.LogStreaming.FunctionName = "ghost"
		_, err := service.ResolveSink(p, devScope, account)
		var cfg *service.ConfigurationError
		require.True(t, errors.As(err, &cfg))
		assert.Contains(t, cfg.Reason, "ghost")
	})

	t.Run("empty account", func(t *testing.T) {
		_, err := service.ResolveSink(shopProject(), devScope, "")
		var cfg *service.ConfigurationError
		require.True(t, errors.As(err, &cfg))
		assert.Equal(t, "account", cfg.Field)
	})
}

func TestBuildTargetsExcludesSink(t *testing.T) {
	sink := types.SinkIdentity{DeployedName: "shop-dev-logShipper"}
	targets := service.BuildTargets([]string{"shop-dev-api", "shop-dev-logShipper", "shop-dev-worker", "shop-dev-api", ""}, sink)

	assert.Equal(t, []types.LogGroupTarget{
		{FunctionName: "shop-dev-api", LogGroupName: "/aws/lambda/shop-dev-api"},
		{FunctionName: "shop-dev-worker", LogGroupName: "/aws/lambda/shop-dev-worker"},
	}, targets)
}

func TestBuildTargetsOnlySink(t *testing.T) {
	sink := types.SinkIdentity{DeployedName: "shop-dev-logShipper"}
	assert.Empty(t, service.BuildTargets([]string{"shop-dev-logShipper"}, sink))
}
