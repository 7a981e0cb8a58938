package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/internal/client/awsfake"
	"github.com/raywall/terraform-provider-logstream/internal/project"
	"github.com/raywall/terraform-provider-logstream/internal/service"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

const shopYAML = `project: shop
name_template: "{project}-{stage}-{function}"
stages:
  - name: dev
    regions: [us-east-1]
functions: [api, worker, logShipper]
custom:
  logStreaming:
    functionName: logShipper
`

const twoStagesYAML = `project: shop
stages:
  - name: dev
    regions: [us-east-1]
  - name: prod
    regions: [us-east-1]
functions: [api, logShipper]
custom:
  logStreaming:
    functionName: logShipper
`

type noSleep struct{}

func (noSleep) Now() time.Time { return time.Unix(0, 0).UTC() }
func (noSleep) Sleep(context.Context, time.Duration) error { return nil }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testDeps(cloud *awsfake.Cloud) Deps {
	return Deps{
		NewCloud: func(*project.Project) service.CloudProvider { return &client.Pool{New: cloud.Factory()} },
		Clock:    noSleep{},
		NewRunID: func() string { return "run-1" },
	}
}

func execute(t *testing.T, deps Deps, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOGSTREAM_LOG_LEVEL", "error")
	t.Setenv("LOGSTREAM_REPORT_BUCKET", "")

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(deps)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestFixCommandJSON(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.yaml", shopYAML)

	out, _, err := execute(t, testDeps(cloud), "fix", "--project-file", path, "--format", "json")
	require.NoError(t, err)

	var report types.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "manual", report.Trigger)
	require.Len(t, report.Targets, 2)
	assert.Len(t, cloud.Filters("/aws/lambda/shop-dev-api"), 1)
	assert.Len(t, cloud.Filters("/aws/lambda/shop-dev-worker"), 1)
}

func TestFixCommandTOMLProject(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.toml", `project = "shop"
functions = ["api", "logShipper"]

[[stages]]
name = "dev"
regions = ["us-east-1"]

[custom.logStreaming]
functionName = "logShipper"
`)

	out, _, err := execute(t, testDeps(cloud), "fix", "--project-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/aws/lambda/shop-api")
	assert.Contains(t, out, "1 of 1 log groups subscribed")
}

func TestPostDeployCommandDeployedFile(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.yaml", shopYAML)
	deployed := writeFile(t, "deployed.json", `{"deployed":{"us-east-1":[{"lambdaName":"shop-dev-worker"},{"lambdaName":"shop-dev-logShipper"}]}}`)

	out, _, err := execute(t, testDeps(cloud), "post-deploy", "--project-file", path, "-s", "dev", "--deployed-file", deployed)
	require.NoError(t, err)
	assert.Contains(t, out, "/aws/lambda/shop-dev-worker")
	assert.False(t, cloud.HasLogGroup("/aws/lambda/shop-dev-api"))
	assert.False(t, cloud.HasLogGroup("/aws/lambda/shop-dev-logShipper"))
}

func TestPostDeployCommandRequiresFunctions(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.yaml", shopYAML)

	_, _, err := execute(t, testDeps(cloud), "post-deploy", "--project-file", path)
	require.Error(t, err)
	assert.Equal(t, ExitNotStarted, ExitCode(err))
	assert.Empty(t, cloud.Calls())
}

func TestFixCommandAmbiguousStage(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.yaml", twoStagesYAML)

	_, _, err := execute(t, testDeps(cloud), "fix", "--project-file", path)
	require.Error(t, err)
	assert.Equal(t, ExitNotStarted, ExitCode(err))
	assert.Contains(t, err.Error(), "-s <stage> is required")
	assert.Zero(t, cloud.STSCalls())
}

func TestFixCommandPartialFailure(t *testing.T) {
	cloud := awsfake.New("123456789012")
	cloud.PutFilterErr["/aws/lambda/shop-dev-api"] = &cwtypes.LimitExceededException{Message: aws.String("limit")}
	path := writeFile(t, "logstream.yaml", shopYAML)

	out, _, err := execute(t, testDeps(cloud), "fix", "--project-file", path)
	require.Error(t, err)
	assert.Equal(t, ExitNotConverged, ExitCode(err))
	assert.Contains(t, out, "1 of 2 log groups subscribed")
}

func TestFixCommandMissingProject(t *testing.T) {
	_, _, err := execute(t, testDeps(awsfake.New("123456789012")), "fix", "--project-file", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitNotStarted, ExitCode(err))
}

func TestFixCommandReportBucketFromSettings(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.yaml", shopYAML)
	settings := writeFile(t, "settings.yaml", "report_bucket: ops-reports\nproject_file: "+path+"\n")

	_, _, err := execute(t, testDeps(cloud), "fix", "--config", settings)
	require.NoError(t, err)
	_, ok := cloud.Object("ops-reports", "logstream/reports/dev/us-east-1/run-1.json")
	assert.True(t, ok)
}

func TestTargetsCommand(t *testing.T) {
	cloud := awsfake.New("123456789012")
	path := writeFile(t, "logstream.yaml", shopYAML)

	out, _, err := execute(t, testDeps(cloud), "targets", "--project-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scope dev/us-east-1")
	assert.Contains(t, out, "sink arn:aws:lambda:us-east-1:123456789012:function:shop-dev-logShipper")
	assert.Contains(t, out, "/aws/lambda/shop-dev-api")
	assert.NotContains(t, out, "/aws/lambda/shop-dev-logShipper")
	assert.Empty(t, cloud.Calls())
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, testDeps(awsfake.New("1")), "version", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitNotStarted, ExitCode(err))
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, Deps{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "logstream "+Version)
}
