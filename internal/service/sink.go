package service

import (
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// Metadata expõe os metadados de implantação consumidos pela convergência.
type Metadata interface {
	Stages() []types.Stage
	FunctionNames() []string
	DeployedName(function string, scope types.Scope) (string, error)
	SinkName() string
	ExternalSink() bool
	SinkQualifier(scope types.Scope) string
}

// SinkDeployedName resolve o nome implantado do sink sem nenhuma chamada remota.
// No modo externo o nome configurado é usado literalmente.
func SinkDeployedName(meta Metadata, scope types.Scope) (string, error) {
	name := meta.SinkName()
	if name == "" {
		return "", &ConfigurationError{
			Field:  "custom.logStreaming.functionName",
			Reason: "the sink function name must be specified",
		}
	}
	if meta.ExternalSink() {
		return name, nil
	}
	deployed, err := meta.DeployedName(name, scope)
	if err != nil {
		return "", &ConfigurationError{Field: "custom.logStreaming.functionName", Reason: err.Error()}
	}
	return deployed, nil
}

// ResolveSink calcula a identidade de invocação do sink no scope e conta informados.
func ResolveSink(meta Metadata, scope types.Scope, accountID string) (types.SinkIdentity, error) {
	name, err := SinkDeployedName(meta, scope)
	if err != nil {
		return types.SinkIdentity{}, err
	}
	if accountID == "" {
		return types.SinkIdentity{}, &ConfigurationError{Field: "account", Reason: "account id is empty"}
	}
	return types.SinkIdentity{
		DeployedName: name,
		FunctionArn:  types.FunctionArn(scope.Region, accountID, name),
		Qualifier:    meta.SinkQualifier(scope),
	}, nil
}

// BuildTargets deriva os log groups a assinar: todas as funções informadas,
// sem repetição, exceto o próprio sink.
func BuildTargets(functionNames []string, sink types.SinkIdentity) []types.LogGroupTarget {
	seen := make(map[string]bool, len(functionNames))
	targets := make([]types.LogGroupTarget, 0, len(functionNames))
	for _, fn := range functionNames {
		if fn == "" || fn == sink.DeployedName || seen[fn] {
			continue
		}
		seen[fn] = true
		targets = append(targets, types.NewLogGroupTarget(fn))
	}
	return targets
}
