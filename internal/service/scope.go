package service

import (
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// ResolveScope escolhe o (stage, region) da execução. Um único candidato é
// selecionado automaticamente; vários candidatos exigem seleção explícita.
func ResolveScope(explicitStage, explicitRegion string, stages []types.Stage) (types.Scope, error) {
	if len(stages) == 0 {
		return types.Scope{}, &ConfigurationError{Field: "stages", Reason: "no deployment stages available"}
	}

	var stage types.Stage
	switch {
	case explicitStage != "":
		found := false
		for _, s := range stages {
			if s.Name == explicitStage {
				stage, found = s, true
				break
			}
		}
		if !found {
			return types.Scope{}, &ConfigurationError{Field: "stage", Reason: "unknown stage " + explicitStage}
		}
	case len(stages) > 1:
		return types.Scope{}, &AmbiguousScopeError{Kind: "stage", Candidates: stageNames(stages)}
	default:
		stage = stages[0]
	}

	regions := distinct(stage.Regions)
	if len(regions) == 0 {
		return types.Scope{}, &ConfigurationError{Field: "region", Reason: "stage " + stage.Name + " has no regions"}
	}

	var region string
	switch {
	case explicitRegion != "":
		for _, r := range regions {
			if r == explicitRegion {
				region = r
				break
			}
		}
		if region == "" {
			return types.Scope{}, &ConfigurationError{Field: "region", Reason: "region " + explicitRegion + " is not deployed in stage " + stage.Name}
		}
	case len(regions) > 1:
		return types.Scope{}, &AmbiguousScopeError{Kind: "region", Candidates: regions}
	default:
		region = regions[0]
	}

	scope := types.Scope{Stage: stage.Name, Region: region}
	if err := scope.Validate(); err != nil {
		return types.Scope{}, &ConfigurationError{Field: "scope", Reason: err.Error()}
	}
	return scope, nil
}

// distinct remove regiões repetidas, mantendo a ordem declarada.
func distinct(regions []string) []string {
	seen := make(map[string]bool, len(regions))
	out := make([]string, 0, len(regions))
	for _, r := range regions {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func stageNames(stages []types.Stage) []string {
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}
	return names
}
