package project

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// DeployedEvent é o payload do hook pós-deploy: funções implantadas agrupadas por região.
type DeployedEvent struct {
	Deployed map[string][]DeployedFunction `json:"deployed"`
}

// DeployedFunction identifica uma função recém-implantada.
type DeployedFunction struct {
	LambdaName string `json:"lambdaName"`
}

// ParseDeployed lê um DeployedEvent e devolve os nomes implantados, sem repetição,
// ordenados pela região e pela ordem do payload.
func ParseDeployed(r io.Reader) ([]string, error) {
	var evt DeployedEvent
	if err := json.NewDecoder(r).Decode(&evt); err != nil {
		return nil, fmt.Errorf("decoding deployed event: %w", err)
	}

	regions := make([]string, 0, len(evt.Deployed))
	for region := range evt.Deployed {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	seen := map[string]bool{}
	var names []string
	for _, region := range regions {
		for _, fn := range evt.Deployed[region] {
			if fn.LambdaName == "" || seen[fn.LambdaName] {
				continue
			}
			seen[fn.LambdaName] = true
			names = append(names, fn.LambdaName)
		}
	}
	return names, nil
}
