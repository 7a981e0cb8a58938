package project

import (
	"fmt"

	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// Inline descreve um projeto de um único scope declarado fora de um arquivo,
// como no recurso Terraform.
type Inline struct {
	Project      string
	NameTemplate string
	Stage        string
	Region       string
	Profile      string
	SinkFunction string
	ExternalSink bool
	Qualifier    string
}

// FromInline monta um Project restrito ao scope informado. O sink é a única
// função lógica conhecida; as demais chegam já com o nome implantado.
func FromInline(in Inline) (*Project, error) {
	if err := (types.Scope{Stage: in.Stage, Region: in.Region}).Validate(); err != nil {
		return nil, err
	}
	name := in.Project
	if name == "" {
		if !in.ExternalSink {
			return nil, fmt.Errorf("project is required for a sink inside the project")
		}
		name = in.SinkFunction
	}

	p := &Project{
		Name:         name,
		NameTemplate: in.NameTemplate,
		StageList:    []types.Stage{{Name: in.Stage, Profile: in.Profile, Regions: []string{in.Region}}},
		Custom: Custom{LogStreaming: LogStreaming{
			FunctionName: in.SinkFunction,
			External:     in.ExternalSink,
			Qualifier:    in.Qualifier,
		}},
	}
	if in.SinkFunction != "" && !in.ExternalSink {
		p.Functions = []string{in.SinkFunction}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
