// Package project carrega os metadados de implantação: stages, regiões,
// funções e a configuração do sink de logs.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// DefaultNameTemplate é o padrão de nome implantado quando o projeto não define um.
const DefaultNameTemplate = "{project}-{function}"

// DefaultFile é o arquivo de projeto procurado no diretório atual.
const DefaultFile = "logstream.yaml"

// Project descreve um projeto implantado.
type Project struct {
	Name            string        `yaml:"project" toml:"project"`
	NameTemplate    string        `yaml:"name_template" toml:"name_template"`
	VersionPerStage bool          `yaml:"version_per_stage" toml:"version_per_stage"`
	StageList       []types.Stage `yaml:"stages" toml:"stages"`
	Functions       []string      `yaml:"functions" toml:"functions"`
	Custom          Custom        `yaml:"custom" toml:"custom"`
}

// Custom é o bloco de configurações específicas de plugins.
type Custom struct {
	LogStreaming LogStreaming `yaml:"logStreaming" toml:"logStreaming"`
}

// LogStreaming configura o sink. External indica que FunctionName já é o nome
// implantado final de uma função fora do projeto.
type LogStreaming struct {
	FunctionName string `yaml:"functionName" toml:"functionName"`
	External     bool   `yaml:"external" toml:"external"`
	Qualifier    string `yaml:"qualifier" toml:"qualifier"`
}

// Load lê o arquivo de projeto; .toml usa TOML, qualquer outra extensão usa YAML.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	var p Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &p)
	default:
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	return &p, nil
}

// Validate verifica a estrutura do projeto e aplica os padrões.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.NameTemplate == "" {
		p.NameTemplate = DefaultNameTemplate
	}
	if !strings.Contains(p.NameTemplate, "{function}") {
		return fmt.Errorf("name_template %q must contain {function}", p.NameTemplate)
	}
	if len(p.StageList) == 0 {
		return fmt.Errorf("at least one stage is required")
	}

	seenStages := make(map[string]bool, len(p.StageList))
	for _, s := range p.StageList {
		if s.Name == "" {
			return fmt.Errorf("stage name is required")
		}
		if seenStages[s.Name] {
			return fmt.Errorf("duplicate stage %q", s.Name)
		}
		seenStages[s.Name] = true
		if len(s.Regions) == 0 {
			return fmt.Errorf("stage %q has no regions", s.Name)
		}
		seenRegions := make(map[string]bool, len(s.Regions))
		for _, r := range s.Regions {
			if strings.TrimSpace(r) == "" {
				return fmt.Errorf("stage %q has an empty region", s.Name)
			}
			if seenRegions[r] {
				return fmt.Errorf("stage %q lists region %q twice", s.Name, r)
			}
			seenRegions[r] = true
		}
	}

	seenFns := make(map[string]bool, len(p.Functions))
	for _, fn := range p.Functions {
		if fn == "" {
			return fmt.Errorf("function name is required")
		}
		if seenFns[fn] {
			return fmt.Errorf("duplicate function %q", fn)
		}
		seenFns[fn] = true
	}
	return nil
}

// Stages devolve os stages na ordem declarada.
func (p *Project) Stages() []types.Stage {
	return p.StageList
}

// Profiles mapeia stage para o profile de credenciais AWS.
func (p *Project) Profiles() map[string]string {
	out := make(map[string]string, len(p.StageList))
	for _, s := range p.StageList {
		if s.Profile != "" {
			out[s.Name] = s.Profile
		}
	}
	return out
}

// FunctionNames devolve os nomes lógicos de todas as funções.
func (p *Project) FunctionNames() []string {
	return p.Functions
}

// HasFunction informa se o nome lógico pertence ao projeto.
func (p *Project) HasFunction(name string) bool {
	for _, fn := range p.Functions {
		if fn == name {
			return true
		}
	}
	return false
}

// DeployedName aplica o name_template ao nome lógico no scope.
func (p *Project) DeployedName(function string, scope types.Scope) (string, error) {
	if !p.HasFunction(function) {
		return "", fmt.Errorf("function %q is not part of project %q", function, p.Name)
	}
	tmpl := p.NameTemplate
	if tmpl == "" {
		tmpl = DefaultNameTemplate
	}
	r := strings.NewReplacer(
		"{project}", p.Name,
		"{stage}", scope.Stage,
		"{region}", scope.Region,
		"{function}", function,
	)
	return r.Replace(tmpl), nil
}

// SinkName devolve o nome configurado do sink.
func (p *Project) SinkName() string {
	return p.Custom.LogStreaming.FunctionName
}

// ExternalSink informa se o sink é uma função externa ao projeto.
func (p *Project) ExternalSink() bool {
	return p.Custom.LogStreaming.External
}

// SinkQualifier devolve o qualifier do sink: o configurado explicitamente ou,
// com version_per_stage, o próprio stage.
func (p *Project) SinkQualifier(scope types.Scope) string {
	if q := p.Custom.LogStreaming.Qualifier; q != "" {
		return q
	}
	if p.VersionPerStage {
		return scope.Stage
	}
	return ""
}
