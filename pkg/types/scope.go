package types

import "fmt"

// Scope identifica o ambiente (stage, region) alvo de uma execução.
type Scope struct {
	Stage  string `json:"stage"`
	Region string `json:"region"`
}

// Validate garante que ambos os campos foram resolvidos.
func (s Scope) Validate() error {
	if s.Stage == "" {
		return fmt.Errorf("scope stage is empty")
	}
	if s.Region == "" {
		return fmt.Errorf("scope region is empty")
	}
	return nil
}

func (s Scope) String() string {
	return s.Stage + "/" + s.Region
}

// Stage é um stage disponível e suas regiões, na ordem declarada.
type Stage struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Profile string   `json:"profile,omitempty" yaml:"profile,omitempty" toml:"profile,omitempty"`
	Regions []string `json:"regions" yaml:"regions" toml:"regions"`
}
