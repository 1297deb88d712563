package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a fixed pre-recorded voice scenario. Its recording ships with
// the deployment and is never deleted by the voice pipeline; only the
// transcoded derivative is temporary.
type Scenario struct {
	Name        string `yaml:"name"`
	Recording   string `yaml:"recording"`
	Description string `yaml:"description"`
}

// Scenarios is the catalog of pre-recorded voice scenarios loaded from YAML.
type Scenarios struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads and parses the scenario catalog file.
func LoadScenarios(path string) (*Scenarios, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios file: %w", err)
	}

	var scenarios Scenarios
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios YAML: %w", err)
	}

	return &scenarios, nil
}

// Find returns the scenario with the given name, or nil if no such
// scenario exists in the catalog.
func (s *Scenarios) Find(name string) *Scenario {
	for i := range s.Scenarios {
		if s.Scenarios[i].Name == name {
			return &s.Scenarios[i]
		}
	}
	return nil
}
