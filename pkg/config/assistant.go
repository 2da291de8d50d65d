package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AssistantProfile customizes the chatbot persona. Empty fields fall back
// to the built-in Portuguese defaults of the chatbot package.
type AssistantProfile struct {
	PersonaName     string `yaml:"persona_name"`
	WelcomeTemplate string `yaml:"welcome_template"`
	FallbackMessage string `yaml:"fallback_message"`
	PromptTemplate  string `yaml:"prompt_template"`
	IncludeReason   bool   `yaml:"include_reason"`
}

// LoadAssistantProfile reads a YAML profile. An empty path yields the zero profile.
func LoadAssistantProfile(path string) (AssistantProfile, error) {
	var profile AssistantProfile
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read assistant profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parse assistant profile: %w", err)
	}

	return profile, nil
}
