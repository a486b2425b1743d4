package digest

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yml
var promptsData []byte

type PromptTemplate struct {
	Subject string `yaml:"subject"`
	Prompt  string `yaml:"prompt"`
}

type Prompts struct {
	NewsSummary PromptTemplate `yaml:"news_summary"`
	Welcome     PromptTemplate `yaml:"welcome"`
}

// LoadPrompts parses the embedded prompt templates.
func LoadPrompts() (*Prompts, error) {
	var prompts Prompts
	if err := yaml.Unmarshal(promptsData, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}

	if prompts.NewsSummary.Prompt == "" || prompts.Welcome.Prompt == "" {
		return nil, fmt.Errorf("prompt templates are incomplete")
	}

	return &prompts, nil
}

// Render substitutes a single {{placeholder}} in the template.
func (t PromptTemplate) Render(placeholder, value string) string {
	return strings.ReplaceAll(t.Prompt, "{{"+placeholder+"}}", value)
}
