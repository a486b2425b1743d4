package digest

import (
	"strings"
	"testing"
)

func TestLoadPrompts(t *testing.T) {
	prompts, err := LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}

	if prompts.NewsSummary.Subject == "" {
		t.Error("Expected news summary subject to be set")
	}
	if !strings.Contains(prompts.NewsSummary.Prompt, "{{newsdata}}") {
		t.Error("Expected news summary prompt to contain the {{newsdata}} placeholder")
	}
	if !strings.Contains(prompts.Welcome.Prompt, "{{userProfile}}") {
		t.Error("Expected welcome prompt to contain the {{userProfile}} placeholder")
	}
}

func TestPromptTemplate_Render(t *testing.T) {
	tmpl := PromptTemplate{Prompt: "Summarize: {{newsdata}}"}

	got := tmpl.Render("newsdata", `[{"id":"1"}]`)

	if got != `Summarize: [{"id":"1"}]` {
		t.Errorf("Unexpected rendered prompt: %s", got)
	}
	if strings.Contains(got, "{{") {
		t.Error("Expected placeholder to be fully substituted")
	}
}
