package engine

import (
	"context"
	"testing"

	"proofreader/api/internal/proofread/prompt"
)

type stubEngine struct{ name string }

func (s stubEngine) Name() string  { return s.name }
func (s stubEngine) Model() string { return s.name + "-model" }
func (s stubEngine) Generate(context.Context, prompt.Request) (string, error) {
	return "{}", nil
}

func TestEnginesGetEngine(t *testing.T) {
	engs := NewEngines(stubEngine{"gemini"}, stubEngine{"openai"}, nil)

	tests := []struct {
		in   string
		want string
	}{
		{"", "gemini"},
		{"gemini", "gemini"},
		{" Gemini ", "gemini"},
		{"openai", "openai"},
		{"gpt", "openai"},
	}
	for _, tt := range tests {
		eng, err := engs.GetEngine(tt.in)
		if err != nil {
			t.Fatalf("GetEngine(%q): %v", tt.in, err)
		}
		if eng.Name() != tt.want {
			t.Errorf("GetEngine(%q) = %s, want %s", tt.in, eng.Name(), tt.want)
		}
	}

	if _, err := engs.GetEngine("deepseek"); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestEnginesNames(t *testing.T) {
	engs := NewEngines(stubEngine{"openai"}, stubEngine{"gemini"})
	got := engs.Names()
	if len(got) != 2 || got[0] != "gemini" || got[1] != "openai" {
		t.Errorf("Names = %v", got)
	}
	if engs.Default != "openai" {
		t.Errorf("Default = %q, want openai", engs.Default)
	}
}
