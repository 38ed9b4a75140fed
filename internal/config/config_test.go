package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.Provider != "openrouter" {
		t.Errorf("default provider = %q, want openrouter", cfg.AI.Provider)
	}
	if cfg.Wizard.MaxSuggestions != 5 {
		t.Errorf("default max suggestions = %d, want 5", cfg.Wizard.MaxSuggestions)
	}
	if cfg.History.StoragePath == "" {
		t.Error("expected a default saved recipes path")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "groq")
	t.Setenv("AI_MODEL", "llama-3.3-70b-versatile")
	t.Setenv("MAX_SUGGESTIONS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.Provider != "groq" {
		t.Errorf("provider = %q, want groq", cfg.AI.Provider)
	}
	if cfg.AI.Model != "llama-3.3-70b-versatile" {
		t.Errorf("model = %q", cfg.AI.Model)
	}
	if cfg.Wizard.MaxSuggestions != 3 {
		t.Errorf("max suggestions = %d, want 3", cfg.Wizard.MaxSuggestions)
	}
}

func TestLoadRejectsBadMaxSuggestions(t *testing.T) {
	t.Setenv("MAX_SUGGESTIONS", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric MAX_SUGGESTIONS")
	}
}
