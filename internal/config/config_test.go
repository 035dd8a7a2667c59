package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"iva/internal/llm"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Backend != "gemini" {
		t.Errorf("llm.backend = %q, want gemini", cfg.LLM.Backend)
	}
	if cfg.Storage.Path != "iva.db" || cfg.Storage.BusyTimeout != 5*time.Second {
		t.Errorf("storage defaults wrong: %+v", cfg.Storage)
	}
	if cfg.Agent.MaxPlans != 2 || cfg.Agent.ResizeWidth != 512 {
		t.Errorf("agent defaults wrong: %+v", cfg.Agent)
	}
	if cfg.Florence.Timeout != 60*time.Second {
		t.Errorf("florence.timeout = %v, want 60s", cfg.Florence.Timeout)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)

	content := []byte(`
llm:
  backend: "ollama"
  model: "phi4:latest"
florence:
  endpoint: "http://gpu-box:8000/florence"
  timeout: "90s"
storage:
  path: "custom.db"
agent:
  max_plans: 4
`)
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Backend != "ollama" || cfg.LLM.Model != "phi4:latest" {
		t.Errorf("llm not loaded from file: %+v", cfg.LLM)
	}
	if cfg.Florence.Endpoint != "http://gpu-box:8000/florence" || cfg.Florence.Timeout != 90*time.Second {
		t.Errorf("florence not loaded from file: %+v", cfg.Florence)
	}
	if cfg.Agent.MaxPlans != 4 {
		t.Errorf("agent.max_plans = %d, want 4", cfg.Agent.MaxPlans)
	}
	// Fields the file omits keep their defaults.
	if cfg.Agent.ResizeWidth != 512 {
		t.Errorf("agent.resize_width = %d, want default 512", cfg.Agent.ResizeWidth)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("IVA_LLM_BACKEND", "ollama")
	t.Setenv("IVA_STORAGE_PATH", "env.db")
	t.Setenv("IVA_AGENT_MAX_PLANS", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Backend != "ollama" {
		t.Errorf("llm.backend = %q, want ollama", cfg.LLM.Backend)
	}
	if cfg.Storage.Path != "env.db" {
		t.Errorf("storage.path = %q, want env.db", cfg.Storage.Path)
	}
	if cfg.Agent.MaxPlans != 5 {
		t.Errorf("agent.max_plans = %d, want 5", cfg.Agent.MaxPlans)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("IVA_LLM_BACKEND", "bedrock")

	if _, err := Load(""); err == nil {
		t.Fatal("unknown backend accepted")
	}
}

func TestValidateRequiresFlorenceEndpoint(t *testing.T) {
	cfg := Config{LLM: llm.Config{Backend: "gemini"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty florence endpoint accepted")
	}
}
