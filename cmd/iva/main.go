package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"iva/internal/agent"
	"iva/internal/cli"
	"iva/internal/config"
	"iva/internal/llm"
	"iva/internal/logger"
	"iva/internal/memory"
	"iva/internal/vision"
)

func main() {
	// A missing .env is fine; the environment itself may carry the keys.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Fatal Error: Could not load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogFile); err != nil {
		log.Fatalf("Fatal Error: Could not initialize logger: %v", err)
	}

	provider, err := llm.New(cfg.LLM)
	if err != nil {
		log.Fatalf("Fatal Error: Could not initialize LLM backend: %v", err)
	}

	store, err := memory.OpenSQLite(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Fatal Error: Could not open memory store: %v", err)
	}
	defer store.Close()

	a := agent.New(agent.Deps{
		Planner:    llm.NewCompleter(provider, agent.PlanConstructionPrompt, cfg.LLM.Model),
		Structurer: llm.NewStructured[agent.Plan](provider, agent.PlanStructurePrompt, cfg.LLM.Model, agent.PlanSchema()),
		Assessor:   llm.NewStructured[agent.Assessment](provider, agent.ResultEvaluationPrompt, cfg.LLM.Model, agent.AssessmentSchema()),
		Specialist: vision.NewFlorence(cfg.Florence),
		Generalist: vision.NewGeneralist(provider, cfg.LLM.VisionModel, cfg.Agent.ResizeWidth),
		Store:      store,
	})

	cli.Execute(&cli.App{Agent: a, Store: store, Cfg: cfg})
}
