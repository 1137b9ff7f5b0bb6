package main

import (
	"log"

	api "mailqa-backend/cmd/api"
	emailRepo "mailqa-backend/internal/email/repository"
	emailUsecase "mailqa-backend/internal/email/usecase"
	"mailqa-backend/pkg/ai"
	"mailqa-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Latency can be toggled at runtime through /api/settings/latency
	api.InitRuntimeConfig(cfg.SimulateLatency)
	delay := emailUsecase.Delay(api.RuntimeDelay(emailUsecase.Sleep))

	// Initialize repositories (dependency injection)
	workspaceRepository := emailRepo.NewWorkspaceRepository()

	responder, err := ai.NewResponder(ai.Config{Provider: ai.ProviderKeyword})
	if err != nil {
		log.Fatal("Failed to initialize responder:", err)
	}

	sample := emailUsecase.SampleSource(emailUsecase.BuiltinSample)
	if cfg.SampleEmailsFile != "" {
		sample = emailUsecase.FileSample(cfg.SampleEmailsFile)
		log.Printf("Using sample emails from %s", cfg.SampleEmailsFile)
	}

	// Initialize use cases (dependency injection)
	indexer := emailUsecase.NewIndexer(delay, cfg.IndexDelay)
	workspaceUsecase := emailUsecase.NewWorkspaceUsecase(workspaceRepository, responder, indexer, emailUsecase.Options{
		Delay: delay,
		Delays: emailUsecase.Delays{
			Load:   cfg.LoadDelay,
			Upload: cfg.UploadDelay,
			Answer: cfg.AnswerDelay,
		},
		Sample: sample,
	})

	// Initialize HTTP handler
	handler := api.NewHandler(workspaceUsecase, cfg)

	log.Printf("Server starting on port %s (simulated latency: %t)", cfg.Port, cfg.SimulateLatency)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
