package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-parser/internal/classify"
	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/models"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/resolve"
	"github.com/jonathan/resume-parser/internal/storage"
)

// app holds the long-lived components shared by the subcommands.
type app struct {
	Pipeline *pipeline.Pipeline
	Models   *resolve.Models
	Objects  *storage.ObjectStore
	close    func()
}

func (a *app) Close() {
	if a.close != nil {
		a.close()
	}
}

// newDocumentExtractor creates the text extractor with OCR for image uploads.
func newDocumentExtractor(cfg *config.Config) *ingestion.Extractor {
	return ingestion.NewExtractor(ingestion.NewTesseractOCR(cfg.OCR.Command, cfg.OCR.Language))
}

// objectStore connects to the configured object store, or returns nil when none is configured.
func objectStore(cfg *config.Config) (*storage.ObjectStore, error) {
	if !cfg.Storage.Enabled() {
		return nil, nil
	}
	return storage.New(cfg.Storage)
}

// objectGetter avoids handing a typed nil store to the model loaders.
func objectGetter(store *storage.ObjectStore) classify.ObjectGetter {
	if store == nil {
		return nil
	}
	return store
}

// newApp wires the full parsing pipeline from cfg.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("an AI API key is required (set GEMINI_API_KEY or ai.api_key)")
	}

	objects, err := objectStore(cfg)
	if err != nil {
		return nil, err
	}

	m, err := models.Load(ctx, cfg, objectGetter(objects))
	if err != nil {
		return nil, err
	}

	ai, err := parsing.NewGeminiExtractor(ctx, cfg.AI.APIKey, parsing.Options{
		Tier:    llm.ModelTier(cfg.AI.Tier),
		Timeout: cfg.AI.Timeout,
		Retries: cfg.AI.Retries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AI extractor: %w", err)
	}

	p := pipeline.New(newDocumentExtractor(cfg), resolve.New(ai, m))
	p.ValidateOutput = cfg.Server.ValidateOutput

	log.Debug().Str("tier", cfg.AI.Tier).Bool("object_store", objects != nil).Msg("pipeline ready")
	return &app{
		Pipeline: p,
		Models:   m,
		Objects:  objects,
		close: func() {
			if err := ai.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close AI client")
			}
		},
	}, nil
}
