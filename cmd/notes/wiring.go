package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-notes-must-flow/internal/config"
	"github.com/Veraticus/the-notes-must-flow/internal/engine"
	"github.com/Veraticus/the-notes-must-flow/internal/gitsync"
	"github.com/Veraticus/the-notes-must-flow/internal/llm"
	"github.com/Veraticus/the-notes-must-flow/internal/pattern"
	"github.com/Veraticus/the-notes-must-flow/internal/storage"
)

// newClassifier builds the classifier selected by cfg.Classifier.
func newClassifier(cfg *config.Config, logger *slog.Logger) (engine.Classifier, error) {
	switch cfg.Classifier {
	case config.ClassifierRule:
		return pattern.NewMatcher(cfg.Rules, cfg.DefaultFolder), nil
	case config.ClassifierLLM:
		classifier, err := llm.NewClassifier(llm.Config{
			Provider:      cfg.LLM.Provider,
			Endpoint:      cfg.LLM.Endpoint,
			Model:         cfg.LLM.Model,
			APIKey:        cfg.LLM.APIKey,
			DefaultFolder: cfg.DefaultFolder,
			Categories:    cfg.LLM.Categories,
			Timeout:       cfg.LLM.Timeout,
			CacheTTL:      cfg.LLM.CacheTTL,
			RateLimit:     cfg.LLM.RateLimit,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create inference classifier: %w", err)
		}
		return classifier, nil
	default:
		return nil, fmt.Errorf("unknown classifier %q", cfg.Classifier)
	}
}

func newSynchronizer(cfg *config.Config, logger *slog.Logger) *gitsync.Synchronizer {
	return gitsync.New(gitsync.Options{
		Runner: gitsync.ExecRunner{
			Binary:  cfg.Git.Binary,
			Timeout: cfg.Git.Timeout,
		},
		Logger:       logger,
		Root:         cfg.RepoRoot,
		Remote:       cfg.Git.Remote,
		Branch:       cfg.Git.Branch,
		CommitPrefix: cfg.Git.CommitPrefix,
	})
}

// openJournal opens and migrates the run journal.
func openJournal(ctx context.Context, path string) (*storage.SQLiteStorage, func(), error) {
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	slog.Debug("journal ready", "path", store.Path())

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close journal", "error", err)
		}
	}
	return store, cleanup, nil
}
