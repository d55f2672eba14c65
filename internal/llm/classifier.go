package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"golang.org/x/time/rate"
)

// Classifier asks an inference service for a folder and falls back to the
// default folder whenever the answer cannot be obtained.
type Classifier struct {
	client        Client
	cache         *folderCache
	limiter       *rate.Limiter
	logger        *slog.Logger
	defaultFolder string
	categories    []string
	timeout       time.Duration
}

// NewClassifier creates a delegated classifier from cfg.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}
	return NewClassifierWithClient(client, cfg, logger), nil
}

// NewClassifierWithClient creates a delegated classifier around an existing client.
func NewClassifierWithClient(client Client, cfg Config, logger *slog.Logger) *Classifier {
	return &Classifier{
		client:        client,
		cache:         newFolderCache(cfg.CacheTTL),
		limiter:       newRateLimiter(cfg.RateLimit),
		logger:        logger,
		defaultFolder: cfg.DefaultFolder,
		categories:    cfg.Categories,
		timeout:       cfg.Timeout,
	}
}

// Classify returns the inferred folder for filename. It never fails: any
// transport, status or parsing problem yields the default folder with the
// cause kept in the result's Err.
func (c *Classifier) Classify(ctx context.Context, filename string) model.ClassificationResult {
	if folder, found := c.cache.get(filename); found {
		c.logger.Debug("cache hit for file", "file", filename, "folder", folder)
		return model.ClassificationResult{Folder: folder, Source: model.SourceInference}
	}

	folder, err := c.infer(ctx, filename)
	if err != nil {
		c.logger.Warn("inference failed, using default folder",
			"file", filename,
			"folder", c.defaultFolder,
			"error", err)
		return model.ClassificationResult{
			Folder: c.defaultFolder,
			Source: model.SourceDefault,
			Err:    err,
		}
	}

	c.cache.set(filename, folder)
	c.logger.Info("file classified by inference", "file", filename, "folder", folder)

	return model.ClassificationResult{Folder: folder, Source: model.SourceInference}
}

func (c *Classifier) infer(ctx context.Context, filename string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter canceled: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reply, err := c.client.Generate(ctx, BuildPrompt(filename, c.categories, c.defaultFolder))
	if err != nil {
		return "", err
	}

	return ParseFolder(reply)
}
