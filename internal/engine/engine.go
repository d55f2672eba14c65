// Package engine runs the scan, classify, relocate and synchronize pipeline.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
)

// Options wires the engine's collaborators. Synchronizer and Journal may be nil.
type Options struct {
	Classifier     Classifier
	Scanner        Scanner
	Relocator      Relocator
	Synchronizer   Synchronizer
	Journal        Journal
	Reporter       Reporter
	Logger         *slog.Logger
	Now            func() time.Time
	Root           string
	ClassifierName string
	DryRun         bool
}

// Engine organizes one inbox per Run.
type Engine struct {
	classifier     Classifier
	scanner        Scanner
	relocator      Relocator
	sync           Synchronizer
	journal        Journal
	reporter       Reporter
	logger         *slog.Logger
	now            func() time.Time
	root           string
	classifierName string
	dryRun         bool
}

// New creates an engine from opts.
func New(opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		classifier:     opts.Classifier,
		scanner:        opts.Scanner,
		relocator:      opts.Relocator,
		sync:           opts.Synchronizer,
		journal:        opts.Journal,
		reporter:       opts.Reporter,
		logger:         opts.Logger,
		now:            now,
		root:           opts.Root,
		classifierName: opts.ClassifierName,
		dryRun:         opts.DryRun,
	}
}

// Run performs one full pass. Relocation failures are recorded per file and
// do not stop the batch; synchronization failures are reported, not
// returned. The returned error is non-nil only when the inbox cannot be read
// or ctx was canceled.
func (e *Engine) Run(ctx context.Context) (model.RunSummary, error) {
	summary := model.RunSummary{
		StartedAt: e.now(),
		DryRun:    e.dryRun,
	}

	e.reporter.Banner(e.root)
	defer e.reporter.Separator()

	syncReady := e.checkSetup()
	runID := e.startRun(ctx, summary.StartedAt)

	runErr := e.organize(ctx, &summary, runID)

	if syncReady && runErr == nil && !summary.Interrupted {
		report := e.sync.Sync(ctx)
		if ctx.Err() != nil {
			summary.Interrupted = true
		}
		summary.Sync = &report
		e.reporter.Sync(report)
		e.recordSync(ctx, runID, report)
	}

	summary.FinishedAt = e.now()
	e.finishRun(runID, summary)
	e.reporter.Summary(summary)

	if runErr != nil {
		return summary, runErr
	}
	if summary.Interrupted {
		return summary, ctx.Err()
	}
	return summary, nil
}

func (e *Engine) checkSetup() bool {
	if e.sync == nil || e.dryRun {
		return false
	}
	if err := e.sync.CheckSetup(); err != nil {
		e.logger.Warn("repository setup check failed, skipping synchronization", "error", err)
		e.reporter.SetupWarning(err)
		return false
	}
	return true
}

func (e *Engine) organize(ctx context.Context, summary *model.RunSummary, runID int64) error {
	scan, err := e.scanner.Scan(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			summary.Interrupted = true
			return nil
		}
		return fmt.Errorf("failed to scan inbox: %w", err)
	}

	summary.InboxNew = scan.Created
	summary.Scanned = len(scan.Entries)

	switch {
	case scan.Created:
		e.reporter.InboxCreated(e.scanner.Dir())
		return nil
	case len(scan.Entries) == 0:
		e.reporter.InboxEmpty(e.scanner.Dir())
		return nil
	}

	e.reporter.Found(len(scan.Entries))

	for _, entry := range scan.Entries {
		if ctx.Err() != nil {
			e.logger.Warn("interrupted, leaving remaining files in the inbox")
			summary.Interrupted = true
			return nil
		}

		result := e.classifier.Classify(ctx, entry.Name)

		if e.dryRun {
			dest, _ := e.relocator.Destination(result.Folder)
			e.reporter.Planned(entry.Name, dest, result)
			summary.Relocations = append(summary.Relocations, model.Relocation{
				File:        entry.Name,
				Folder:      result.Folder,
				Destination: dest,
				Source:      result.Source,
			})
			continue
		}

		rel, moveErr := e.relocator.Move(ctx, entry.Name, result.Folder)
		rel.Source = result.Source
		if result.Fallback() {
			rel.ClassifyReason = result.Err.Error()
		}
		summary.Add(rel)
		e.recordRelocation(ctx, runID, rel)

		if moveErr != nil {
			common.LogError(e.logger, moveErr, "failed to move file", common.Fields{
				"file":   entry.Name,
				"folder": result.Folder,
			})
			e.reporter.MoveFailed(rel)
			if errors.Is(moveErr, context.Canceled) {
				summary.Interrupted = true
				return nil
			}
			continue
		}

		e.reporter.Moved(rel)
	}

	return nil
}

func (e *Engine) startRun(ctx context.Context, startedAt time.Time) int64 {
	if e.journal == nil {
		return 0
	}
	id, err := e.journal.StartRun(ctx, model.RunInfo{
		StartedAt:  startedAt,
		Root:       e.root,
		Classifier: e.classifierName,
		DryRun:     e.dryRun,
	})
	if err != nil {
		e.logger.Warn("failed to journal run start", "error", err)
		return 0
	}
	return id
}

func (e *Engine) recordRelocation(ctx context.Context, runID int64, rel model.Relocation) {
	if e.journal == nil || runID == 0 {
		return
	}
	// The move already happened; record it even if ctx was canceled meanwhile.
	if err := e.journal.RecordRelocation(context.WithoutCancel(ctx), runID, rel); err != nil {
		e.logger.Warn("failed to journal relocation", "file", rel.File, "error", err)
	}
}

func (e *Engine) recordSync(ctx context.Context, runID int64, report model.SyncReport) {
	if e.journal == nil || runID == 0 {
		return
	}
	if err := e.journal.RecordSync(context.WithoutCancel(ctx), runID, report); err != nil {
		e.logger.Warn("failed to journal sync", "error", err)
	}
}

func (e *Engine) finishRun(runID int64, summary model.RunSummary) {
	if e.journal == nil || runID == 0 {
		return
	}
	if err := e.journal.FinishRun(context.Background(), runID, summary); err != nil {
		e.logger.Warn("failed to journal run totals", "error", err)
	}
}
