package engine

import (
	"context"

	"github.com/Veraticus/the-notes-must-flow/internal/inbox"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
)

// Classifier maps a filename to a destination folder. Implementations
// always return a non-empty folder; failures are carried in the result.
type Classifier interface {
	Classify(ctx context.Context, filename string) model.ClassificationResult
}

// Scanner lists inbox files.
type Scanner interface {
	Scan(ctx context.Context) (inbox.ScanResult, error)
	Dir() string
}

// Relocator moves a file into a category folder.
type Relocator interface {
	Move(ctx context.Context, filename, folder string) (model.Relocation, error)
	Destination(folder string) (string, error)
}

// Synchronizer publishes the repository.
type Synchronizer interface {
	CheckSetup() error
	Sync(ctx context.Context) model.SyncReport
}

// Journal records run history.
type Journal interface {
	StartRun(ctx context.Context, info model.RunInfo) (int64, error)
	RecordRelocation(ctx context.Context, runID int64, rel model.Relocation) error
	RecordSync(ctx context.Context, runID int64, report model.SyncReport) error
	FinishRun(ctx context.Context, runID int64, summary model.RunSummary) error
}

// Reporter renders progress for a human.
type Reporter interface {
	Banner(root string)
	SetupWarning(err error)
	InboxCreated(dir string)
	InboxEmpty(dir string)
	Found(count int)
	Moved(rel model.Relocation)
	Planned(file, destination string, result model.ClassificationResult)
	MoveFailed(rel model.Relocation)
	Sync(report model.SyncReport)
	Summary(summary model.RunSummary)
	Separator()
}
