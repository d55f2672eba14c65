package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestReporter_BannerAndSeparator(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Banner("/home/me/notes")
	r.Separator()

	out := buf.String()
	assert.Contains(t, out, "--- Running in: /home/me/notes ---")
	assert.Contains(t, out, strings.Repeat("-", SeparatorWidth))
}

func TestReporter_SetupWarningPrintsHints(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := common.NewUserError("notes folder is not a git repository", common.ErrNotARepository,
		"cd /notes", "git init", "git remote add origin <your-remote-url>")
	r.SetupWarning(err)

	out := buf.String()
	assert.Contains(t, out, "notes folder is not a git repository")
	assert.NotContains(t, out, "not a git repository: not a git repository")
	assert.Contains(t, out, "git init")
	assert.Contains(t, out, "git remote add origin <your-remote-url>")
}

func TestReporter_RelocationLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Found(2)
	r.Moved(model.Relocation{File: "quantum_notes.md", Folder: "Quantum_Mechanics"})
	r.Moved(model.Relocation{File: "triso.md", Folder: "Uncategorized", ClassifyReason: "inference service unavailable"})
	r.MoveFailed(model.Relocation{File: "locked.pdf", Err: errors.New("permission denied")})

	out := buf.String()
	assert.Contains(t, out, "Found 2 files to organize.")
	assert.Contains(t, out, "moved: quantum_notes.md -> Quantum_Mechanics")
	assert.Contains(t, out, "(fallback: inference service unavailable)")
	assert.Contains(t, out, "failed: locked.pdf (permission denied)")
}

func TestReporter_InboxStates(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.InboxCreated("/notes/_Inbox")
	r.InboxEmpty("/notes/_Inbox")
	r.Found(1)

	out := buf.String()
	assert.Contains(t, out, "Created inbox /notes/_Inbox")
	assert.Contains(t, out, "is empty, nothing to organize")
	assert.Contains(t, out, "Found 1 file to organize.")
}

func TestReporter_Sync(t *testing.T) {
	tests := []struct {
		name   string
		report model.SyncReport
		want   []string
	}{
		{
			name:   "clean",
			report: model.SyncReport{Step: model.StepCheckDirty, Clean: true},
			want:   []string{"Nothing new to publish."},
		},
		{
			name:   "pushed",
			report: model.SyncReport{Step: model.StepPush, Committed: true, Pushed: true, Message: "Notes update: 2025-01-02 03:04"},
			want:   []string{"Published: Notes update: 2025-01-02 03:04"},
		},
		{
			name: "push failed",
			report: model.SyncReport{
				Step:   model.StepPush,
				Err:    common.NewUserError("push rejected", common.ErrSyncFailed, "git pull --rebase origin main"),
				Output: "! [rejected] main -> main (fetch first)",
			},
			want: []string{"Publishing failed at push", "[rejected]", "git pull --rebase origin main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf).Sync(tt.report)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestReporter_Summary(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)

	t.Run("nothing processed", func(t *testing.T) {
		var buf bytes.Buffer
		NewReporter(&buf).Summary(model.RunSummary{StartedAt: start})
		assert.Empty(t, buf.String())
	})

	t.Run("totals", func(t *testing.T) {
		var buf bytes.Buffer
		summary := model.RunSummary{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
		summary.Add(model.Relocation{File: "a.md", MovedAt: start})
		summary.Add(model.Relocation{File: "b.md", Err: errors.New("boom")})
		summary.Add(model.Relocation{File: "c.md", MovedAt: start, Source: model.SourceDefault, ClassifyReason: "timeout"})

		NewReporter(&buf).Summary(summary)

		out := buf.String()
		assert.Contains(t, out, "Organizing Complete")
		assert.Contains(t, out, "Moved: 2")
		assert.Contains(t, out, "Failed: 1")
		assert.Contains(t, out, "Fallbacks to default folder: 1")
		assert.Contains(t, out, "1.5s")
	})

	t.Run("dry run", func(t *testing.T) {
		var buf bytes.Buffer
		summary := model.RunSummary{StartedAt: start, DryRun: true, Relocations: []model.Relocation{{File: "a.md"}}}
		NewReporter(&buf).Summary(summary)
		assert.Contains(t, buf.String(), "Dry Run")
		assert.Contains(t, buf.String(), "Planned: 1")
	})
}

func TestReporter_ProgressBar(t *testing.T) {
	var out, bar bytes.Buffer
	r := NewReporter(&out, WithProgressBar(&bar))

	r.Found(3)
	r.Moved(model.Relocation{File: "a.md", Folder: "Labs_and_Data"})
	r.Moved(model.Relocation{File: "b.md", Folder: "Labs_and_Data"})
	r.Moved(model.Relocation{File: "c.md", Folder: "Labs_and_Data"})
	r.Separator()

	assert.Contains(t, bar.String(), "Organizing notes")
	assert.Contains(t, out.String(), "moved: c.md -> Labs_and_Data")
	assert.Nil(t, r.progressBar)
}

func TestReporter_NoProgressBarForSingleFile(t *testing.T) {
	var out, bar bytes.Buffer
	r := NewReporter(&out, WithProgressBar(&bar))

	r.Found(1)
	assert.Nil(t, r.progressBar)
	r.Moved(model.Relocation{File: "a.md", Folder: "Labs_and_Data"})
	assert.Empty(t, bar.String())
}
