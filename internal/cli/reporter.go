package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Reporter prints run progress for a human reader.
type Reporter struct {
	writer      io.Writer
	barWriter   io.Writer
	progressBar *progressbar.ProgressBar
	showBar     bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithProgressBar renders a progress bar to w for batches of more than one file.
func WithProgressBar(w io.Writer) ReporterOption {
	return func(r *Reporter) {
		r.showBar = true
		r.barWriter = w
	}
}

// NewReporter creates a reporter writing to writer (stdout when nil).
func NewReporter(writer io.Writer, opts ...ReporterOption) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{writer: writer}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Banner announces the repository root the run operates on.
func (r *Reporter) Banner(root string) {
	r.println(FormatTitle("--- Running in: " + root + " ---"))
}

// SetupWarning explains why publishing will be skipped and how to fix it.
func (r *Reporter) SetupWarning(err error) {
	msg := err.Error()
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		msg = userErr.UserMessage
	}
	r.println(FormatWarning(msg))
	r.printHints(common.UserHints(err))
}

// InboxCreated reports that the inbox did not exist and was created.
func (r *Reporter) InboxCreated(dir string) {
	r.println(FormatInfo("Created inbox " + dir + ". Drop notes there and run again."))
}

// InboxEmpty reports that there is nothing to organize.
func (r *Reporter) InboxEmpty(dir string) {
	r.println(FormatInfo("Inbox " + dir + " is empty, nothing to organize."))
}

// Found announces the batch size and starts the progress bar.
func (r *Reporter) Found(count int) {
	noun := "files"
	if count == 1 {
		noun = "file"
	}
	r.println(FormatInfo(fmt.Sprintf("Found %d %s to organize.", count, noun)))

	if r.showBar && count > 1 {
		r.initProgressBar(count)
	}
}

// Moved reports a successful relocation.
func (r *Reporter) Moved(rel model.Relocation) {
	line := FormatSuccess(fmt.Sprintf("moved: %s -> %s", rel.File, rel.Folder))
	if rel.ClassifyReason != "" {
		line += " " + SubtleStyle.Render("(fallback: "+rel.ClassifyReason+")")
	}
	r.println(line)
	r.advance()
}

// Planned reports what a dry run would do.
func (r *Reporter) Planned(file, destination string, result model.ClassificationResult) {
	line := InfoStyle.Render(fmt.Sprintf("would move: %s -> %s", file, destination))
	line += " " + SubtleStyle.Render("["+string(result.Source)+"]")
	if result.Err != nil {
		line += " " + SubtleStyle.Render("(fallback: "+result.Err.Error()+")")
	}
	r.println(line)
	r.advance()
}

// MoveFailed reports a file that stayed in the inbox.
func (r *Reporter) MoveFailed(rel model.Relocation) {
	reason := "unknown error"
	if rel.Err != nil {
		reason = rel.Err.Error()
	}
	r.println(FormatError(fmt.Sprintf("failed: %s (%s)", rel.File, reason)))
	r.advance()
}

// Sync reports the outcome of publishing.
func (r *Reporter) Sync(report model.SyncReport) {
	r.finishProgressBar()

	switch {
	case report.Err != nil:
		r.println(FormatError(fmt.Sprintf("Publishing failed at %s: %v", report.Step, report.Err)))
		if report.Output != "" {
			for _, line := range strings.Split(report.Output, "\n") {
				r.println(FormatHint(line))
			}
		}
		r.printHints(common.UserHints(report.Err))
	case report.Clean:
		r.println(FormatInfo("Nothing new to publish."))
	default:
		r.println(FormatSuccess(SyncIcon + " Published: " + report.Message))
	}
}

// Summary prints run totals when anything was processed.
func (r *Reporter) Summary(summary model.RunSummary) {
	r.finishProgressBar()

	if len(summary.Relocations) == 0 {
		return
	}

	var b strings.Builder
	if summary.DryRun {
		fmt.Fprintf(&b, "  • Planned: %d\n", len(summary.Relocations))
	} else {
		fmt.Fprintf(&b, "  • Moved: %d\n", summary.Moved)
		fmt.Fprintf(&b, "  • Failed: %d\n", summary.Failed)
	}
	if summary.Fallbacks > 0 {
		fmt.Fprintf(&b, "  • Fallbacks to default folder: %d\n", summary.Fallbacks)
	}
	if !summary.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "  • Time taken: %s", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	}
	if summary.Interrupted {
		b.WriteString("\n  • Interrupted before the inbox was emptied")
	}

	title := "Organizing Complete"
	if summary.DryRun {
		title = "Dry Run"
	}
	r.println(RenderBox(title, strings.TrimRight(b.String(), "\n")))
}

// Separator prints the closing line of a run.
func (r *Reporter) Separator() {
	r.finishProgressBar()
	r.println(Separator())
}

func (r *Reporter) printHints(hints []string) {
	for _, hint := range hints {
		r.println(FormatHint(hint))
	}
}

func (r *Reporter) println(s string) {
	if r.progressBar != nil {
		if err := r.progressBar.Clear(); err != nil {
			slog.Warn("Failed to clear progress bar", "error", err)
		}
	}
	if _, err := fmt.Fprintln(r.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func (r *Reporter) initProgressBar(total int) {
	r.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.barWriter),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]Organizing notes...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *Reporter) advance() {
	if r.progressBar == nil {
		return
	}
	if err := r.progressBar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (r *Reporter) finishProgressBar() {
	if r.progressBar == nil {
		return
	}
	bar := r.progressBar
	r.progressBar = nil
	if err := bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(r.barWriter); err != nil {
		slog.Warn("Failed to write newline after progress bar", "error", err)
	}
}
