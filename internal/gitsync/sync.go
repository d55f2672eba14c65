// Package gitsync commits and publishes the repository after files are filed.
package gitsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/spf13/afero"
)

// CommitTimeLayout formats the commit timestamp to the minute.
const CommitTimeLayout = "2006-01-02 15:04"

// StepError is a failed git invocation within the synchronization pipeline.
type StepError struct {
	Err    error
	Step   model.SyncStep
	Output string
	Args   []string
	Hints  []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed (git %s): %v", e.Step, strings.Join(e.Args, " "), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RemediationHints returns suggested follow-up commands.
func (e *StepError) RemediationHints() []string {
	return e.Hints
}

// Is makes every StepError match common.ErrSyncFailed.
func (e *StepError) Is(target error) bool {
	return target == common.ErrSyncFailed
}

// Options configures a Synchronizer.
type Options struct {
	Fs           afero.Fs
	Runner       Runner
	Logger       *slog.Logger
	Now          func() time.Time
	Root         string
	Remote       string
	Branch       string
	CommitPrefix string
}

// Synchronizer stages, commits and pushes the repository root.
type Synchronizer struct {
	fs           afero.Fs
	runner       Runner
	logger       *slog.Logger
	now          func() time.Time
	root         string
	remote       string
	branch       string
	commitPrefix string
}

// New creates a Synchronizer.
func New(opts Options) *Synchronizer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Synchronizer{
		fs:           fs,
		runner:       opts.Runner,
		logger:       opts.Logger,
		now:          now,
		root:         opts.Root,
		remote:       opts.Remote,
		branch:       opts.Branch,
		commitPrefix: opts.CommitPrefix,
	}
}

// CheckSetup verifies the root is an initialized git working tree.
func (s *Synchronizer) CheckSetup() error {
	_, err := s.fs.Stat(filepath.Join(s.root, ".git"))
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to inspect %s: %w", s.root, err)
	}

	return common.NewUserError("this folder is not a git repository yet", common.ErrNotARepository,
		"cd "+s.root,
		"git init",
		fmt.Sprintf("git remote add %s <your-remote-url>", s.remote),
	)
}

// CommitMessage returns the message used for a commit made at t.
func (s *Synchronizer) CommitMessage(t time.Time) string {
	return s.commitPrefix + t.Format(CommitTimeLayout)
}

// Sync runs stage, check-dirty, commit and push in order, stopping at the
// first failure. A clean tree stops after check-dirty without committing.
// Failures are reported in the returned SyncReport, never returned as errors.
func (s *Synchronizer) Sync(ctx context.Context) model.SyncReport {
	var report model.SyncReport

	report.Step = model.StepStage
	if _, err := s.run(ctx, model.StepStage, "add", "."); err != nil {
		return s.fail(report, err)
	}

	report.Step = model.StepCheckDirty
	status, err := s.run(ctx, model.StepCheckDirty, "status", "--porcelain")
	if err != nil {
		return s.fail(report, err)
	}
	// Warnings go to stderr; only stdout lists changes.
	if strings.TrimSpace(string(status.Stdout)) == "" {
		report.Clean = true
		s.logger.Info("repository has no changes to publish", "root", s.root)
		return report
	}

	report.Step = model.StepCommit
	message := s.CommitMessage(s.now())
	if _, err := s.run(ctx, model.StepCommit, "commit", "-m", message); err != nil {
		return s.fail(report, err)
	}
	report.Committed = true
	report.Message = message

	report.Step = model.StepPush
	if _, err := s.run(ctx, model.StepPush, "push", s.remote, s.branch); err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			stepErr.Hints = []string{
				fmt.Sprintf("if the remote already has history, run: git pull --rebase %s %s", s.remote, s.branch),
				"then run notes again to push",
			}
		}
		return s.fail(report, err)
	}
	report.Pushed = true

	s.logger.Info("repository synchronized",
		"remote", s.remote,
		"branch", s.branch,
		"message", message)
	return report
}

func (s *Synchronizer) run(ctx context.Context, step model.SyncStep, args ...string) (Output, error) {
	s.logger.Debug("running git", "step", step, "args", args)

	out, err := s.runner.Run(ctx, s.root, args...)
	if err != nil {
		return out, &StepError{
			Step:   step,
			Args:   args,
			Output: out.Combined(),
			Err:    err,
		}
	}
	if len(out.Stderr) > 0 {
		s.logger.Debug("git wrote to stderr", "step", step, "stderr", strings.TrimSpace(string(out.Stderr)))
	}
	return out, nil
}

func (s *Synchronizer) fail(report model.SyncReport, err error) model.SyncReport {
	report.Err = err

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		report.Output = stepErr.Output
	}

	s.logger.Error("synchronization failed",
		"step", report.Step,
		"error", err,
		"output", report.Output)
	return report
}
