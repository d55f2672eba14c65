package main

import (
	"github.com/Veraticus/the-notes-must-flow/internal/cli"
	"github.com/Veraticus/the-notes-must-flow/internal/engine"
	"github.com/Veraticus/the-notes-must-flow/internal/inbox"
	"github.com/Veraticus/the-notes-must-flow/internal/relocate"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) runOrganize(cmd *cobra.Command, _ []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	classifier, err := newClassifier(cfg, a.logger)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()

	opts := engine.Options{
		Classifier:     classifier,
		Scanner:        inbox.NewScanner(fs, cfg.InboxDir, a.logger),
		Relocator:      relocate.NewRelocator(fs, cfg.RepoRoot, cfg.InboxDir, a.logger),
		Logger:         a.logger,
		Root:           cfg.RepoRoot,
		ClassifierName: cfg.Classifier,
		DryRun:         cfg.DryRun,
	}

	if !cfg.NoSync {
		opts.Synchronizer = newSynchronizer(cfg, a.logger)
	}

	if cfg.Journal.Enabled {
		store, cleanup, err := openJournal(ctx, cfg.Journal.Path)
		if err != nil {
			a.logger.Warn("Run journal unavailable, continuing without it", "path", cfg.Journal.Path, "error", err)
		} else {
			defer cleanup()
			opts.Journal = store
		}
	}

	var reporterOpts []cli.ReporterOption
	if a.v.GetBool("run.progress") {
		reporterOpts = append(reporterOpts, cli.WithProgressBar(a.stderr))
	}
	opts.Reporter = cli.NewReporter(cmd.OutOrStdout(), reporterOpts...)

	_, err = engine.New(opts).Run(ctx)
	return err
}
