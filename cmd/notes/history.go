package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently organized files",
		Long:  `List the most recent relocations recorded in the run journal, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return common.NewUserError("the run journal is disabled", common.ErrMissingConfig,
					"set journal.enabled: true in config.yaml")
			}

			store, cleanup, err := openJournal(cmd.Context(), cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer cleanup()

			limit, _ := cmd.Flags().GetInt("limit")
			records, err := store.RecentRelocations(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No relocations recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tMOVED\tFILE\tFOLDER\tSOURCE\tSTATUS")
			for _, rec := range records {
				moved := "-"
				if rec.MovedAt != nil {
					moved = rec.MovedAt.Local().Format("2006-01-02 15:04")
				}
				status := "ok"
				switch {
				case rec.Error != "":
					status = "failed: " + rec.Error
				case rec.ClassifyReason != "":
					status = "fallback: " + rec.ClassifyReason
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", rec.RunID, moved, rec.File, rec.Folder, rec.Source, status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int("limit", 20, "number of relocations to show")
	return cmd
}
