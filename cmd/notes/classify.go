package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILENAME...",
		Short: "Preview which folder each filename would be sorted into",
		Long: `Run the configured classifier against one or more filenames without touching
the filesystem or the repository. Useful for trying out rules or an inference
model before organizing the inbox.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			classifier, err := newClassifier(cfg, a.logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tFOLDER\tSOURCE\tDETAIL")
			for _, name := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				result := classifier.Classify(cmd.Context(), name)
				detail := result.Keyword
				if result.Err != nil {
					detail = result.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, result.Folder, result.Source, detail)
			}
			return w.Flush()
		},
	}
}
