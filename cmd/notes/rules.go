package main

import (
	"fmt"

	"github.com/Veraticus/the-notes-must-flow/internal/config"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rulesDocument mirrors the config file layout so the output can be pasted
// into config.yaml and edited.
type rulesDocument struct {
	Classification rulesClassification       `yaml:"classification"`
	Rules          []model.ClassificationRule `yaml:"rules"`
}

type rulesClassification struct {
	DefaultFolder string `yaml:"default_folder"`
}

func (a *app) rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active keyword rules",
		Long: `Print the keyword-to-folder rules in evaluation order. The first rule whose
keyword appears in a lowercased filename wins. The output is valid config YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			foldersOnly, _ := cmd.Flags().GetBool("folders")
			if foldersOnly {
				for _, folder := range config.Folders(cfg.Rules) {
					fmt.Fprintln(cmd.OutOrStdout(), folder)
				}
				return nil
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			doc := rulesDocument{
				Classification: rulesClassification{DefaultFolder: cfg.DefaultFolder},
				Rules:          cfg.Rules,
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().Bool("folders", false, "list only the distinct destination folders")
	return cmd
}
