package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-notes-must-flow/internal/cli"
	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app holds per-invocation state shared by the commands.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	logger  *slog.Logger
	stderr  io.Writer
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: slog.Default(),
		stderr: os.Stderr,
	}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "📝 Sort an inbox of notes into topic folders and publish them",
		Long: `the-notes-must-flow: files dropped into the inbox folder are classified by
filename, moved into topic folders, and the repository is committed and pushed.

Run with no arguments to organize the inbox.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runOrganize,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/notes/config.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("root", "", "notes repository root (default: directory of the notes binary)")
	pf.String("classifier", config.ClassifierRule, "classifier to use (rule, llm)")

	_ = a.v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("repository.root", pf.Lookup("root"))
	_ = a.v.BindPFlag("classification.classifier", pf.Lookup("classifier"))

	flags := rootCmd.Flags()
	flags.Bool("dry-run", false, "show where files would go without moving or publishing")
	flags.Bool("no-sync", false, "organize files but skip commit and push")
	flags.Bool("progress", true, "show a progress bar for larger batches")

	_ = a.v.BindPFlag("run.dry_run", flags.Lookup("dry-run"))
	_ = a.v.BindPFlag("run.no_sync", flags.Lookup("no-sync"))
	_ = a.v.BindPFlag("run.progress", flags.Lookup("progress"))

	rootCmd.AddCommand(a.classifyCmd())
	rootCmd.AddCommand(a.rulesCmd())
	rootCmd.AddCommand(a.historyCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if errors.Is(err, context.Canceled) && interrupts.WasInterrupted() {
			os.Exit(130)
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, cli.FormatError(err.Error()))
	for _, hint := range common.UserHints(err) {
		fmt.Fprintln(w, cli.FormatHint(hint))
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		a.v.AddConfigPath(filepath.Join(home, ".config", "notes"))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("NOTES")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	logger, err := common.SetupLogger(a.v.GetString("logging.level"), a.v.GetString("logging.format"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config file", "path", used)
	}
	return nil
}

// config resolves the configuration on first use so commands that do not
// need it (version) still work with a broken config file.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notes %s\n", version)
		},
	}
}
