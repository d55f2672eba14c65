package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/spf13/viper"
)

// Classifier kinds.
const (
	ClassifierRule = "rule"
	ClassifierLLM  = "llm"
)

// Inference providers.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// DefaultOllamaEndpoint is the generate endpoint of a local Ollama server.
const DefaultOllamaEndpoint = "http://localhost:11434/api/generate"

// Config is the fully resolved configuration for one process. It is built
// once at startup and passed to each component.
type Config struct {
	RepoRoot      string
	InboxDir      string
	DefaultFolder string
	Classifier    string
	Rules         []model.ClassificationRule
	LLM           LLMConfig
	Git           GitConfig
	Journal       JournalConfig
	DryRun        bool
	NoSync        bool
}

// LLMConfig configures the delegated classifier.
type LLMConfig struct {
	Provider   string
	Endpoint   string
	Model      string
	APIKey     string
	Categories []string
	Timeout    time.Duration
	CacheTTL   time.Duration
	RateLimit  int
}

// GitConfig configures repository synchronization.
type GitConfig struct {
	Binary       string
	Remote       string
	Branch       string
	CommitPrefix string
	Timeout      time.Duration
}

// JournalConfig configures the run journal database.
type JournalConfig struct {
	Path    string
	Enabled bool
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("repository.root", "")
	v.SetDefault("repository.inbox", "_Inbox")
	v.SetDefault("classification.default_folder", "Uncategorized")
	v.SetDefault("classification.classifier", ClassifierRule)

	v.SetDefault("llm.provider", ProviderOllama)
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.model", "llama3")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.cache_ttl", time.Hour)
	v.SetDefault("llm.rate_limit", 0)

	v.SetDefault("git.binary", "git")
	v.SetDefault("git.remote", "origin")
	v.SetDefault("git.branch", "main")
	v.SetDefault("git.commit_prefix", "Notes update: ")
	v.SetDefault("git.timeout", 2*time.Minute)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "$HOME/.local/share/notes/journal.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load builds a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	root, err := ResolveRoot(v.GetString("repository.root"))
	if err != nil {
		return nil, err
	}

	inbox := ExpandPath(v.GetString("repository.inbox"))
	if !filepath.IsAbs(inbox) {
		inbox = filepath.Join(root, inbox)
	}

	rules := DefaultRules()
	if v.IsSet("rules") {
		var custom []model.ClassificationRule
		if err := v.UnmarshalKey("rules", &custom); err != nil {
			return nil, fmt.Errorf("%w: rules: %v", common.ErrInvalidConfig, err)
		}
		rules = custom
	}

	cfg := &Config{
		RepoRoot:      root,
		InboxDir:      inbox,
		DefaultFolder: v.GetString("classification.default_folder"),
		Classifier:    strings.ToLower(v.GetString("classification.classifier")),
		Rules:         rules,
		LLM: LLMConfig{
			Provider:   strings.ToLower(v.GetString("llm.provider")),
			Endpoint:   v.GetString("llm.endpoint"),
			Model:      v.GetString("llm.model"),
			APIKey:     v.GetString("llm.api_key"),
			Categories: v.GetStringSlice("llm.categories"),
			Timeout:    v.GetDuration("llm.timeout"),
			CacheTTL:   v.GetDuration("llm.cache_ttl"),
			RateLimit:  v.GetInt("llm.rate_limit"),
		},
		Git: GitConfig{
			Binary:       v.GetString("git.binary"),
			Remote:       v.GetString("git.remote"),
			Branch:       v.GetString("git.branch"),
			CommitPrefix: v.GetString("git.commit_prefix"),
			Timeout:      v.GetDuration("git.timeout"),
		},
		Journal: JournalConfig{
			Enabled: v.GetBool("journal.enabled"),
			Path:    ExpandPath(v.GetString("journal.path")),
		},
		DryRun: v.GetBool("run.dry_run"),
		NoSync: v.GetBool("run.no_sync"),
	}

	switch cfg.LLM.Provider {
	case ProviderOllama:
		if cfg.LLM.Endpoint == "" {
			cfg.LLM.Endpoint = DefaultOllamaEndpoint
		}
	case ProviderOpenAI:
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if len(cfg.LLM.Categories) == 0 {
		cfg.LLM.Categories = Folders(cfg.Rules)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	var errs []error

	if err := model.ValidateFolderName(c.DefaultFolder); err != nil {
		errs = append(errs, fmt.Errorf("default folder: %w", err))
	}
	if len(c.Rules) == 0 && c.Classifier == ClassifierRule {
		errs = append(errs, errors.New("rule classifier needs at least one rule"))
	}
	for i, rule := range c.Rules {
		if err := rule.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i+1, err))
		}
	}

	switch c.Classifier {
	case ClassifierRule:
	case ClassifierLLM:
		switch c.LLM.Provider {
		case ProviderOllama:
			if c.LLM.Endpoint == "" {
				errs = append(errs, errors.New("llm.endpoint is required"))
			}
		case ProviderOpenAI:
			if c.LLM.APIKey == "" {
				errs = append(errs, errors.New("llm.api_key or OPENAI_API_KEY is required for the openai provider"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown llm.provider %q (use %q or %q)", c.LLM.Provider, ProviderOllama, ProviderOpenAI))
		}
		if c.LLM.Model == "" {
			errs = append(errs, errors.New("llm.model is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown classifier %q (use %q or %q)", c.Classifier, ClassifierRule, ClassifierLLM))
	}

	if c.Git.Remote == "" || c.Git.Branch == "" {
		errs = append(errs, errors.New("git.remote and git.branch are required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Folders returns the distinct folders named by rules, in first-seen order.
func Folders(rules []model.ClassificationRule) []string {
	seen := make(map[string]bool, len(rules))
	folders := make([]string, 0, len(rules))
	for _, rule := range rules {
		if seen[rule.Folder] {
			continue
		}
		seen[rule.Folder] = true
		folders = append(folders, rule.Folder)
	}
	return folders
}
