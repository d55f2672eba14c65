package pattern

import (
	"context"
	"strings"

	"github.com/Veraticus/the-notes-must-flow/internal/model"
)

// Matcher maps filenames to folders using the first matching keyword.
type Matcher struct {
	defaultFolder string
	rules         []Rule
}

// NewMatcher creates a matcher over rules. The slice is copied so later
// changes by the caller cannot reorder evaluation.
func NewMatcher(rules []Rule, defaultFolder string) *Matcher {
	normalized := make([]Rule, len(rules))
	for i, rule := range rules {
		normalized[i] = Rule{
			Keyword: strings.ToLower(rule.Keyword),
			Folder:  rule.Folder,
		}
	}

	return &Matcher{
		rules:         normalized,
		defaultFolder: defaultFolder,
	}
}

// Classify returns the folder of the first rule whose keyword occurs in the
// lower-cased filename, or the default folder when none does.
func (m *Matcher) Classify(_ context.Context, filename string) model.ClassificationResult {
	if rule, ok := m.Match(filename); ok {
		return model.ClassificationResult{
			Folder:  rule.Folder,
			Keyword: rule.Keyword,
			Source:  model.SourceRule,
		}
	}

	return model.ClassificationResult{
		Folder: m.defaultFolder,
		Source: model.SourceDefault,
	}
}

// Match returns the first rule matching filename.
func (m *Matcher) Match(filename string) (Rule, bool) {
	lower := strings.ToLower(filename)
	for _, rule := range m.rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule, true
		}
	}
	return Rule{}, false
}
