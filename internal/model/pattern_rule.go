// Package model defines the core data structures for the notes application.
package model

import (
	"fmt"
	"strings"
)

// ClassificationRule maps a filename keyword to a category folder.
// Rules are evaluated in declaration order; the first match wins.
type ClassificationRule struct {
	Keyword string `json:"keyword" yaml:"keyword" mapstructure:"keyword"`
	Folder  string `json:"folder" yaml:"folder" mapstructure:"folder"`
}

// Matches reports whether the rule's keyword occurs in the lower-cased filename.
func (r ClassificationRule) Matches(filename string) bool {
	return strings.Contains(strings.ToLower(filename), strings.ToLower(r.Keyword))
}

// Validate checks that the rule is usable.
func (r ClassificationRule) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return fmt.Errorf("rule for folder %q has an empty keyword", r.Folder)
	}
	return ValidateFolderName(r.Folder)
}

// ValidateFolderName ensures a folder name resolves to a direct child of the
// repository root.
func ValidateFolderName(folder string) error {
	switch {
	case strings.TrimSpace(folder) == "":
		return fmt.Errorf("folder name is empty")
	case folder == "." || folder == "..":
		return fmt.Errorf("folder name %q is not allowed", folder)
	case strings.ContainsAny(folder, `/\`):
		return fmt.Errorf("folder name %q contains a path separator", folder)
	case strings.HasPrefix(folder, "."):
		return fmt.Errorf("folder name %q is hidden", folder)
	}
	return nil
}
