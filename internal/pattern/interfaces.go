// Package pattern classifies filenames with an ordered keyword table.
package pattern

import "github.com/Veraticus/the-notes-must-flow/internal/model"

// Rule is an alias to the model.ClassificationRule type for convenience.
type Rule = model.ClassificationRule
