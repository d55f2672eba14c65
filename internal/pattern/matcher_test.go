package pattern

import (
	"context"
	"testing"

	"github.com/Veraticus/the-notes-must-flow/internal/config"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMatcher_Classify(t *testing.T) {
	m := NewMatcher(config.DefaultRules(), "Uncategorized")

	tests := []struct {
		filename   string
		wantFolder string
		wantSource model.ClassificationSource
	}{
		{filename: "quantum_notes.pdf", wantFolder: "Quantum_Mechanics", wantSource: model.SourceRule},
		{filename: "lab3_report.docx", wantFolder: "Labs_and_Data", wantSource: model.SourceRule},
		{filename: "random.txt", wantFolder: "Uncategorized", wantSource: model.SourceDefault},
		{filename: "Maxwell_Equations.PDF", wantFolder: "Electromagnetism", wantSource: model.SourceRule},
		{filename: "HEAT_engine.md", wantFolder: "Thermodynamics", wantSource: model.SourceRule},
		{filename: "python_basics.py", wantFolder: "Computing", wantSource: model.SourceRule},
		{filename: "universe_expansion.tex", wantFolder: "Astrophysics", wantSource: model.SourceRule},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := m.Classify(context.Background(), tt.filename)
			assert.Equal(t, tt.wantFolder, got.Folder)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.NoError(t, got.Err)
		})
	}
}

func TestMatcher_FirstDeclaredRuleWins(t *testing.T) {
	// "thermal_lab.md" contains both "thermal" and "lab"; "thermal" is
	// declared first.
	m := NewMatcher(config.DefaultRules(), "Uncategorized")
	got := m.Classify(context.Background(), "thermal_lab.md")
	assert.Equal(t, "Thermodynamics", got.Folder)
	assert.Equal(t, "thermal", got.Keyword)

	// Reversing the table reverses the winner.
	reversed := []Rule{
		{Keyword: "lab", Folder: "Labs_and_Data"},
		{Keyword: "thermal", Folder: "Thermodynamics"},
	}
	got = NewMatcher(reversed, "Uncategorized").Classify(context.Background(), "thermal_lab.md")
	assert.Equal(t, "Labs_and_Data", got.Folder)
}

func TestMatcher_ShortKeywordShadowing(t *testing.T) {
	// "em" precedes "electro" and "maxwell", so anything containing "em"
	// lands in Electromagnetism even when a later rule would also match.
	m := NewMatcher(config.DefaultRules(), "Uncategorized")
	assert.Equal(t, "Electromagnetism", m.Classify(context.Background(), "memo_code.txt").Folder)
	// "mech" is declared before "em", so mechanics wins for "mechanics_em.pdf".
	assert.Equal(t, "Classical_Mechanics", m.Classify(context.Background(), "mechanics_em.pdf").Folder)
}

func TestMatcher_CaseInsensitiveKeywords(t *testing.T) {
	m := NewMatcher([]Rule{{Keyword: "TRISO", Folder: "Nuclear"}}, "Uncategorized")
	assert.Equal(t, "Nuclear", m.Classify(context.Background(), "triso_fuel_notes.md").Folder)
}

func TestMatcher_NoRules(t *testing.T) {
	m := NewMatcher(nil, "Inbox_Leftovers")
	got := m.Classify(context.Background(), "anything.txt")
	assert.Equal(t, "Inbox_Leftovers", got.Folder)
	assert.Equal(t, model.SourceDefault, got.Source)
	assert.False(t, got.Fallback())
}

func TestMatcher_RulesAreCopied(t *testing.T) {
	rules := []Rule{{Keyword: "lab", Folder: "Labs_and_Data"}}
	m := NewMatcher(rules, "Uncategorized")
	rules[0].Folder = "Changed"

	got := m.Classify(context.Background(), "lab3.pdf")
	assert.Equal(t, "Labs_and_Data", got.Folder)
}
