package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationRule_Matches(t *testing.T) {
	rule := ClassificationRule{Keyword: "quantum", Folder: "Quantum_Mechanics"}

	assert.True(t, rule.Matches("quantum_notes.pdf"))
	assert.True(t, rule.Matches("QUANTUM_Notes.PDF"))
	assert.False(t, rule.Matches("random.txt"))
}

func TestClassificationRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    ClassificationRule
		wantErr bool
	}{
		{name: "valid", rule: ClassificationRule{Keyword: "lab", Folder: "Labs_and_Data"}},
		{name: "empty keyword", rule: ClassificationRule{Keyword: " ", Folder: "Labs_and_Data"}, wantErr: true},
		{name: "empty folder", rule: ClassificationRule{Keyword: "lab"}, wantErr: true},
		{name: "nested folder", rule: ClassificationRule{Keyword: "lab", Folder: "Labs/2024"}, wantErr: true},
		{name: "parent folder", rule: ClassificationRule{Keyword: "lab", Folder: ".."}, wantErr: true},
		{name: "hidden folder", rule: ClassificationRule{Keyword: "lab", Folder: ".git"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunSummary_Add(t *testing.T) {
	var s RunSummary
	s.Add(Relocation{File: "a.pdf", Folder: "Computing", Source: SourceRule})
	s.Add(Relocation{File: "b.pdf", Folder: "Uncategorized", Source: SourceDefault, ClassifyReason: "connection refused"})
	s.Add(Relocation{File: "c.pdf", Err: assert.AnError})

	assert.Equal(t, 2, s.Moved)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Fallbacks)
	assert.Len(t, s.Relocations, 3)
}
