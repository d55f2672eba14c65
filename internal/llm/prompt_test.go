package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("triso_fuel_notes.md", []string{"Quantum_Mechanics", "Thermodynamics"}, "Uncategorized")

	assert.Contains(t, prompt, "Filename: triso_fuel_notes.md")
	assert.Contains(t, prompt, "- Quantum_Mechanics\n")
	assert.Contains(t, prompt, "- Thermodynamics\n")
	assert.Contains(t, prompt, "output exactly: Uncategorized")
	assert.Contains(t, prompt, "ONLY the folder name")
}

func TestBuildPrompt_NoCategories(t *testing.T) {
	prompt := BuildPrompt("random.txt", nil, "Uncategorized")

	assert.NotContains(t, prompt, "Known folders")
	assert.True(t, strings.HasPrefix(prompt, "You are organizing"))
}
