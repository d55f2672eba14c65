package llm

import (
	"fmt"
	"strings"
)

// BuildPrompt creates the classification prompt for one filename.
func BuildPrompt(filename string, categories []string, defaultFolder string) string {
	var b strings.Builder

	b.WriteString("You are organizing a physics student's notes into topic folders.\n")
	fmt.Fprintf(&b, "Filename: %s\n\n", filename)

	if len(categories) > 0 {
		b.WriteString("Known folders (use one of these when it fits):\n")
		for _, category := range categories {
			fmt.Fprintf(&b, "- %s\n", category)
		}
		b.WriteString("\n")
	}

	b.WriteString("Instructions:\n")
	b.WriteString("- Output ONLY the folder name on a single line, with no explanation.\n")
	b.WriteString("- Use underscores instead of spaces, for example Nuclear_Engineering.\n")
	fmt.Fprintf(&b, "- If you are unsure, output exactly: %s\n", defaultFolder)

	return b.String()
}
