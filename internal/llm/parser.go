package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-notes-must-flow/internal/common"
	"github.com/Veraticus/the-notes-must-flow/internal/model"
)

var folderReplacer = strings.NewReplacer(
	" ", "_",
	".", "",
	`"`, "",
	"'", "",
	"`", "",
	"/", "",
	`\`, "",
)

// SanitizeFolder trims the reply, replaces spaces with underscores and strips
// periods, quotes and path separators.
func SanitizeFolder(raw string) string {
	return folderReplacer.Replace(strings.TrimSpace(raw))
}

// ParseFolder extracts a folder name from a model reply. Only the first
// non-empty line is considered, after removing any markdown code fence.
func ParseFolder(raw string) (string, error) {
	line := firstLine(stripCodeFence(raw))
	folder := SanitizeFolder(line)
	if folder == "" {
		return "", common.ErrEmptyInference
	}
	if err := model.ValidateFolderName(folder); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEmptyInference, err)
	}
	return folder, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if idx := strings.Index(content, "\n"); idx >= 0 {
		content = content[idx+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(content), "```")
}

func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
