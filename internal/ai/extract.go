package ai

import (
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object in model output")

// ExtractJSON 去掉 ``` 代码块标记，截取第一个 '{' 到最后一个 '}'
func ExtractJSON(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return cleaned[start : end+1], nil
}
