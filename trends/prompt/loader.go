package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

var (
	//go:embed template/system.txt
	systemRaw string

	//go:embed template/answer.txt
	answerRaw string

	answerTemplate = template.Must(template.New("answer").Parse(answerRaw))
)

// System returns the trimmed system instruction for chat-style providers.
func System() string {
	return strings.TrimSpace(systemRaw)
}

// Answer renders the question-answering prompt around the retrieved context.
func Answer(question, context string) (string, error) {
	var sb strings.Builder
	err := answerTemplate.Execute(&sb, struct {
		Question string
		Context  string
	}{
		Question: question,
		Context:  context,
	})
	if err != nil {
		return "", fmt.Errorf("render answer prompt: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}
