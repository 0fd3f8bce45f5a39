package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	contractx "github.com/napatsw/trendscope/trends/contract"
	promptx "github.com/napatsw/trendscope/trends/prompt"
	providerx "github.com/napatsw/trendscope/trends/provider"
)

const (
	ToolAskTrends = "ask_trends"

	contextChunkLimit = 50

	notConfiguredMessage = "No text-generation provider is configured. " +
		"Set GEMINI_API_KEY or OPENAI_API_KEY to enable ask_trends."
)

var whitespacePattern = regexp.MustCompile(`\s+`)

type askTrends struct {
	store contractx.Store
	chain *providerx.Chain
	cfg   Config
}

// NewAskTrends builds the ask_trends definition: retrieve recent knowledge
// chunks, assemble a context, and answer the question with the first
// configured provider.
func NewAskTrends(store contractx.Store, chain *providerx.Chain, cfg Config) Definition {
	t := &askTrends{store: store, chain: chain, cfg: cfg}
	return Definition{
		Name:        ToolAskTrends,
		Description: "Answer a question about AI trends using the curated knowledge base.",
		Params: []Param{
			{Name: "question", Type: ParamString, Description: "The question to answer.", Required: true},
		},
		Handler: t.handle,
	}
}

func (t *askTrends) handle(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	question := strings.TrimSpace(stringArg(args, "question"))
	if question == "" {
		return contractx.ToolResult{}, fmt.Errorf("question is required")
	}

	// Checked before touching the store: with no provider there is nothing
	// useful to do with the chunks, and the degraded answer must not depend
	// on store health.
	if t.chain.Pick() == nil {
		return contractx.TextResult(notConfiguredMessage), nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.CallTimeout)
	defer cancel()

	chunks, err := t.store.RecentChunks(ctx, t.cfg.ContextWindow, contextChunkLimit)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	contextBlob := buildContext(chunks, t.cfg.MaxContextBytes)

	user, err := promptx.Answer(question, contextBlob)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	answer, err := t.chain.Generate(ctx, providerx.Prompt{
		System: promptx.System(),
		User:   user,
	})
	if err != nil {
		return contractx.ToolResult{}, err
	}

	return contractx.TextResult(answer), nil
}

// buildContext joins chunk contents most-recent-first, blank-line separated.
// Whitespace inside each chunk is collapsed; the total is capped at maxBytes
// (0 disables the cap), dropping whole chunks rather than cutting mid-text.
func buildContext(chunks []contractx.KnowledgeChunk, maxBytes int) string {
	var sb strings.Builder
	for _, chunk := range chunks {
		content := strings.TrimSpace(whitespacePattern.ReplaceAllString(chunk.Content, " "))
		if content == "" {
			continue
		}

		extra := len(content)
		if sb.Len() > 0 {
			extra += 2
		}
		if maxBytes > 0 && sb.Len()+extra > maxBytes {
			break
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
	}
	return sb.String()
}
