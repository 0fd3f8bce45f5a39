package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/napatsw/trendscope/pkg/gemini"
	"github.com/napatsw/trendscope/pkg/openai"
	contractx "github.com/napatsw/trendscope/trends/contract"
)

// Prompt is the provider-neutral input for one generation call. Chat-style
// backends receive System and User separately; single-turn backends get them
// combined into one prompt.
type Prompt struct {
	System string
	User   string
}

func (p Prompt) Combined() string {
	system := strings.TrimSpace(p.System)
	if system == "" {
		return p.User
	}
	return system + "\n\n" + p.User
}

// Provider is a text-generation backend candidate.
type Provider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Chain selects among candidates by static precedence. The first configured
// candidate wins; selection happens on every call, never caching the pick, so
// only one provider is ever invoked per question.
type Chain struct {
	candidates []Provider
}

func NewChain(candidates ...Provider) *Chain {
	return &Chain{candidates: candidates}
}

// Pick returns the first configured candidate, or nil when none is.
func (c *Chain) Pick() Provider {
	for _, p := range c.candidates {
		if p != nil && p.Configured() {
			return p
		}
	}
	return nil
}

// Generate runs one call against the first configured candidate.
func (c *Chain) Generate(ctx context.Context, prompt Prompt) (string, error) {
	p := c.Pick()
	if p == nil {
		return "", contractx.ErrProviderUnconfigured
	}
	out, err := p.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", contractx.ErrProviderCall, p.Name(), err)
	}
	return out, nil
}

// Gemini adapts the Gemini client to the Provider interface. Gemini takes a
// single combined prompt per call.
type Gemini struct {
	Client *gemini.Client
}

func (g Gemini) Name() string { return "gemini" }

func (g Gemini) Configured() bool { return g.Client != nil }

func (g Gemini) Generate(ctx context.Context, p Prompt) (string, error) {
	return g.Client.Generate(ctx, p.Combined())
}

// OpenAI adapts the OpenAI client to the Provider interface using its
// chat-style system + user call.
type OpenAI struct {
	Client *openai.Client
}

func (o OpenAI) Name() string { return "openai" }

func (o OpenAI) Configured() bool { return o.Client != nil }

func (o OpenAI) Generate(ctx context.Context, p Prompt) (string, error) {
	return o.Client.Complete(ctx, p.System, p.User)
}
