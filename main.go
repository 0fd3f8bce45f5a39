package main

import (
	"context"

	"github.com/rs/zerolog/log"

	configx "github.com/napatsw/trendscope/pkg/config"
	geminix "github.com/napatsw/trendscope/pkg/gemini"
	_ "github.com/napatsw/trendscope/pkg/logger/autoload"
	openaix "github.com/napatsw/trendscope/pkg/openai"
	serverx "github.com/napatsw/trendscope/server"
	contractx "github.com/napatsw/trendscope/trends/contract"
	providerx "github.com/napatsw/trendscope/trends/provider"
	storex "github.com/napatsw/trendscope/trends/store"
	toolx "github.com/napatsw/trendscope/trends/tool"
)

func main() {
	storeCfg := configx.MustNew[storex.Config]("STORE")
	geminiCfg := configx.MustNew[geminix.Config]("GEMINI")
	openaiCfg := configx.MustNew[openaix.Config]("OPENAI")
	toolCfg := configx.MustNew[toolx.Config]("TOOL")
	serverCfg := configx.MustNew[serverx.Config]("SERVER")

	// Missing keys leave a provider out of the chain; the chain handles the
	// all-unconfigured case per call, so startup never fails on them.
	geminiClient := geminix.NewClient(*geminiCfg)
	openaiClient := openaix.NewClient(*openaiCfg)
	if geminiClient != nil {
		log.Info().Str("model", geminiClient.Model()).Msg("gemini provider configured")
	}
	if openaiClient != nil {
		log.Info().Str("model", openaiClient.Model()).Msg("openai provider configured")
	}

	chain := providerx.NewChain(
		providerx.Gemini{Client: geminiClient},
		providerx.OpenAI{Client: openaiClient},
	)
	if chain.Pick() == nil {
		log.Warn().Msg("no text-generation provider configured; ask_trends will answer in degraded mode")
	}

	store := storex.NewLazy(func(ctx context.Context) (contractx.Store, error) {
		return storex.Dial(ctx, *storeCfg)
	})

	registry := toolx.NewRegistry()
	if err := registry.Register(toolx.NewLatestTrends(store, *toolCfg)); err != nil {
		log.Fatal().Err(err).Msg("register get_latest_trends")
	}
	if err := registry.Register(toolx.NewAskTrends(store, chain, *toolCfg)); err != nil {
		log.Fatal().Err(err).Msg("register ask_trends")
	}

	s := serverx.New(*serverCfg, registry)
	log.Info().
		Str("transport", serverCfg.Transport).
		Int("tools", len(registry.Definitions())).
		Msg("trendscope ready")

	if err := serverx.Serve(*serverCfg, s); err != nil {
		log.Fatal().Err(err).Msg("mcp server stopped")
	}
}
