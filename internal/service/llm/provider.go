// Package llm builds chat models and the prompt chains that call them.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/AquinasRousseau/sentiment-chatbot-api/internal/config"
)

// NewChatModel creates the chat model selected by cfg.Provider. It returns
// ErrNoModel when the provider's credentials are missing.
func NewChatModel(ctx context.Context, cfg config.AIConfig) (model.BaseChatModel, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: %s credentials or model missing", ErrNoModel, cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderArk:
		return newArkChatModel(ctx, cfg)
	default:
		return NewOpenAIChatModel(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	}
}

func newArkChatModel(ctx context.Context, cfg config.AIConfig) (model.BaseChatModel, error) {
	arkCfg := &ark.ChatModelConfig{
		BaseURL:   cfg.ArkBaseURL,
		Region:    cfg.ArkRegion,
		APIKey:    cfg.ArkAPIKey,
		AccessKey: cfg.ArkAccessKey,
		SecretKey: cfg.ArkSecretKey,
		Model:     cfg.ArkModel,
	}

	chatModel, err := ark.NewChatModel(ctx, arkCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ark chat model: %w", err)
	}
	return chatModel, nil
}
