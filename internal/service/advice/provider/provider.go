package provider

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/skillsetter/backend/internal/config"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice/arkchat"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice/gemini"
)

// NewGenerator builds the generator for the configured provider. It returns a nil
// generator and no error when no credential is configured.
func NewGenerator(ctx context.Context, cfg config.AIConfig) (advice.Generator, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		generator, err := arkchat.New(ctx, chatModel)
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		var opts []gemini.Option
		if cfg.GeminiBaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.GeminiBaseURL))
		}
		generator, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, opts...)
		if err != nil {
			return nil, err
		}
		return generator, nil
	}
}

// NewClient resolves the credential once and returns an advice client. Initialisation
// failures leave the client unavailable rather than stopping the caller.
func NewClient(ctx context.Context, cfg config.AIConfig, log logrus.FieldLogger) *advice.Client {
	fields := logrus.Fields{"provider": cfg.Provider, "model": cfg.Model()}

	generator, err := NewGenerator(ctx, cfg)
	switch {
	case err != nil:
		log.WithFields(fields).WithError(err).Warn("failed to initialize AI service, continuing without AI functionality")
	case generator == nil:
		log.WithFields(fields).Warn("AI credential not configured, advice requests will return the unavailable notice")
	default:
		log.WithFields(fields).Info("AI service initialized successfully")
	}

	return advice.NewClient(generator,
		advice.WithTemperature(cfg.Temperature),
		advice.WithLogger(log),
	)
}
