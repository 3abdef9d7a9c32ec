package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// 支持的大模型提供方。
const (
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
)

const defaultGeminiModel = "gemini-3-flash-preview"

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Log: loadLogConfig()}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
	}
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider    string
	Temperature float32

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string
}

// Enabled 表示所选提供方是否提供了必需的凭证。启动时判断一次，整个进程生命周期内不变。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	default:
		return c.GeminiAPIKey != ""
	}
}

// Model 返回所选提供方的模型名。
func (c AIConfig) Model() string {
	if c.Provider == ProviderArk {
		return c.ArkModel
	}
	return c.GeminiModel
}

// NewChatModel 使用 Ark 配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if c.Provider != ProviderArk || !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   c.ArkBaseURL,
		Region:    c.ArkRegion,
		APIKey:    c.ArkAPIKey,
		AccessKey: c.ArkAccessKey,
		SecretKey: c.ArkSecretKey,
		Model:     c.ArkModel,
	})
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini))
	if provider != ProviderGemini && provider != ProviderArk {
		return AIConfig{}, fmt.Errorf("invalid AI_PROVIDER value %q", provider)
	}

	temperature := float32(0.7)
	if override, err := parseOptionalFloat32Env("ADVICE_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 0 || *override > 2 {
			return AIConfig{}, fmt.Errorf("ADVICE_TEMPERATURE out of range: %v", *override)
		}
		temperature = *override
	}

	// 原型使用 API_KEY，这里同时兼容 GEMINI_API_KEY。
	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if geminiKey == "" {
		geminiKey = strings.TrimSpace(os.Getenv("API_KEY"))
	}

	return AIConfig{
		Provider:     provider,
		Temperature:  temperature,
		GeminiAPIKey: geminiKey,
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", defaultGeminiModel),
		// 为空时使用 SDK 默认地址
		GeminiBaseURL: strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		ArkAPIKey:     strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey:  strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey:  strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:      strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:    getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:     getEnvOrDefault("ARK_REGION", "cn-beijing"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
