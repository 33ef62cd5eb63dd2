package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Session SessionConfig
	Log     LogConfig
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

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Session: session, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	APIKey         string
	AllowedOrigins []string
}

// DefaultAPIKey is the shared secret used by the bundled demo page.
const DefaultAPIKey = "devtestkey123"

// loadServerConfig 解析服务器监听地址与访问密钥。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	var addr string
	switch {
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	case strings.Contains(port, ":"):
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		addr = port
	default:
		addr = ":" + port
	}

	return ServerConfig{
		Addr:           addr,
		APIKey:         getEnvOrDefault("API_KEY", DefaultAPIKey),
		AllowedOrigins: parseListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}, nil
}

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string

	CallTimeout         time.Duration
	RateLimitBackoff    time.Duration
	RateLimitRetries    int
	GenerateTemperature float32
	ReplyWordBudget     int
	ParallelClassify    bool
}

// Enabled 表示是否提供了所选供应商必需的密钥。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	default:
		return c.OpenAIAPIKey != "" && c.OpenAIModel != ""
	}
}

// ModelName returns the model identifier of the selected provider.
func (c AIConfig) ModelName() string {
	if c.Provider == ProviderArk {
		return c.ArkModel
	}
	return c.OpenAIModel
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderArk {
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value %q: want %s or %s", provider, ProviderOpenAI, ProviderArk)
	}

	timeout, err := parseDurationEnv("AI_CALL_TIMEOUT", 8*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	backoff, err := parseDurationEnv("AI_RATE_LIMIT_BACKOFF", 2*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	retries := 1
	if override, err := parseOptionalIntEnv("AI_RATE_LIMIT_RETRIES"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		// 重试次数必须有上限，避免无界延迟。
		retries = clampInt(*override, 0, 3)
	}

	temperature := float32(0.5)
	if override, err := parseOptionalFloatEnv("AI_GENERATE_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		temperature = float32(*override)
	}

	wordBudget := 80
	if override, err := parseOptionalIntEnv("AI_REPLY_WORD_BUDGET"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		wordBudget = *override
	}

	parallel, err := parseBoolEnv("AI_PARALLEL_CLASSIFY", true)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		Provider:            provider,
		OpenAIAPIKey:        strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:         getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:       strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		ArkAPIKey:           strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey:        strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey:        strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:            strings.TrimSpace(os.Getenv("Model")),
		ArkBaseURL:          getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:           getEnvOrDefault("ARK_REGION", "cn-beijing"),
		CallTimeout:         timeout,
		RateLimitBackoff:    backoff,
		RateLimitRetries:    retries,
		GenerateTemperature: temperature,
		ReplyWordBudget:     wordBudget,
		ParallelClassify:    parallel,
	}, nil
}

// SessionConfig 描述会话记录的容量与过期策略。
type SessionConfig struct {
	TranscriptCap int
	IdleTTL       time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	transcriptCap := 20
	if override, err := parseOptionalIntEnv("SESSION_TRANSCRIPT_CAP"); err != nil {
		return SessionConfig{}, err
	} else if override != nil {
		if *override < 2 {
			return SessionConfig{}, fmt.Errorf("invalid SESSION_TRANSCRIPT_CAP value %d: must hold at least one user/bot pair", *override)
		}
		transcriptCap = *override
	}

	ttl, err := parseDurationEnv("SESSION_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return SessionConfig{}, err
	}

	return SessionConfig{TranscriptCap: transcriptCap, IdleTTL: ttl}, nil
}

// LogConfig 描述日志输出位置。
type LogConfig struct {
	File      string
	MaxSizeMB int
}

func loadLogConfig() (LogConfig, error) {
	maxSize := 10
	if override, err := parseOptionalIntEnv("LOG_MAX_SIZE_MB"); err != nil {
		return LogConfig{}, err
	} else if override != nil && *override > 0 {
		maxSize = *override
	}

	return LogConfig{
		File:      strings.TrimSpace(os.Getenv("LOG_FILE")),
		MaxSizeMB: maxSize,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
