package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "API_KEY", "LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL",
		"AI_CALL_TIMEOUT", "AI_RATE_LIMIT_RETRIES", "SESSION_TRANSCRIPT_CAP", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.APIKey != DefaultAPIKey {
		t.Fatalf("expected default api key, got %s", cfg.Server.APIKey)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.AI.Provider != ProviderOpenAI || cfg.AI.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.AI.CallTimeout != 8*time.Second {
		t.Fatalf("expected 8s timeout, got %s", cfg.AI.CallTimeout)
	}
	if cfg.AI.RateLimitRetries != 1 {
		t.Fatalf("expected 1 retry, got %d", cfg.AI.RateLimitRetries)
	}
	if cfg.AI.Enabled() {
		t.Fatal("expected AI disabled without key")
	}
	if cfg.Session.TranscriptCap != 20 {
		t.Fatalf("expected cap 20, got %d", cfg.Session.TranscriptCap)
	}
}

func TestLoadServerAddrVariants(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %s", cfg.Addr)
	}

	t.Setenv("PORT", "80 80")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for port with space")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LLM_PROVIDER":           "bard",
		"AI_CALL_TIMEOUT":        "soon",
		"AI_PARALLEL_CLASSIFY":   "maybe",
		"SESSION_TRANSCRIPT_CAP": "1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestRateLimitRetriesAreBounded(t *testing.T) {
	t.Setenv("AI_RATE_LIMIT_RETRIES", "50")
	cfg, err := loadAIConfig()
	if err != nil {
		t.Fatalf("loadAIConfig err: %v", err)
	}
	if cfg.RateLimitRetries != 3 {
		t.Fatalf("expected retries clamped to 3, got %d", cfg.RateLimitRetries)
	}
}

func TestArkEnabled(t *testing.T) {
	cfg := AIConfig{Provider: ProviderArk, ArkModel: "ep-123", ArkAccessKey: "ak", ArkSecretKey: "sk"}
	if !cfg.Enabled() {
		t.Fatal("expected ark enabled with AK/SK")
	}
	if cfg.ModelName() != "ep-123" {
		t.Fatalf("unexpected model %s", cfg.ModelName())
	}
}

func TestParseListEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	got := parseListEnv("CORS_ALLOWED_ORIGINS", nil)
	if len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("unexpected list %v", got)
	}
}
