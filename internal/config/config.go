package config

import (
	"os"
	"strconv"

	"github.com/apex/log"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	DefaultEngine string

	TelegramBotToken string
	WebhookURL       string

	AllowedOrigins     string
	RateLimitPerMinute int
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getIntEnv(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads the process configuration from the environment. The Gemini
// credential is the one hard requirement: without it the process must not
// start.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DefaultEngine: getEnv("BREED_ENGINE", "gemini"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 30),
	}
}
