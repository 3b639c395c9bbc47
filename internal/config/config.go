package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	FMPAPIKey       string
	FinnhubAPIKey   string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	TinifyAPIKey    string
	LLMProvider     string // "openai" or "anthropic" (text calls only)

	RedisURL string
	DataDir  string

	FundSymbol      string
	TopStories      int
	FetchDelay      time.Duration
	RetentionPolicy string // "simple" or "weekday"

	ScheduleHour int
	Timezone     string

	S3Bucket  string
	S3Region  string
	S3BaseURL string

	ServerPort  string
	FrontendURL string
}

func Load() *Config {
	return &Config{
		FMPAPIKey:       getEnv("FMP_API_KEY", ""),
		FinnhubAPIKey:   getEnv("FINNHUB_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		TinifyAPIKey:    getEnv("TINIFY_API_KEY", ""),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		RedisURL:        getEnv("REDIS_URL", ""),
		DataDir:         getEnv("DATA_DIR", "data"),
		FundSymbol:      getEnv("FUND_SYMBOL", "IVV"),
		TopStories:      getEnvAsInt("TOP_STORIES", 5),
		FetchDelay:      getEnvAsDuration("FETCH_DELAY", 100*time.Millisecond),
		RetentionPolicy: getEnv("RETENTION_POLICY", "weekday"),
		ScheduleHour:    getEnvAsInt("SCHEDULE_HOUR", 9),
		Timezone:        getEnv("TIMEZONE", "America/New_York"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3BaseURL:       getEnv("S3_BASE_URL", ""),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
