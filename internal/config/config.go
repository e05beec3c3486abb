package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	AllowedOrigins         string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	JWTSecret              string
	TokenExpiry            time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	HistoryCacheTTL        time.Duration
	AIProvider             string
	AIModel                string
	AITimeout              time.Duration
	OpenAIAPIKey           string
	GeminiAPIKey           string
	AnthropicAPIKey        string
	CodeRunner             string
	Judge0URL              string
	Judge0APIKey           string
	DockerHost             string
	ExecutionTimeout       time.Duration
	CodeRunMemoryMB        int
	CodeRunCPUShares       int
	DefaultDurationMinutes int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("IVA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "InterviewAI API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("token_expiry", "60m")
	v.SetDefault("cloudinary.folder", "interviewai/resumes")
	v.SetDefault("history.cache_ttl", "5m")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout_ms", 12000)
	v.SetDefault("code.runner", "judge0")
	v.SetDefault("execution_timeout_ms", 10000)
	v.SetDefault("code_run_memory_mb", 256)
	v.SetDefault("code_run_cpu_shares", 512)
	v.SetDefault("interview.duration_minutes", 30)

	ttl, err := time.ParseDuration(v.GetString("history.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid history cache ttl: %w", err)
	}

	tokenExpiry, err := time.ParseDuration(v.GetString("token_expiry"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token expiry: %w", err)
	}

	aiTimeoutMs := v.GetInt("ai.timeout_ms")
	if aiTimeoutMs <= 0 {
		aiTimeoutMs = 12000
	}

	execTimeoutMs := v.GetInt("execution_timeout_ms")
	if execTimeoutMs <= 0 {
		execTimeoutMs = 10000
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		AllowedOrigins:         v.GetString("cors.allowed_origins"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		TokenExpiry:            tokenExpiry,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		HistoryCacheTTL:        ttl,
		AIProvider:             strings.ToLower(v.GetString("ai.provider")),
		AIModel:                v.GetString("ai.model"),
		AITimeout:              time.Duration(aiTimeoutMs) * time.Millisecond,
		OpenAIAPIKey:           v.GetString("openai_api_key"),
		GeminiAPIKey:           v.GetString("gemini_api_key"),
		AnthropicAPIKey:        v.GetString("anthropic_api_key"),
		CodeRunner:             strings.ToLower(v.GetString("code.runner")),
		Judge0URL:              v.GetString("judge0.url"),
		Judge0APIKey:           v.GetString("judge0.api_key"),
		DockerHost:             v.GetString("docker_host"),
		ExecutionTimeout:       time.Duration(execTimeoutMs) * time.Millisecond,
		CodeRunMemoryMB:        v.GetInt("code_run_memory_mb"),
		CodeRunCPUShares:       v.GetInt("code_run_cpu_shares"),
		DefaultDurationMinutes: v.GetInt("interview.duration_minutes"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.CodeRunMemoryMB <= 0 {
		cfg.CodeRunMemoryMB = 256
	}

	if cfg.CodeRunCPUShares <= 0 {
		cfg.CodeRunCPUShares = 512
	}

	if cfg.DefaultDurationMinutes <= 0 {
		cfg.DefaultDurationMinutes = 30
	}

	return cfg, nil
}
