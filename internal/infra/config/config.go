package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

// FAQ source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceObject   = "object"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	LLM  LLMConfig  `yaml:"llm"`
	FAQ  FAQConfig  `yaml:"faq"`
	MCP  MCPConfig  `yaml:"mcp"`
	Log  LogConfig  `yaml:"log"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

// LLMConfig contains the chat model settings used by the answer composer.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// FAQConfig controls the FAQ catalogue and answer behavior.
type FAQConfig struct {
	Prompt   string         `yaml:"prompt"`
	Source   SourceConfig   `yaml:"source"`
	Trending TrendingConfig `yaml:"trending"`
}

// SourceConfig selects where the catalogue is loaded from at startup.
type SourceConfig struct {
	Kind     string         `yaml:"kind"`
	Path     string         `yaml:"path"`
	Postgres PostgresConfig `yaml:"postgres"`
	Object   ObjectConfig   `yaml:"object"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	MaxConns int32  `yaml:"maxConns"`
}

// ObjectConfig locates the catalogue document in S3-compatible storage.
type ObjectConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
}

// TrendingConfig controls the asked-question counters.
type TrendingConfig struct {
	TopRecommendations int         `yaml:"topRecommendations"`
	Redis              RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for the trending store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// MCPConfig controls the MCP tool endpoint mounted next to the REST API.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load applies the optional YAML file over defaults, then environment overrides (a local .env included).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("FAQ_PROMPT"); v != "" {
		cfg.FAQ.Prompt = v
	}
	if v := os.Getenv("FAQ_SOURCE"); v != "" {
		cfg.FAQ.Source.Kind = strings.ToLower(v)
	}
	if v := os.Getenv("FAQ_DATA_PATH"); v != "" {
		cfg.FAQ.Source.Path = v
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Source.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_TABLE"); v != "" {
		cfg.FAQ.Source.Postgres.Table = v
	}
	if v := os.Getenv("FAQ_OBJECT_ENDPOINT"); v != "" {
		cfg.FAQ.Source.Object.Endpoint = v
	}
	if v := os.Getenv("FAQ_OBJECT_ACCESS_KEY"); v != "" {
		cfg.FAQ.Source.Object.AccessKey = v
	}
	if v := os.Getenv("FAQ_OBJECT_SECRET_KEY"); v != "" {
		cfg.FAQ.Source.Object.SecretKey = v
	}
	if v := os.Getenv("FAQ_OBJECT_BUCKET"); v != "" {
		cfg.FAQ.Source.Object.Bucket = v
	}
	if v := os.Getenv("FAQ_OBJECT_KEY"); v != "" {
		cfg.FAQ.Source.Object.Key = v
	}
	if v := os.Getenv("FAQ_RECOMMENDATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Trending.TopRecommendations = parsed
		}
	}
	if v := os.Getenv("FAQ_REDIS_ENABLED"); v != "" {
		cfg.FAQ.Trending.Redis.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("FAQ_REDIS_ADDR"); v != "" {
		cfg.FAQ.Trending.Redis.Addr = v
	}
	if v := os.Getenv("MCP_ENABLED"); v != "" {
		cfg.MCP.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("MCP_PATH"); v != "" {
		cfg.MCP.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":3000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			MaxTokens:   300,
			Timeout:     30 * time.Second,
		},
		FAQ: FAQConfig{
			Prompt: faq.DefaultPrompt,
			Source: SourceConfig{
				Kind: SourceFile,
				Path: "./data/faqs.json",
				Postgres: PostgresConfig{
					Table:    "faqs",
					MaxConns: 4,
				},
			},
			Trending: TrendingConfig{
				TopRecommendations: 10,
				Redis: RedisConfig{
					Prefix: "faq",
				},
			},
		},
		MCP: MCPConfig{
			Enabled: true,
			Path:    "/mcp",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.apiKey cannot be empty (set LLM_API_KEY)")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if c.HTTP.WriteTimeout > 0 && c.LLM.Timeout > 0 && c.HTTP.WriteTimeout <= c.LLM.Timeout {
		return errors.New("http.writeTimeout must exceed llm.timeout")
	}
	if strings.TrimSpace(c.FAQ.Prompt) == "" {
		return errors.New("faq.prompt cannot be empty")
	}
	switch c.FAQ.Source.Kind {
	case SourceFile:
		if strings.TrimSpace(c.FAQ.Source.Path) == "" {
			return errors.New("faq.source.path cannot be empty for file source")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.FAQ.Source.Postgres.DSN) == "" {
			return errors.New("faq.source.postgres.dsn cannot be empty for postgres source")
		}
	case SourceObject:
		if strings.TrimSpace(c.FAQ.Source.Object.Endpoint) == "" || strings.TrimSpace(c.FAQ.Source.Object.Bucket) == "" || strings.TrimSpace(c.FAQ.Source.Object.Key) == "" {
			return errors.New("faq.source.object requires endpoint, bucket and key")
		}
	default:
		return fmt.Errorf("faq.source.kind %q is not one of file, postgres, object", c.FAQ.Source.Kind)
	}
	if c.FAQ.Trending.TopRecommendations < 0 {
		return errors.New("faq.trending.topRecommendations cannot be negative")
	}
	if c.FAQ.Trending.Redis.Enabled && strings.TrimSpace(c.FAQ.Trending.Redis.Addr) == "" {
		return errors.New("faq.trending.redis.addr cannot be empty when redis is enabled")
	}
	if c.MCP.Enabled && (!strings.HasPrefix(c.MCP.Path, "/") || len(c.MCP.Path) < 2 || strings.HasPrefix(c.MCP.Path, "/api/")) {
		return fmt.Errorf("mcp.path %q must be an absolute path outside /api", c.MCP.Path)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
