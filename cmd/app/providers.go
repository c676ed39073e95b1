package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
	"github.com/yanqian/faq-assistant/internal/infra/config"
	"github.com/yanqian/faq-assistant/internal/infra/faqsource"
	"github.com/yanqian/faq-assistant/internal/infra/faqstore"
	"github.com/yanqian/faq-assistant/internal/infra/llm/chatgpt"
	"github.com/yanqian/faq-assistant/pkg/logger"
)

const collectionLoadTimeout = 15 * time.Second

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		Model:              cfg.LLM.Model,
		Temperature:        cfg.LLM.Temperature,
		MaxTokens:          cfg.LLM.MaxTokens,
		Prompt:             cfg.FAQ.Prompt,
		ComposeTimeout:     cfg.LLM.Timeout,
		TopRecommendations: cfg.FAQ.Trending.TopRecommendations,
	}
}

// provideFAQSource picks the catalogue backend. The cleanup releases whatever
// connection the source holds.
func provideFAQSource(cfg *config.Config, logger *slog.Logger) (faq.Source, func(), error) {
	src := cfg.FAQ.Source
	switch src.Kind {
	case config.SourcePostgres:
		pool, err := openPostgresPool(src.Postgres)
		if err != nil {
			return nil, nil, err
		}
		source, err := faqsource.NewPostgresSource(pool, src.Postgres.Table)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("faq postgres source enabled", "table", src.Postgres.Table)
		return source, pool.Close, nil
	case config.SourceObject:
		source, err := faqsource.NewObjectSource(faqsource.ObjectConfig{
			Endpoint:  src.Object.Endpoint,
			AccessKey: src.Object.AccessKey,
			SecretKey: src.Object.SecretKey,
			Region:    src.Object.Region,
			Bucket:    src.Object.Bucket,
			Key:       src.Object.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("faq object source enabled", "bucket", src.Object.Bucket, "key", src.Object.Key)
		return source, func() {}, nil
	default:
		logger.Info("faq file source enabled", "path", src.Path)
		return faqsource.NewFileSource(src.Path), func() {}, nil
	}
}

func openPostgresPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// provideCollection loads the catalogue once; the server does not start without it.
func provideCollection(source faq.Source, logger *slog.Logger) (*faq.Collection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), collectionLoadTimeout)
	defer cancel()
	collection, err := faq.LoadCollection(ctx, source)
	if err != nil {
		return nil, err
	}
	logger.Info("faq catalogue loaded", "entries", collection.Len())
	return collection, nil
}

// provideFAQStore prefers valkey and falls back to process memory. Trending is best
// effort, so a bad valkey setup never blocks startup.
func provideFAQStore(cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	redisCfg := cfg.FAQ.Trending.Redis
	if !redisCfg.Enabled {
		return faqstore.NewMemoryStore(), func() {}
	}
	opt, err := buildValkeyOptions(redisCfg.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return faqstore.NewMemoryStore(), func() {}
	}
	logger.Info("faq valkey store enabled", "addr", redisCfg.Addr)
	return faqstore.NewValkeyStore(client, redisCfg.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
