package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/diveplanner/internal/domain/budget"
	"github.com/yanqian/diveplanner/internal/domain/chat"
	"github.com/yanqian/diveplanner/internal/domain/destination"
	"github.com/yanqian/diveplanner/internal/domain/inspiration"
	"github.com/yanqian/diveplanner/internal/domain/llm"
	"github.com/yanqian/diveplanner/internal/domain/safety"
	"github.com/yanqian/diveplanner/internal/domain/subscription"
	"github.com/yanqian/diveplanner/internal/infra/blobstore"
	"github.com/yanqian/diveplanner/internal/infra/chatstore"
	"github.com/yanqian/diveplanner/internal/infra/config"
	"github.com/yanqian/diveplanner/internal/infra/destcache"
	"github.com/yanqian/diveplanner/internal/infra/llm/chatgpt"
	"github.com/yanqian/diveplanner/internal/infra/llm/gemini"
	"github.com/yanqian/diveplanner/internal/infra/subscriberrepo"
	"github.com/yanqian/diveplanner/internal/infra/tokenizer"
)

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		SystemPrompt:     cfg.Chat.SystemPrompt,
		Greeting:         cfg.Chat.Greeting,
		Apology:          cfg.Chat.Apology,
		Temperature:      cfg.LLM.Temperature,
		MaxHistoryTokens: cfg.Chat.MaxHistoryTokens,
		SessionTTL:       cfg.Chat.SessionTTL,
	}
}

func provideSafetyConfig(cfg *config.Config) safety.Config {
	return safety.Config{
		SystemPrompt: cfg.Safety.SystemPrompt,
		Temperature:  cfg.LLM.Temperature,
		MaxWords:     cfg.Safety.MaxWords,
	}
}

func provideDestinationConfig(cfg *config.Config) destination.Config {
	return destination.Config{
		SystemPrompt:  cfg.Destination.SystemPrompt,
		Temperature:   cfg.LLM.Temperature,
		MaxWords:      cfg.Destination.MaxWords,
		CacheTTL:      cfg.Destination.CacheTTL,
		TrendingLimit: cfg.Destination.TrendingLimit,
	}
}

func provideBudgetConfig(cfg *config.Config) budget.Config {
	return budget.Config{
		SystemPrompt: cfg.Budget.SystemPrompt,
		Temperature:  cfg.LLM.Temperature,
		TipCount:     cfg.Budget.TipCount,
	}
}

func provideInspirationConfig(cfg *config.Config) inspiration.Config {
	return inspiration.Config{
		ArchiveImages:      cfg.Images.Archive,
		DefaultAspectRatio: cfg.Images.DefaultAspectRatio,
		SketchMaxBytes:     cfg.Sketches.MaxBytes,
	}
}

// provideGenerator selects the configured provider. A missing key installs
// llm.Unavailable so the deterministic features keep working.
func provideGenerator(cfg *config.Config, logger *slog.Logger) llm.Generator {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, generative features disabled", "provider", cfg.LLM.Provider)
		return llm.Unavailable{Reason: "El asistente de IA no está configurado."}
	}
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			logger.Error("failed to create openai client, generative features disabled", "error", err)
			return llm.Unavailable{}
		}
		logger.Info("openai provider enabled", "model", cfg.LLM.TextModel)
		return chatgpt.NewGenerator(client, cfg.LLM.TextModel, cfg.LLM.ImageModel)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := gemini.NewClient(ctx, cfg.LLM.APIKey, cfg.LLM.TextModel, cfg.LLM.ImageModel)
		if err != nil {
			logger.Error("failed to create gemini client, generative features disabled", "error", err)
			return llm.Unavailable{}
		}
		logger.Info("gemini provider enabled", "model", cfg.LLM.TextModel)
		return client
	}
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) chat.TokenCounter {
	return tokenizer.New(cfg.Chat.Encoding, logger)
}

// provideValkeyClient returns a nil client when valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory stores", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory stores", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory stores", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey enabled", "addr", cfg.Valkey.Addr)
	return client, client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideSessionStore(cfg *config.Config, client valkey.Client) chat.SessionStore {
	if client == nil {
		return chatstore.NewMemoryStore()
	}
	return chatstore.NewValkeyStore(client, cfg.Valkey.Prefix)
}

func provideDestinationCache(cfg *config.Config, client valkey.Client) destination.Cache {
	if client == nil {
		return destcache.NewMemoryCache()
	}
	return destcache.NewValkeyCache(client, cfg.Valkey.Prefix)
}

func provideBlobStore(cfg *config.Config, logger *slog.Logger) inspiration.BlobStore {
	if !cfg.Storage.Enabled {
		logger.Info("object storage disabled, using memory blob store")
		return blobstore.NewMemoryStore()
	}
	store, err := blobstore.NewS3Store(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, logger)
	if err != nil {
		logger.Error("failed to create object storage client, using memory blob store", "error", err)
		return blobstore.NewMemoryStore()
	}
	logger.Info("object storage enabled", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
	return store
}

func provideSubscriberRepository(cfg *config.Config, logger *slog.Logger) (subscription.Repository, func()) {
	noop := func() {}
	fallback := subscriberrepo.NewMemoryRepository()
	pgCfg := cfg.Subscriptions.Postgres
	dsn := strings.TrimSpace(pgCfg.DSN)
	if dsn == "" {
		logger.Info("subscriptions postgres dsn not set, using memory repository")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, noop
	}
	if pgCfg.MaxConns > 0 {
		poolConfig.MaxConns = pgCfg.MaxConns
	}
	if pgCfg.MinConns > 0 {
		poolConfig.MinConns = pgCfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	repo := subscriberrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure subscribers schema, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("subscriptions postgres repository enabled")
	return repo, pool.Close
}
