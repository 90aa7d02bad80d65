package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP          HTTPConfig         `yaml:"http"`
	LLM           LLMConfig          `yaml:"llm"`
	Chat          ChatConfig         `yaml:"chat"`
	Safety        PromptConfig       `yaml:"safety"`
	Destination   DestinationConfig  `yaml:"destination"`
	Budget        BudgetConfig       `yaml:"budget"`
	Images        ImagesConfig       `yaml:"images"`
	Sketches      SketchesConfig     `yaml:"sketches"`
	Valkey        ValkeyConfig       `yaml:"valkey"`
	Storage       StorageConfig      `yaml:"storage"`
	Subscriptions SubscriptionConfig `yaml:"subscriptions"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// Supported generative AI providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig selects and configures the generative AI provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	TextModel   string  `yaml:"textModel"`
	ImageModel  string  `yaml:"imageModel"`
	Temperature float32 `yaml:"temperature"`
}

// ChatConfig controls the DiveBot assistant.
type ChatConfig struct {
	SystemPrompt     string        `yaml:"systemPrompt"`
	Greeting         string        `yaml:"greeting"`
	Apology          string        `yaml:"apology"`
	MaxHistoryTokens int           `yaml:"maxHistoryTokens"`
	Encoding         string        `yaml:"encoding"`
	SessionTTL       time.Duration `yaml:"sessionTtl"`
}

// PromptConfig holds a system prompt and word budget.
type PromptConfig struct {
	SystemPrompt string `yaml:"systemPrompt"`
	MaxWords     int    `yaml:"maxWords"`
}

// DestinationConfig controls grounded destination lookups.
type DestinationConfig struct {
	SystemPrompt  string        `yaml:"systemPrompt"`
	MaxWords      int           `yaml:"maxWords"`
	CacheTTL      time.Duration `yaml:"cacheTtl"`
	TrendingLimit int           `yaml:"trendingLimit"`
}

// BudgetConfig controls the budget tips prompt.
type BudgetConfig struct {
	SystemPrompt string `yaml:"systemPrompt"`
	TipCount     int    `yaml:"tipCount"`
}

// ImagesConfig controls inspiration image generation.
type ImagesConfig struct {
	DefaultAspectRatio string `yaml:"defaultAspectRatio"`
	Archive            bool   `yaml:"archive"`
}

// SketchesConfig limits uploaded sketches.
type SketchesConfig struct {
	MaxBytes int64 `yaml:"maxBytes"`
}

// ValkeyConfig contains connection information for session and cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// StorageConfig configures S3-compatible blob storage.
type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// SubscriptionConfig configures newsletter persistence.
type SubscriptionConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a .env file, a YAML file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
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
	setString("HTTP_ADDRESS", &cfg.HTTP.Address)
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	setInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	setInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	setBool("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	setInt("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	setDuration("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)

	setString("LLM_PROVIDER", &cfg.LLM.Provider)
	// API_KEY is the variable name used by the Gemini tooling.
	setString("API_KEY", &cfg.LLM.APIKey)
	setString("LLM_API_KEY", &cfg.LLM.APIKey)
	setString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	setString("LLM_TEXT_MODEL", &cfg.LLM.TextModel)
	setString("LLM_IMAGE_MODEL", &cfg.LLM.ImageModel)
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}

	setString("CHAT_SYSTEM_PROMPT", &cfg.Chat.SystemPrompt)
	setInt("CHAT_MAX_HISTORY_TOKENS", &cfg.Chat.MaxHistoryTokens)
	setDuration("CHAT_SESSION_TTL", &cfg.Chat.SessionTTL)
	setDuration("DESTINATION_CACHE_TTL", &cfg.Destination.CacheTTL)
	setBool("IMAGES_ARCHIVE", &cfg.Images.Archive)
	if v := os.Getenv("SKETCHES_MAX_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Sketches.MaxBytes = parsed
		}
	}

	setBool("VALKEY_ENABLED", &cfg.Valkey.Enabled)
	setString("VALKEY_ADDR", &cfg.Valkey.Addr)
	setString("VALKEY_PREFIX", &cfg.Valkey.Prefix)

	setBool("STORAGE_ENABLED", &cfg.Storage.Enabled)
	setString("STORAGE_ENDPOINT", &cfg.Storage.Endpoint)
	setString("STORAGE_ACCESS_KEY", &cfg.Storage.AccessKey)
	setString("STORAGE_SECRET_KEY", &cfg.Storage.SecretKey)
	setString("STORAGE_BUCKET", &cfg.Storage.Bucket)
	setString("STORAGE_REGION", &cfg.Storage.Region)

	setString("SUBSCRIPTIONS_POSTGRES_DSN", &cfg.Subscriptions.Postgres.DSN)
	if v := os.Getenv("SUBSCRIPTIONS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Subscriptions.Postgres.MaxConns = int32(parsed)
		}
	}
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   60 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/chat/messages",
					"/api/v1/images",
					"/api/v1/sketches",
					"/api/v1/subscriptions",
				},
			},
		},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Temperature: 0.7,
		},
		Chat: ChatConfig{
			SystemPrompt:     "Eres un asistente experto en buceo llamado \"DiveBot\". Responde a las preguntas de los usuarios sobre planificación de inmersiones, equipos, seguridad, destinos y vida marina. Sé amigable, conciso y útil. Responde en español.",
			Greeting:         "¡Hola! Soy DiveBot. ¿En qué puedo ayudarte hoy con tu planificación de buceo?",
			Apology:          "Lo siento, he tenido un problema para conectar. Por favor, inténtalo de nuevo.",
			MaxHistoryTokens: 6000,
			Encoding:         "cl100k_base",
			SessionTTL:       24 * time.Hour,
		},
		Safety: PromptConfig{
			SystemPrompt: "Eres un Director de Buceo experto y conciso. Tu prioridad es la seguridad.",
			MaxWords:     100,
		},
		Destination: DestinationConfig{
			SystemPrompt:  "Eres un guía de buceo experto y entusiasta. Responde en español.",
			MaxWords:      150,
			CacheTTL:      12 * time.Hour,
			TrendingLimit: 10,
		},
		Budget: BudgetConfig{
			SystemPrompt: "Eres un experto en viajes de buceo con un enfoque en presupuestos. Proporciona consejos prácticos y concisos. Responde en español.",
			TipCount:     3,
		},
		Images: ImagesConfig{
			DefaultAspectRatio: "16:9",
		},
		Sketches: SketchesConfig{
			MaxBytes: 5 << 20,
		},
		Valkey: ValkeyConfig{
			Prefix: "diveplanner",
		},
		Storage: StorageConfig{
			Bucket: "diveplanner",
			Region: "auto",
		},
		Subscriptions: SubscriptionConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider must be %q or %q", ProviderGemini, ProviderOpenAI)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if strings.TrimSpace(c.Chat.SystemPrompt) == "" {
		return errors.New("chat.systemPrompt cannot be empty")
	}
	if strings.TrimSpace(c.Chat.Apology) == "" {
		return errors.New("chat.apology cannot be empty")
	}
	if c.Chat.MaxHistoryTokens < 0 {
		return errors.New("chat.maxHistoryTokens cannot be negative")
	}
	if c.Chat.SessionTTL < 0 {
		return errors.New("chat.sessionTtl cannot be negative")
	}
	if c.Safety.MaxWords <= 0 {
		return errors.New("safety.maxWords must be positive")
	}
	if c.Destination.MaxWords <= 0 {
		return errors.New("destination.maxWords must be positive")
	}
	if c.Destination.CacheTTL < 0 {
		return errors.New("destination.cacheTtl cannot be negative")
	}
	if c.Budget.TipCount <= 0 {
		return errors.New("budget.tipCount must be positive")
	}
	if !slices.Contains([]string{"1:1", "3:4", "4:3", "9:16", "16:9"}, c.Images.DefaultAspectRatio) {
		return errors.New("images.defaultAspectRatio is not supported")
	}
	if c.Sketches.MaxBytes <= 0 {
		return errors.New("sketches.maxBytes must be positive")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Storage.Enabled {
		if strings.TrimSpace(c.Storage.Endpoint) == "" || strings.TrimSpace(c.Storage.Bucket) == "" {
			return errors.New("storage.endpoint and storage.bucket are required when storage is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
