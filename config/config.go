package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"pastalink-bot/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Transport
	Telegram TelegramConfig

	// Pipeline
	Ollama       OllamaConfig
	Classifier   ClassifierConfig
	Catalog      CatalogConfig
	Validator    ValidatorConfig
	Conversation ConversationConfig

	// Bot surface
	Bot BotConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
	// NgrokAPI is queried for a public URL when WebhookURL is empty.
	NgrokAPI string
}

type OllamaConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
}

type ClassifierConfig struct {
	CacheSize       int
	CacheKeyLength  int
	RetryAttempts   int
	RetryBaseDelay  time.Duration
	RetryMultiplier float64
}

type CatalogConfig struct {
	DataPath            string
	MaxLinksPerResponse int
	CacheSize           int
}

type ValidatorConfig struct {
	MinMessageLength    int
	MaxMessageLength    int
	SpamRatio           float64
	FuzzyMatchThreshold float64
	SuggestionThreshold float64
	AutoAcceptFuzzy     bool
}

type ConversationConfig struct {
	SessionTimeout  time.Duration
	MaxSessions     int
	UserRateLimit   int // messages per minute per user
	QueueBufferSize int
}

type BotConfig struct {
	AdminUserIDs      []int64
	RegionsPerMessage int
	ShowTyping        bool
	// StatsToken guards GET /api/v1/stats. Empty disables the route.
	StatsToken string
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindLegacyEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.NgrokAPI = viper.GetString("telegram.ngrok_api")

	// Classification
	cfg.Ollama.Host = strings.TrimRight(viper.GetString("ollama.host"), "/")
	cfg.Ollama.Model = viper.GetString("ollama.model")
	cfg.Ollama.Timeout = viper.GetDuration("ollama.timeout")
	cfg.Classifier.CacheSize = viper.GetInt("classifier.cache_size")
	cfg.Classifier.CacheKeyLength = viper.GetInt("classifier.cache_key_length")
	cfg.Classifier.RetryAttempts = viper.GetInt("classifier.retry_attempts")
	cfg.Classifier.RetryBaseDelay = viper.GetDuration("classifier.retry_base_delay")
	cfg.Classifier.RetryMultiplier = viper.GetFloat64("classifier.retry_multiplier")

	// Catalog
	cfg.Catalog.DataPath = viper.GetString("catalog.data_path")
	cfg.Catalog.MaxLinksPerResponse = viper.GetInt("catalog.max_links_per_response")
	cfg.Catalog.CacheSize = viper.GetInt("catalog.cache_size")

	// Validation
	cfg.Validator.MinMessageLength = viper.GetInt("validator.min_message_length")
	cfg.Validator.MaxMessageLength = viper.GetInt("validator.max_message_length")
	cfg.Validator.SpamRatio = viper.GetFloat64("validator.spam_ratio")
	cfg.Validator.FuzzyMatchThreshold = viper.GetFloat64("validator.fuzzy_match_threshold")
	cfg.Validator.SuggestionThreshold = viper.GetFloat64("validator.suggestion_threshold")
	cfg.Validator.AutoAcceptFuzzy = viper.GetBool("validator.auto_accept_fuzzy")

	// Conversation
	cfg.Conversation.SessionTimeout = viper.GetDuration("conversation.session_timeout")
	cfg.Conversation.MaxSessions = viper.GetInt("conversation.max_sessions")
	cfg.Conversation.UserRateLimit = viper.GetInt("conversation.user_rate_limit")
	cfg.Conversation.QueueBufferSize = viper.GetInt("conversation.queue_buffer_size")

	// Bot
	cfg.Bot.RegionsPerMessage = viper.GetInt("bot.regions_per_message")
	cfg.Bot.StatsToken = viper.GetString("bot.stats_token")
	cfg.Bot.ShowTyping = viper.GetBool("bot.show_typing")
	ids, err := parseIDList(viper.GetString("bot.admin_user_ids"))
	if err != nil {
		return nil, err
	}
	cfg.Bot.AdminUserIDs = ids

	// Webhooks
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("telegram.ngrok_api", "http://ngrok:4040")

	viper.SetDefault("ollama.host", "http://localhost:11434")
	viper.SetDefault("ollama.model", "llama3.1:8b")
	viper.SetDefault("ollama.timeout", "30s")

	viper.SetDefault("classifier.cache_size", 1000)
	viper.SetDefault("classifier.cache_key_length", 100)
	viper.SetDefault("classifier.retry_attempts", 3)
	viper.SetDefault("classifier.retry_base_delay", "1s")
	viper.SetDefault("classifier.retry_multiplier", 2.0)

	viper.SetDefault("catalog.data_path", "./data/pa_bot_links_seed.json")
	viper.SetDefault("catalog.max_links_per_response", 6)
	viper.SetDefault("catalog.cache_size", 500)

	viper.SetDefault("validator.min_message_length", 3)
	viper.SetDefault("validator.max_message_length", 1000)
	viper.SetDefault("validator.spam_ratio", 0.3)
	viper.SetDefault("validator.fuzzy_match_threshold", 0.7)
	viper.SetDefault("validator.suggestion_threshold", 0.4)
	viper.SetDefault("validator.auto_accept_fuzzy", true)

	viper.SetDefault("conversation.session_timeout", "5m")
	viper.SetDefault("conversation.max_sessions", 10000)
	viper.SetDefault("conversation.user_rate_limit", 30)
	viper.SetDefault("conversation.queue_buffer_size", 16)

	viper.SetDefault("bot.regions_per_message", 15)
	viper.SetDefault("bot.show_typing", true)

	viper.SetDefault("webhook.rate_limit_per_min", 600)
}

// bindLegacyEnv maps the flat environment names used by earlier deployments
// onto the structured keys.
func bindLegacyEnv() {
	legacy := map[string]string{
		"telegram.bot_token":               "TELEGRAM_TOKEN",
		"catalog.data_path":                "DATA_PATH",
		"logger.level":                     "LOG_LEVEL",
		"environment.name":                 "ENVIRONMENT",
		"validator.max_message_length":     "MAX_MESSAGE_LENGTH",
		"catalog.max_links_per_response":   "MAX_LINKS_PER_RESPONSE",
		"catalog.cache_size":               "CACHE_SIZE_LINKS",
		"classifier.cache_size":            "CACHE_SIZE_CLASSIFICATIONS",
		"bot.admin_user_ids":               "ADMIN_USER_IDS",
		"validator.fuzzy_match_threshold":  "FUZZY_MATCH_THRESHOLD",
		"validator.suggestion_threshold":   "SUGGESTION_THRESHOLD",
		"bot.regions_per_message":          "REGIONS_PER_MESSAGE",
		"ollama.host":                      "OLLAMA_HOST",
		"ollama.model":                     "OLLAMA_MODEL",
		"webhook.secret":                   "WEBHOOK_SECRET",
		"telegram.webhook_url":             "TELEGRAM_WEBHOOK_URL",
		"conversation.session_timeout":     "SESSION_TIMEOUT",
		"validator.auto_accept_fuzzy":      "AUTO_ACCEPT_FUZZY",
	}
	for key, env := range legacy {
		_ = viper.BindEnv(key, strings.ReplaceAll(strings.ToUpper(key), ".", "_"), env)
	}
}

func loadEnvFile() {
	for _, path := range []string{".env", "config/.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

// Validate checks ranges and required relations between settings.
func (c *Config) Validate() error {
	if !model.Environment(c.Environment.Name).Valid() {
		return fmt.Errorf("config: invalid environment %q", c.Environment.Name)
	}

	positives := map[string]int{
		"http_server.port":               c.HTTPServer.Port,
		"validator.min_message_length":   c.Validator.MinMessageLength,
		"validator.max_message_length":   c.Validator.MaxMessageLength,
		"catalog.max_links_per_response": c.Catalog.MaxLinksPerResponse,
		"catalog.cache_size":             c.Catalog.CacheSize,
		"classifier.cache_size":          c.Classifier.CacheSize,
		"classifier.retry_attempts":      c.Classifier.RetryAttempts,
		"bot.regions_per_message":        c.Bot.RegionsPerMessage,
		"conversation.max_sessions":      c.Conversation.MaxSessions,
	}
	for key, v := range positives {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", key, v)
		}
	}

	if c.Validator.MinMessageLength > c.Validator.MaxMessageLength {
		return fmt.Errorf("config: validator.min_message_length exceeds max_message_length")
	}

	ratios := map[string]float64{
		"validator.spam_ratio":            c.Validator.SpamRatio,
		"validator.fuzzy_match_threshold": c.Validator.FuzzyMatchThreshold,
		"validator.suggestion_threshold":  c.Validator.SuggestionThreshold,
	}
	for key, v := range ratios {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: %s must be within [0,1], got %v", key, v)
		}
	}
	if c.Validator.SuggestionThreshold > c.Validator.FuzzyMatchThreshold {
		return fmt.Errorf("config: validator.suggestion_threshold exceeds fuzzy_match_threshold")
	}

	if c.Conversation.SessionTimeout <= 0 {
		return fmt.Errorf("config: conversation.session_timeout must be positive")
	}
	if c.Classifier.RetryMultiplier < 1 {
		return fmt.Errorf("config: classifier.retry_multiplier must be at least 1")
	}
	if c.Ollama.Host == "" {
		return fmt.Errorf("config: ollama.host is required")
	}

	return nil
}

// IsAdmin reports whether userID may run admin commands.
func (b BotConfig) IsAdmin(userID int64) bool {
	for _, id := range b.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, item := range splitList(raw) {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: invalid admin user id %q: %w", item, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
