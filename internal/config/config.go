package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/proposal-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Startup ping retries while the database comes up
	DBConnectRetry pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// External service configurations
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	MailerCfg       MailerConfig       `envPrefix:"MAIL_"`
	TelegramCfg     TelegramConfig     `envPrefix:"TELEGRAM_"`

	AuthCfg       AuthConfig       `envPrefix:"AUTH_"`
	GenerationCfg GenerationConfig `envPrefix:"GENERATION_"`

	// Allowed CORS origins, comma separated
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string  `env:"COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
	Model               string  `env:"MODEL" envDefault:"gpt-4"`
	Temperature         float64 `env:"TEMPERATURE" envDefault:"0.7"`
	ProposalMaxTokens   int     `env:"PROPOSAL_MAX_TOKENS" envDefault:"1200"`
	ComparisonMaxTokens int     `env:"COMPARISON_MAX_TOKENS" envDefault:"800"`
	JSONResponseFormat  bool    `env:"JSON_RESPONSE_FORMAT" envDefault:"false"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	InviteTTL      time.Duration `env:"INVITE_TTL" envDefault:"72h"`
	ResetTTL       time.Duration `env:"RESET_TTL" envDefault:"1h"`
	FrontendURL    string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	MailCooldown   time.Duration `env:"MAIL_COOLDOWN" envDefault:"1m"`
	MinPasswordLen int           `env:"MIN_PASSWORD_LEN" envDefault:"8"`
}

// GenerationConfig bounds how often proposals and comparisons may be regenerated.
// A zero interval disables the check.
type GenerationConfig struct {
	ProposalMinInterval   time.Duration `env:"PROPOSAL_MIN_INTERVAL" envDefault:"15m"`
	ComparisonMinInterval time.Duration `env:"COMPARISON_MIN_INTERVAL" envDefault:"1m"`
}

type MailerConfig struct {
	Enabled   bool                 `env:"ENABLED" envDefault:"false"`
	SMTPHost  string               `env:"SMTP_HOST"`
	SMTPPort  string               `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser  string               `env:"SMTP_USER"`
	SMTPPass  string               `env:"SMTP_PASSWORD"`
	FromEmail string               `env:"FROM_EMAIL"`
	Retry     pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// TelegramConfig holds admin notification settings (optional)
type TelegramConfig struct {
	BotToken    string               `env:"BOT_TOKEN"`
	AdminChatID int64                `env:"ADMIN_CHAT_ID"`
	SendTimeout time.Duration        `env:"SEND_TIMEOUT" envDefault:"5s"`
	QueueSize   int                  `env:"QUEUE_SIZE" envDefault:"64"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.AdminChatID != 0
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate LLM configuration
	if cfg.LLMConnectorCfg.RequestTimeout < time.Second || cfg.LLMConnectorCfg.RequestTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("LLM_TIMEOUT must be between 1s and 5m, got %s", cfg.LLMConnectorCfg.RequestTimeout))
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMConnectorCfg.Temperature))
	}

	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Token == "" {
		errors = append(errors, "LLM_TOKEN is required when mocks are disabled")
	}

	// Validate Auth configuration
	if len(cfg.AuthCfg.JWTSecret) < 16 {
		errors = append(errors, "AUTH_JWT_SECRET must be at least 16 characters")
	}

	if cfg.AuthCfg.MinPasswordLen < 1 {
		errors = append(errors, fmt.Sprintf("AUTH_MIN_PASSWORD_LEN must be positive, got %d", cfg.AuthCfg.MinPasswordLen))
	}

	// Validate Generation configuration
	if cfg.GenerationCfg.ProposalMinInterval < 0 || cfg.GenerationCfg.ComparisonMinInterval < 0 {
		errors = append(errors, "GENERATION_*_MIN_INTERVAL must not be negative")
	}

	// Validate Telegram configuration
	if cfg.TelegramCfg.Enabled() && (cfg.TelegramCfg.SendTimeout <= 0 || cfg.TelegramCfg.QueueSize < 1) {
		errors = append(errors, "TELEGRAM_SEND_TIMEOUT and TELEGRAM_QUEUE_SIZE must be positive")
	}

	// Validate Mailer configuration
	if cfg.MailerCfg.Enabled && (cfg.MailerCfg.SMTPHost == "" || cfg.MailerCfg.FromEmail == "") {
		errors = append(errors, "MAIL_SMTP_HOST and MAIL_FROM_EMAIL are required when MAIL_ENABLED is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
