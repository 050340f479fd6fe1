package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/pkg/constants"
	"github.com/agentstation/bankrot/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Pipeline
	LegalTarget  int
	PersonTarget int
	PageSize     int
	RequestDelay time.Duration

	// Retry
	MaxAttempts    int
	InitialBackoff time.Duration
	BackoffFactor  float64
	MaxBackoff     time.Duration

	// Transport
	ListBaseURL string
	CardBaseURL string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	ListHeaders map[string]string
	CardHeaders map[string]string

	// Reconciliation
	ActiveCaseDefault  bool
	TradesHTMLFallback bool

	// Output
	OutputDir string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.bankrot.yaml or ./.bankrot.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. An empty path
// searches the standard locations.
func LoadConfigFile(path string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("bankrot")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if path == "" {
		path = os.Getenv("BANKROT_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bankrot")
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		LegalTarget:  v.GetInt("legal_target"),
		PersonTarget: v.GetInt("person_target"),
		PageSize:     v.GetInt("page_size"),
		RequestDelay: v.GetDuration("request_delay"),

		MaxAttempts:    v.GetInt("max_attempts"),
		InitialBackoff: v.GetDuration("initial_backoff"),
		BackoffFactor:  v.GetFloat64("backoff_factor"),
		MaxBackoff:     v.GetDuration("max_backoff"),

		ListBaseURL: v.GetString("list_base_url"),
		CardBaseURL: v.GetString("card_base_url"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		CacheTTL:    v.GetDuration("cache_ttl"),
		ListHeaders: v.GetStringMapString("headers.list"),
		CardHeaders: v.GetStringMapString("headers.card"),

		ActiveCaseDefault:  v.GetBool("active_case_default"),
		TradesHTMLFallback: v.GetBool("trades_html_fallback"),

		OutputDir: v.GetString("output_dir"),

		// Logging configuration
		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("legal_target", constants.DefaultTarget)
	v.SetDefault("person_target", constants.DefaultTarget)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("request_delay", constants.DefaultRequestDelay)

	v.SetDefault("max_attempts", constants.MaxAttempts)
	v.SetDefault("initial_backoff", constants.RetryBackoff)
	v.SetDefault("backoff_factor", constants.BackoffFactor)
	v.SetDefault("max_backoff", constants.MaxRetryBackoff)

	v.SetDefault("list_base_url", fedresurs.ListBaseURL)
	v.SetDefault("card_base_url", fedresurs.CardBaseURL)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("cache_ttl", constants.CacheTTL)

	v.SetDefault("active_case_default", true)
	v.SetDefault("trades_html_fallback", false)

	v.SetDefault("output_dir", ".")

	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	switch {
	case c.PageSize <= 0:
		return errors.NewValidationError("page_size", c.PageSize, "must be positive")
	case c.LegalTarget < 0:
		return errors.NewValidationError("legal_target", c.LegalTarget, "must not be negative")
	case c.PersonTarget < 0:
		return errors.NewValidationError("person_target", c.PersonTarget, "must not be negative")
	case c.MaxAttempts < 1:
		return errors.NewValidationError("max_attempts", c.MaxAttempts, "must be at least 1")
	case c.BackoffFactor < 1:
		return errors.NewValidationError("backoff_factor", c.BackoffFactor, "must be at least 1")
	case c.RequestDelay < 0:
		return errors.NewValidationError("request_delay", c.RequestDelay, "must not be negative")
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
