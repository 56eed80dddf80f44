package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all upstream requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

const (
	DefaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	DefaultTMDBImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultVidsrcDomain     = "vidsrc-embed.ru"
)

type Config struct {
	TMDB struct {
		APIKey       string `mapstructure:"api_key"`
		BaseURL      string `mapstructure:"base_url"`
		ImageBaseURL string `mapstructure:"image_base_url"`
		Language     string `mapstructure:"language"`
	} `mapstructure:"tmdb"`
	Vidsrc struct {
		EmbedDomain string `mapstructure:"embed_domain"`
		Scheme      string `mapstructure:"scheme"`
	} `mapstructure:"vidsrc"`
	CORS struct {
		Origins string `mapstructure:"origins"` // comma separated list
	} `mapstructure:"cors"`
	Environment           string `mapstructure:"environment"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "10s"
	UserAgent             string `mapstructure:"user_agent"`
	Retry                 struct {
		MaxRetries int    `mapstructure:"max_retries"`
		Backoff    string `mapstructure:"backoff"`
		MaxBackoff string `mapstructure:"max_backoff"`
	} `mapstructure:"retry"`
	RateLimit struct {
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
		Burst             int     `mapstructure:"burst"`
		MaxClients        int     `mapstructure:"max_clients"`
		TrustedProxies    string  `mapstructure:"trusted_proxies"` // comma separated IPs or CIDRs
	} `mapstructure:"rate_limit"`
	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"sentry"`
	LogLevel string `mapstructure:"log_level"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Info().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
	logger.Info().Msg("Configuration loaded successfully")
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unprefixed names kept for deployments of the previous backend
	_ = v.BindEnv("log_level", "APP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("tmdb.api_key", "APP_TMDB_API_KEY", "TMDB_API_KEY")
	_ = v.BindEnv("vidsrc.embed_domain", "APP_VIDSRC_EMBED_DOMAIN", "VIDSRC_EMBED_DOMAIN")
	_ = v.BindEnv("cors.origins", "APP_CORS_ORIGINS", "FRONTEND_ORIGIN")
	_ = v.BindEnv("environment", "APP_ENVIRONMENT", "ENVIRONMENT")

	// Every key needs a default so AutomaticEnv can resolve its APP_ variable
	v.SetDefault("log_level", "")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", DefaultTMDBBaseURL)
	v.SetDefault("tmdb.image_base_url", DefaultTMDBImageBaseURL)
	v.SetDefault("tmdb.language", "")
	v.SetDefault("vidsrc.embed_domain", DefaultVidsrcDomain)
	v.SetDefault("vidsrc.scheme", "https")
	v.SetDefault("cors.origins", "")
	v.SetDefault("environment", "development")
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "10s")
	v.SetDefault("user_agent", "")
	v.SetDefault("retry.max_retries", 2)
	v.SetDefault("retry.backoff", "300ms")
	v.SetDefault("retry.max_backoff", "3s")
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.max_clients", 10000)
	v.SetDefault("rate_limit.trusted_proxies", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("sentry.dsn", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

// ParseDuration parses a Go duration string, falling back to def when the
// value is empty or invalid. Invalid values are logged.
func ParseDuration(name, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str(name, value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return parsed
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "development")
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
