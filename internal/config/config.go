package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultUserAgent is the User-Agent sent with every TVmaze request unless overridden.
const DefaultUserAgent = "ShowBrowser/1.0 (+https://github.com/Belphemur/ShowBrowser)"

const (
	// DefaultTVMazeBaseURL is the public TVmaze API root. Only the secure scheme is used.
	DefaultTVMazeBaseURL = "https://api.tvmaze.com/"
	// DefaultMissingImageURL replaces show images the API does not provide.
	DefaultMissingImageURL = "https://tinyurl.com/missing-tv"
)

type Config struct {
	TVMazeBaseURL         string `mapstructure:"tvmaze_base_url"`
	MissingImageURL       string `mapstructure:"missing_image_url"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s"
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	GRPC struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"grpc"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Cache struct {
		Provider string `mapstructure:"provider"` // memory, redis or bolt
		Size     int    `mapstructure:"size"`
		TTL      string `mapstructure:"ttl"`
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
		Bolt struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"bolt"`
	} `mapstructure:"cache"`
	Retry struct {
		MaxRetries int    `mapstructure:"max_retries"`
		Delay      string `mapstructure:"delay"`
		MaxDelay   string `mapstructure:"max_delay"`
	} `mapstructure:"retry"`
	LogLevel string `mapstructure:"log_level"`
	Log      struct {
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	} `mapstructure:"log"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
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

	if config.Log.File != "" {
		logger = zerolog.New(zerolog.MultiLevelWriter(
			zerolog.ConsoleWriter{Out: os.Stdout},
			newFileWriter(config),
		)).With().Timestamp().Logger()
	}
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Str("log_file", config.Log.File).Msg("Logging configured")
	globalConfig = config
}

// newFileWriter returns a size-rotated JSON log sink for the configured log file.
func newFileWriter(cfg *Config) io.Writer {
	if dir := filepath.Dir(cfg.Log.File); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	maxSize := cfg.Log.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := cfg.Log.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}
	return &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tvmaze_base_url", DefaultTVMazeBaseURL)
	v.SetDefault("missing_image_url", DefaultMissingImageURL)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "15s")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", 9000)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 500)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.bolt.path", "showbrowser-cache.db")
	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.delay", "200ms")
	v.SetDefault("retry.max_delay", "2s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("sentry_dsn", "")
}

func LoadConfig() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	setDefaults(v)

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
	if config.TVMazeBaseURL == "" {
		config.TVMazeBaseURL = DefaultTVMazeBaseURL
	}
	if config.MissingImageURL == "" {
		config.MissingImageURL = DefaultMissingImageURL
	}

	return &config, nil
}

// ParseDuration parses a Go duration string, falling back to def when value is empty or invalid.
func ParseDuration(key, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Str("value", value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return parsed
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
