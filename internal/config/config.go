package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Audio     AudioConfig     `yaml:"audio" mapstructure:"audio"`
	Jobs      JobsConfig      `yaml:"jobs" mapstructure:"jobs"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the usage ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// OpenAIConfig holds transcription and extraction settings.
type OpenAIConfig struct {
	Key               string  `yaml:"key" mapstructure:"key"`
	TranscribeModel   string  `yaml:"transcribe_model" mapstructure:"transcribe_model"`
	ExtractModel      string  `yaml:"extract_model" mapstructure:"extract_model"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// AnthropicConfig holds the optional strategic-insight settings. Insight
// generation is skipped when the key is empty.
type AnthropicConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	HaikuModel string `yaml:"haiku_model" mapstructure:"haiku_model"`
}

// AudioConfig configures upload handling.
type AudioConfig struct {
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// JobsConfig configures the async job registry.
type JobsConfig struct {
	MaxAgeHours   int `yaml:"max_age_hours" mapstructure:"max_age_hours"`
	SweepInterval int `yaml:"sweep_interval_minutes" mapstructure:"sweep_interval_minutes"`
}

// BatchConfig configures batch transcript processing.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MOTIVATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "jsonfile")
	v.SetDefault("store.path", "usage_data.json")
	v.SetDefault("openai.transcribe_model", "whisper-1")
	v.SetDefault("openai.extract_model", "gpt-4o-mini")
	v.SetDefault("openai.requests_per_second", 2.0)
	v.SetDefault("anthropic.haiku_model", "claude-haiku-4-5-20251001")
	v.SetDefault("audio.temp_dir", "")
	v.SetDefault("jobs.max_age_hours", 24)
	v.SetDefault("jobs.sweep_interval_minutes", 60)
	v.SetDefault("batch.max_concurrent", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
