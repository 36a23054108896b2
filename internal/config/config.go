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
	Ingest    IngestConfig    `yaml:"ingest" mapstructure:"ingest"`
	Runs      RunsConfig      `yaml:"runs" mapstructure:"runs"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Routing   RoutingConfig   `yaml:"routing" mapstructure:"routing"`
	Assembler AssemblerConfig `yaml:"assembler" mapstructure:"assembler"`
	Buyers    BuyersConfig    `yaml:"buyers" mapstructure:"buyers"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// IngestConfig configures the JSONL record store.
type IngestConfig struct {
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	Source  string `yaml:"source" mapstructure:"source"`
	Version string `yaml:"version" mapstructure:"version"`
}

// RunsConfig configures the run audit store backend.
type RunsConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key               string `yaml:"key" mapstructure:"key"`
	ClassifierModel   string `yaml:"classifier_model" mapstructure:"classifier_model"`
	SummarizerModel   string `yaml:"summarizer_model" mapstructure:"summarizer_model"`
	MaxTokens         int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// RoutingConfig configures category routing.
type RoutingConfig struct {
	ConfidenceFloor float64 `yaml:"confidence_floor" mapstructure:"confidence_floor"`
}

// AssemblerConfig configures fact assembly.
type AssemblerConfig struct {
	Strict             bool   `yaml:"strict" mapstructure:"strict"`
	ExecChangeNoteMode string `yaml:"exec_change_note_mode" mapstructure:"exec_change_note_mode"`
}

// UnprefixedExecNotes reports whether bare follow-on lines may attach to
// exec-change facts.
func (c AssemblerConfig) UnprefixedExecNotes() bool {
	mode := strings.ToLower(strings.TrimSpace(c.ExecChangeNoteMode))
	return mode == "unprefixed" || mode == "unprefixed_followon"
}

// BuyersConfig configures buyer keyword matching.
type BuyersConfig struct {
	KeywordsFile string `yaml:"keywords_file" mapstructure:"keywords_file"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentArticles int `yaml:"max_concurrent_articles" mapstructure:"max_concurrent_articles"`
}

// ServerConfig configures the ingest server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ReportConfig configures report generation.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
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
	v.SetEnvPrefix("COVERAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ingest.data_dir", "data/ingest")
	v.SetDefault("ingest.source", "coverage-cli")
	v.SetDefault("ingest.version", "1")
	v.SetDefault("runs.driver", "sqlite")
	v.SetDefault("runs.sqlite_path", "data/runs.db")
	v.SetDefault("anthropic.classifier_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.summarizer_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.requests_per_minute", 50)
	v.SetDefault("routing.confidence_floor", 0.5)
	v.SetDefault("assembler.strict", false)
	v.SetDefault("assembler.exec_change_note_mode", "prefixed")
	v.SetDefault("batch.max_concurrent_articles", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("report.output_dir", "data/reports")
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
