// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Edgar  EdgarConfig  `yaml:"edgar" mapstructure:"edgar"`
	Local  LocalConfig  `yaml:"local" mapstructure:"local"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Series SeriesConfig `yaml:"series" mapstructure:"series"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EdgarConfig configures the SEC EDGAR company facts source.
type EdgarConfig struct {
	BaseURL        string            `yaml:"base_url" mapstructure:"base_url"`
	TickerMapURL   string            `yaml:"ticker_map_url" mapstructure:"ticker_map_url"`
	UserAgent      string            `yaml:"user_agent" mapstructure:"user_agent"`
	Tickers        []string          `yaml:"tickers" mapstructure:"tickers"`
	CIKMap         map[string]string `yaml:"cik_map" mapstructure:"cik_map"`
	RequestPauseMS int               `yaml:"request_pause_ms" mapstructure:"request_pause_ms"`
	TimeoutSecs    int               `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// RequestPause is the minimum spacing between successive SEC requests.
func (c EdgarConfig) RequestPause() time.Duration {
	return time.Duration(c.RequestPauseMS) * time.Millisecond
}

// Timeout is the per-request HTTP timeout.
func (c EdgarConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// LocalConfig configures the local fundamentals table source.
type LocalConfig struct {
	TablePath string `yaml:"table_path" mapstructure:"table_path"`
}

// OutputConfig configures where documents are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// SeriesConfig configures multi-year series construction.
type SeriesConfig struct {
	LimitYears int    `yaml:"limit_years" mapstructure:"limit_years"`
	ChainsPath string `yaml:"chains_path" mapstructure:"chains_path"`
}

// StoreConfig configures the build ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the document server.
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
	v.SetEnvPrefix("FUNDAMENTALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("edgar.base_url", "https://data.sec.gov/api/xbrl/companyfacts")
	v.SetDefault("edgar.ticker_map_url", "https://www.sec.gov/files/company_tickers.json")
	v.SetDefault("edgar.user_agent", "fundamentals-cli/1.0 (contact: metrics@transparentmetrics.io)")
	v.SetDefault("edgar.tickers", []string{"AAPL"})
	v.SetDefault("edgar.cik_map", map[string]string{"AAPL": "0000320193"})
	v.SetDefault("edgar.request_pause_ms", 250)
	v.SetDefault("edgar.timeout_secs", 30)
	v.SetDefault("local.table_path", "data/fundamentals.csv")
	v.SetDefault("output.dir", "data")
	v.SetDefault("series.limit_years", 10)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "fundamentals.db")
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
