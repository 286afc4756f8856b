package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Search   SearchConfig   `mapstructure:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig holds MySQL connection settings.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
	LogLevel        string `mapstructure:"log_level"`         // silent/error/warn/info
}

// AuthConfig configures the admin identity gate.
type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret            string `mapstructure:"secret"`
	AccessTokenExpire int    `mapstructure:"access_token_expire"` // seconds
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, console
	Output     string `mapstructure:"output"` // stdout, file
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// SyncConfig configures the ingestion pipeline.
type SyncConfig struct {
	ArchiveURL     string `mapstructure:"archive_url"`     // snapshot of all source registries
	FetchTimeout   string `mapstructure:"fetch_timeout"`   // e.g. 120s
	FetchRetries   int    `mapstructure:"fetch_retries"`   // download attempts
	Cron           string `mapstructure:"cron"`            // schedule, seconds field included
	FlushEvery     int    `mapstructure:"flush_every"`     // progress flush threshold (registries)
	BatchSize      int    `mapstructure:"batch_size"`      // max statements per write batch
	RebuildFacets  bool   `mapstructure:"rebuild_facets"`  // rebuild facets after each run
	DefaultArchive string `mapstructure:"default_archive"` // deprecated alias of archive_url
}

// SearchConfig configures query execution.
type SearchConfig struct {
	RawFetchCap     int `mapstructure:"raw_fetch_cap"`     // safety cap on unaggregated rows
	MaxPageSize     int `mapstructure:"max_page_size"`     //
	FilterCacheTTL  int `mapstructure:"filter_cache_ttl"`  // seconds
	DefaultPageSize int `mapstructure:"default_page_size"` //
}

// DefaultArchiveURL is used when sync.archive_url is not configured.
const DefaultArchiveURL = "https://codeload.github.com/awesomehub/data/tar.gz/refs/heads/master"

// Load reads and parses the config file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.applyDefaults()

	GlobalConfig = config

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Sync.ArchiveURL == "" {
		if c.Sync.DefaultArchive != "" {
			c.Sync.ArchiveURL = c.Sync.DefaultArchive
		} else {
			c.Sync.ArchiveURL = DefaultArchiveURL
		}
	}
	if c.Sync.FetchTimeout == "" {
		c.Sync.FetchTimeout = "120s"
	}
	if c.Sync.FetchRetries <= 0 {
		c.Sync.FetchRetries = 3
	}
	if c.Sync.FlushEvery <= 0 {
		c.Sync.FlushEvery = 5
	}
	if c.Sync.BatchSize <= 0 {
		c.Sync.BatchSize = 500
	}
	if c.Search.RawFetchCap <= 0 {
		c.Search.RawFetchCap = 2000
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.FilterCacheTTL <= 0 {
		c.Search.FilterCacheTTL = 300
	}
}

// GetFetchTimeout parses the fetch timeout, defaulting to two minutes.
func (c *SyncConfig) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// GetFilterCacheTTL converts the configured TTL to a duration.
func (c *SearchConfig) GetFilterCacheTTL() time.Duration {
	return time.Duration(c.FilterCacheTTL) * time.Second
}

// GetDSN builds the MySQL DSN.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}
