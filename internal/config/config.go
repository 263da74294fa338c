// Package config loads the dashboard configuration from configs/config.yml,
// VITAL_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "VITAL"

type Config struct {
	Server  Server  `mapstructure:"server"`
	Log     Log     `mapstructure:"log"`
	DB      DB      `mapstructure:"db"`
	Backend Backend `mapstructure:"backend"`
	View    View    `mapstructure:"view"`
	Capture Capture `mapstructure:"capture"`
	WS      WS      `mapstructure:"ws"`
}

type Server struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Log struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type DB struct {
	Path string `mapstructure:"path"`
}

type Backend struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type View struct {
	PageSize   int    `mapstructure:"page_size"`
	Timezone   string `mapstructure:"timezone"`
	TimeLayout string `mapstructure:"time_layout"`
}

type Capture struct {
	Source     string        `mapstructure:"source"`
	URL        string        `mapstructure:"url"`
	Path       string        `mapstructure:"path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	TileWidth  int           `mapstructure:"tile_width"`
	TileHeight int           `mapstructure:"tile_height"`
	LabelTiles bool          `mapstructure:"label_tiles"`
}

type WS struct {
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("db.path", "dashboard.db")

	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout", 10*time.Second)

	v.SetDefault("view.page_size", 10)
	v.SetDefault("view.timezone", "Local")
	v.SetDefault("view.time_layout", "2006-01-02 15:04:05")

	v.SetDefault("capture.source", "none")
	v.SetDefault("capture.url", "")
	v.SetDefault("capture.path", "")
	v.SetDefault("capture.timeout", 5*time.Second)
	v.SetDefault("capture.tile_width", 320)
	v.SetDefault("capture.tile_height", 240)
	v.SetDefault("capture.label_tiles", false)

	v.SetDefault("ws.interval", time.Second)
}

// Load reads the config file (optional when file is empty and no
// configs/config.yml exists), applies env overrides and validates the result.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if c.View.PageSize < 1 {
		return fmt.Errorf("view.page_size must be >= 1, got %d", c.View.PageSize)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.WS.Interval <= 0 {
		return fmt.Errorf("ws.interval must be positive, got %s", c.WS.Interval)
	}
	return nil
}

// Location resolves view.timezone. "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.View.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.View.Timezone)
	if err != nil {
		return nil, fmt.Errorf("view.timezone: %w", err)
	}
	return loc, nil
}
