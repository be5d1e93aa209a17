package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultAPIURL           = "http://localhost:5000"
	DefaultAutoplayInterval = 5000
	DefaultTouchResumeDelay = 300
	DefaultRequestTimeout   = 15000
	DefaultHomeShipping     = 9.90
	DefaultCurrency         = "USD"
)

// Environment variables that override file settings
const (
	EnvAPIURL            = "MERCAUCA_API_URL"
	EnvReduceMotion      = "MERCAUCA_REDUCE_MOTION"
	EnvReduceMotionShort = "REDUCE_MOTION"
	EnvLogLevel          = "MERCAUCA_LOG_LEVEL"
)

var (
	ErrInvalidAPIURL   = errors.New("invalid api_url")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// Config represents the application configuration
type Config struct {
	Version        int              `toml:"version"`
	APIURL         string           `toml:"api_url"`
	RequestTimeout int              `toml:"request_timeout"` // milliseconds
	DataDir        string           `toml:"data_dir"`
	Carousel       CarouselSettings `toml:"carousel"`
	Shop           ShopSettings     `toml:"shop"`
	Log            LogSettings      `toml:"log"`
}

// CarouselSettings holds the featured-products carousel knobs. Durations are
// in milliseconds.
type CarouselSettings struct {
	AutoplayInterval int  `toml:"autoplay_interval"`
	TouchResumeDelay int  `toml:"touch_resume_delay"`
	ReduceMotion     bool `toml:"reduce_motion"`
}

type ShopSettings struct {
	Currency         string  `toml:"currency"`
	HomeShippingCost float64 `toml:"home_shipping_cost"`
}

type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// AutoplayDelay returns the carousel interval as a duration
func (c *Config) AutoplayDelay() time.Duration {
	return time.Duration(c.Carousel.AutoplayInterval) * time.Millisecond
}

// TouchResumeDelay returns the touch-end grace period as a duration
func (c *Config) TouchResumeDelay() time.Duration {
	return time.Duration(c.Carousel.TouchResumeDelay) * time.Millisecond
}

// Timeout returns the HTTP request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Millisecond
}

// SessionDir is where the session store lives
func (c *Config) SessionDir() string {
	return filepath.Join(c.DataDir, "session")
}

// LogFile returns the configured log file, placed in the data dir by default
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "mercauca.log")
}

// Validate checks the settings that would make the client unusable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAPIURL)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.APIURL)
	}
	if c.Carousel.AutoplayInterval <= 0 {
		return fmt.Errorf("carousel.autoplay_interval: %w", ErrInvalidInterval)
	}
	if c.Carousel.TouchResumeDelay <= 0 {
		return fmt.Errorf("carousel.touch_resume_delay: %w", ErrInvalidInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout: %w", ErrInvalidInterval)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto the config
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		c.APIURL = strings.TrimSpace(v)
	}
	for _, key := range []string{EnvReduceMotion, EnvReduceMotionShort} {
		if v, ok := lookup(key); ok {
			if on, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				c.Carousel.ReduceMotion = on
			} else if strings.TrimSpace(v) != "" {
				c.Carousel.ReduceMotion = true
			}
			break
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = strings.TrimSpace(v)
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service using the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service bound to a specific file
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		return NewConfigService()
	}
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/mercauca/config.toml
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, ".config")
	}
	return filepath.Join(dir, "mercauca")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, writing defaults when it does not exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Fields missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		APIURL:         DefaultAPIURL,
		RequestTimeout: DefaultRequestTimeout,
		DataDir:        defaultDataDir(),
		Carousel: CarouselSettings{
			AutoplayInterval: DefaultAutoplayInterval,
			TouchResumeDelay: DefaultTouchResumeDelay,
		},
		Shop: ShopSettings{
			Currency:         DefaultCurrency,
			HomeShippingCost: DefaultHomeShipping,
		},
		Log: LogSettings{Level: "info"},
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "mercauca")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mercauca"
	}
	return filepath.Join(home, ".local", "share", "mercauca")
}
