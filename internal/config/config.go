package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	API        APIConfig        `yaml:"api"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Console    ConsoleConfig    `yaml:"console"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type APIConfig struct {
	BaseURL        string             `yaml:"base_url"`
	RequestTimeout time.Duration      `yaml:"request_timeout"`
	RateLimit      APIRateLimitConfig `yaml:"rate_limit"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type ConsoleConfig struct {
	PageSize    int           `yaml:"page_size"`
	ExportsPath string        `yaml:"exports_path"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
}

// DefaultBaseURL is used when neither the config file nor SALON_API_URL
// provide a backend address.
const DefaultBaseURL = "https://f82cb2me3v.ap-northeast-1.awsapprunner.com"

func Load(configPath string) (*Config, error) {
	// .env is optional; values from it are expanded into the YAML below.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q is not an absolute URL", c.API.BaseURL)
	}

	if c.Console.PageSize < 0 {
		return errors.New("console page_size must not be negative")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		if env := os.Getenv("SALON_API_URL"); env != "" {
			c.API.BaseURL = env
		} else {
			c.API.BaseURL = DefaultBaseURL
		}
	}
	if c.API.RequestTimeout == 0 {
		c.API.RequestTimeout = 10 * time.Second
	}

	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	if c.Console.PageSize == 0 {
		c.Console.PageSize = 20
	}
	if c.Console.ExportsPath == "" {
		c.Console.ExportsPath = "exports"
	}
	if c.Console.SessionTTL == 0 {
		c.Console.SessionTTL = 24 * time.Hour
	}
}
