package flatpress

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/labstack/gommon/log"
)

// SiteConfig holds all configuration for a flatpress site. Fields are read
// from the environment by LoadConfig, or from a file by LoadConfigFile.
type SiteConfig struct {
	Name        string `yaml:"name" json:"name" toml:"name" env:"SITE_NAME" env-default:"Personal Blog"`
	URL         string `yaml:"url" json:"url" toml:"url" env:"SITE_URL" env-default:"http://localhost:3000"`
	Description string `yaml:"description" json:"description" toml:"description" env:"SITE_DESCRIPTION"`
	Author      string `yaml:"author" json:"author" toml:"author" env:"SITE_AUTHOR"`

	Port       string `yaml:"port" json:"port" toml:"port" env:"PORT" env-default:"3000"`
	ContentDir string `yaml:"content_dir" json:"content_dir" toml:"content_dir" env:"CONTENT_DIR" env-default:"blogs"`
	StaticDir  string `yaml:"static_dir" json:"static_dir" toml:"static_dir" env:"STATIC_DIR" env-default:"public"`

	AdminUsername string        `yaml:"admin_username" json:"admin_username" toml:"admin_username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string        `yaml:"admin_password" json:"admin_password" toml:"admin_password" env:"ADMIN_PASSWORD"`
	SessionSecret string        `yaml:"session_secret" json:"session_secret" toml:"session_secret" env:"SESSION_SECRET"`
	SessionTTL    time.Duration `yaml:"session_ttl" json:"session_ttl" toml:"session_ttl" env:"SESSION_TTL" env-default:"24h"`
	CookieSecure  bool          `yaml:"cookie_secure" json:"cookie_secure" toml:"cookie_secure" env:"COOKIE_SECURE"`

	LoginMaxAttempts int           `yaml:"login_max_attempts" json:"login_max_attempts" toml:"login_max_attempts" env:"LOGIN_MAX_ATTEMPTS" env-default:"5"`
	LoginWindow      time.Duration `yaml:"login_window" json:"login_window" toml:"login_window" env:"LOGIN_WINDOW" env-default:"1m"`

	LogLevel string `yaml:"log_level" json:"log_level" toml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("flatpress: read env: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a yaml, json, toml or .env file; environment
// variables override values from the file.
func LoadConfigFile(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("flatpress: read config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigUsage describes every environment variable LoadConfig reads.
func ConfigUsage() string {
	var cfg SiteConfig
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

// Addr is the listen address derived from Port.
func (c SiteConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// validate reports the first missing required setting.
func (c SiteConfig) validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("flatpress: AdminPassword is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("flatpress: SessionSecret is required")
	}
	return nil
}

// setDefaults fills zero values for configs built in code rather than
// loaded with LoadConfig.
func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Personal Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Port == "" {
		c.Port = "3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "blogs"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 24 * time.Hour
	}
	if c.LoginMaxAttempts == 0 {
		c.LoginMaxAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c SiteConfig) logLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
