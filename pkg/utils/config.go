package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"unbelong/pkg/imageurl"
)

const (
	defaultConfigPath    = "config.toml"
	defaultAddr          = ":8080"
	defaultAPIBaseURL    = "https://unbelong-api.belong2jazz.workers.dev"
	defaultPublicSiteURL = "https://illust.unbelong.xyz"
	defaultAdminEditURL  = "https://unbelong-hono-admin.pages.dev"
	defaultAdminUsername = "mn"
	defaultAdminPassword = "39"
	defaultSessionIssuer = "unbelong"
	defaultSessionTTL    = 12 * time.Hour
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	API     APIConfig     `toml:"api"`
	Images  ImagesConfig  `toml:"images"`
	Links   LinksConfig   `toml:"links"`
	Admin   AdminConfig   `toml:"admin"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	TrustedProxies []string `toml:"trusted_proxies"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type ImagesConfig struct {
	CDNHost      string `toml:"cdn_host"`
	DeliveryHost string `toml:"delivery_host"`
	AccountHash  string `toml:"account_hash"`
}

func (c ImagesConfig) Resolver() imageurl.Resolver {
	return imageurl.Resolver{
		CDNHost:      c.CDNHost,
		DeliveryHost: c.DeliveryHost,
		AccountHash:  c.AccountHash,
	}
}

type LinksConfig struct {
	PublicSiteURL string `toml:"public_site_url"`
	AdminEditURL  string `toml:"admin_edit_url"`
}

// AdminConfig holds the single admin account. PasswordHash (bcrypt) wins
// over Password when both are set.
type AdminConfig struct {
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	PasswordHash string `toml:"password_hash"`
}

type SessionConfig struct {
	Secret       string        `toml:"secret"`
	Issuer       string        `toml:"issuer"`
	TTL          string        `toml:"ttl"`
	DBPath       string        `toml:"db_path"`
	CookieSecure bool          `toml:"cookie_secure"`
	Duration     time.Duration `toml:"-"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig is what the server runs with when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:           defaultAddr,
			TrustedProxies: []string{"127.0.0.1"},
		},
		API: APIConfig{BaseURL: defaultAPIBaseURL},
		Images: ImagesConfig{
			CDNHost:      imageurl.DefaultCDNHost,
			DeliveryHost: imageurl.DefaultDeliveryHost,
			AccountHash:  imageurl.DefaultAccountHash,
		},
		Links: LinksConfig{
			PublicSiteURL: defaultPublicSiteURL,
			AdminEditURL:  defaultAdminEditURL,
		},
		Admin: AdminConfig{
			Username: defaultAdminUsername,
			Password: defaultAdminPassword,
		},
		Session: SessionConfig{
			// dev default (change for production)
			Secret:   "dev-secret-change-me",
			Issuer:   defaultSessionIssuer,
			TTL:      defaultSessionTTL.String(),
			DBPath:   defaultDBPath(),
			Duration: defaultSessionTTL,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig layers defaults, the TOML file at path and UNBELONG_* environment
// variables, in that order. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) == "" {
		path = getEnv("UNBELONG_CONFIG", defaultConfigPath)
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("UNBELONG_ADDR", cfg.Server.Addr)
	if v := os.Getenv("UNBELONG_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	cfg.API.BaseURL = getEnv("UNBELONG_API_URL", cfg.API.BaseURL)
	cfg.Admin.Username = getEnv("UNBELONG_ADMIN_USERNAME", cfg.Admin.Username)
	cfg.Admin.Password = getEnv("UNBELONG_ADMIN_PASSWORD", cfg.Admin.Password)
	cfg.Admin.PasswordHash = getEnv("UNBELONG_ADMIN_PASSWORD_HASH", cfg.Admin.PasswordHash)
	cfg.Session.Secret = getEnv("UNBELONG_SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.TTL = getEnv("UNBELONG_SESSION_TTL", cfg.Session.TTL)
	cfg.Session.DBPath = getEnv("UNBELONG_DB_PATH", cfg.Session.DBPath)
	if v := os.Getenv("UNBELONG_COOKIE_SECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Session.CookieSecure = b
		}
	}
	cfg.Log.Level = getEnv("UNBELONG_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("UNBELONG_LOG_FORMAT", cfg.Log.Format)
}

func (c *Config) normalize() error {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = defaultAddr
	}
	if strings.TrimSpace(c.Admin.Username) == "" {
		return fmt.Errorf("admin.username must not be empty")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin.password or admin.password_hash is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret must not be empty")
	}

	ttl := strings.TrimSpace(c.Session.TTL)
	if ttl == "" {
		c.Session.Duration = defaultSessionTTL
	} else {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("parse session.ttl %q: %w", ttl, err)
		}
		if d <= 0 {
			return fmt.Errorf("session.ttl must be positive, got %s", d)
		}
		c.Session.Duration = d
	}

	if c.Session.DBPath == "" {
		c.Session.DBPath = defaultDBPath()
	}
	c.Session.DBPath = expandHome(c.Session.DBPath)
	return nil
}

// local default: ~/.unbelong/sessions.db
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".unbelong", "sessions.db")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
