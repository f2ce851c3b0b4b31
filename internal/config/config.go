package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2323
	defaultEnv        = "development"

	// Environment variables overriding the CMS settings. The content layer
	// is configured by the deploy environment, not by the YAML file alone.
	EnvContentEndpoint = "CONTENT_ENDPOINT"
	EnvContentToken    = "CONTENT_TOKEN"
	EnvSiteConfigID    = "SITE_CONFIG_ID"

	defaultShareCardWidth      = 428
	defaultShareCardHeight     = 700
	defaultShareCardPixelRatio = 3
	defaultShareCardBackground = "#f3e8ff"
)

// AppConfig holds runtime startup configuration loaded from YAML, with CMS
// settings overridable from the environment.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	SiteURL        string          `yaml:"site_url"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Content        ContentConfig   `yaml:"content"`
	Redis          RedisConfig     `yaml:"redis"`
	ShareCard      ShareCardConfig `yaml:"share_card"`
	PurgeToken     string          `yaml:"purge_token"`
}

// ContentConfig locates the upstream headless CMS.
type ContentConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Token        string `yaml:"token"`
	SiteConfigID string `yaml:"site_config_id"`
}

// RedisConfig enables the HTTP response cache when a URL is set.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// ShareCardConfig controls the rendered share-card artifact.
type ShareCardConfig struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	PixelRatio int         `yaml:"pixel_ratio"`
	Background string      `yaml:"background"`
	S3         ShareCardS3 `yaml:"s3"`
}

// ShareCardS3 configures the optional object store for generated cards.
type ShareCardS3 struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	Prefix          string `yaml:"prefix"`
}

type rawAppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"`
	NodeEnv        string          `yaml:"node_env"`
	SiteURL        string          `yaml:"site_url"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Content        rawContent      `yaml:"content"`
	Endpoint       string          `yaml:"content_endpoint"`
	Token          string          `yaml:"content_token"`
	SiteConfigID   string          `yaml:"site_config_id"`
	Redis          RedisConfig     `yaml:"redis"`
	RedisURL       string          `yaml:"redis_url"`
	ShareCard      ShareCardConfig `yaml:"share_card"`
	PurgeToken     string          `yaml:"purge_token"`
}

type rawContent struct {
	Endpoint     string `yaml:"endpoint"`
	URL          string `yaml:"url"`
	Token        string `yaml:"token"`
	SiteConfigID string `yaml:"site_config_id"`
}

// Load reads, normalizes and validates the YAML config at path. A missing
// file is not fatal: env-only deployments get the defaults plus whatever the
// environment provides.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case os.IsNotExist(err):
		// fall through to env overrides
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if ep := cfg.Content.Endpoint; ep != "" {
		if _, err := url.ParseRequestURI(ep); err != nil {
			return nil, fmt.Errorf("invalid content endpoint %q: %w", ep, err)
		}
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		ShareCard: ShareCardConfig{
			Width:      defaultShareCardWidth,
			Height:     defaultShareCardHeight,
			PixelRatio: defaultShareCardPixelRatio,
			Background: defaultShareCardBackground,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.SiteURL); v != "" {
		cfg.SiteURL = strings.TrimRight(v, "/")
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}

	if v := strings.TrimSpace(raw.Content.Endpoint); v != "" {
		cfg.Content.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Content.URL); v != "" {
		cfg.Content.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Content.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Content.Token); v != "" {
		cfg.Content.Token = v
	}
	if v := strings.TrimSpace(raw.Token); v != "" {
		cfg.Content.Token = v
	}
	if v := strings.TrimSpace(raw.Content.SiteConfigID); v != "" {
		cfg.Content.SiteConfigID = v
	}
	if v := strings.TrimSpace(raw.SiteConfigID); v != "" {
		cfg.Content.SiteConfigID = v
	}

	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.Redis.URL = normalizeRedisURL(v)
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.Redis.URL = normalizeRedisURL(v)
	}

	applyShareCard(&cfg.ShareCard, raw.ShareCard)

	if v := strings.TrimSpace(raw.PurgeToken); v != "" {
		cfg.PurgeToken = v
	}

	cfg.Env = normalizeEnv(cfg.Env)
}

func applyShareCard(dst *ShareCardConfig, raw ShareCardConfig) {
	if raw.Width > 0 {
		dst.Width = raw.Width
	}
	if raw.Height > 0 {
		dst.Height = raw.Height
	}
	if raw.PixelRatio > 0 {
		dst.PixelRatio = raw.PixelRatio
	}
	if v := strings.TrimSpace(raw.Background); v != "" {
		dst.Background = v
	}
	dst.S3.Enable = raw.S3.Enable
	if v := strings.TrimSpace(raw.S3.Endpoint); v != "" {
		dst.S3.Endpoint = v
	}
	if v := strings.TrimSpace(raw.S3.Bucket); v != "" {
		dst.S3.Bucket = v
	}
	if v := strings.TrimSpace(raw.S3.Region); v != "" {
		dst.S3.Region = v
	}
	if v := strings.TrimSpace(raw.S3.AccessKeyID); v != "" {
		dst.S3.AccessKeyID = v
	}
	if v := strings.TrimSpace(raw.S3.SecretAccessKey); v != "" {
		dst.S3.SecretAccessKey = v
	}
	if v := strings.TrimSpace(raw.S3.CustomDomain); v != "" {
		dst.S3.CustomDomain = v
	}
	if raw.S3.PathStyleAccess {
		dst.S3.PathStyleAccess = true
	}
	if v := strings.TrimSpace(raw.S3.Prefix); v != "" {
		dst.S3.Prefix = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvContentEndpoint)); v != "" {
		cfg.Content.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvContentToken)); v != "" {
		cfg.Content.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSiteConfigID)); v != "" {
		cfg.Content.SiteConfigID = v
	}
}

func normalizeRedisURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

// IsDev reports whether the app runs in development mode. Development mode
// clears the content cache before each bulk hydration to ensure fresh data.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
