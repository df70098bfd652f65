package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoreFirestore = "firestore"
	StoreSQLite    = "sqlite"
)

type Config struct {
	Env              string        `yaml:"env"`
	Port             string        `yaml:"port"`
	LogLevel         string        `yaml:"logLevel"`
	LogFormat        string        `yaml:"logFormat"`
	ProjectID        string        `yaml:"projectId"`
	PublicURL        string        `yaml:"publicUrl"`
	StoreDriver      string        `yaml:"storeDriver"`
	SQLitePath       string        `yaml:"sqlitePath"`
	WidgetCollection string        `yaml:"widgetCollection"`
	RedisURL         string        `yaml:"redisUrl"`
	CacheTTL         time.Duration `yaml:"cacheTtl"`
	UploadBucket     string        `yaml:"uploadBucket"`
	UploadDir        string        `yaml:"uploadDir"`
	MaxUploadBytes   int64         `yaml:"maxUploadBytes"`
	BrandingLogo     string        `yaml:"brandingLogo"`
	BrandingLink     string        `yaml:"brandingLink"`
}

func defaults() *Config {
	return &Config{
		Env:              EnvDevelopment,
		Port:             "8080",
		LogLevel:         "info",
		PublicURL:        "http://localhost:8080",
		StoreDriver:      StoreFirestore,
		SQLitePath:       "widgets.db",
		WidgetCollection: "widgets",
		CacheTTL:         5 * time.Minute,
		MaxUploadBytes:   2_000_000,
		BrandingLogo:     "https://dummyimage.com/64x64/0f172a/ffffff&text=B",
		BrandingLink:     "https://botrix.ai",
	}
}

// New reads configuration from the environment.
func New() *Config {
	cfg := defaults()
	cfg.applyEnv(os.LookupEnv)
	cfg.finish()
	return cfg
}

// Load reads the YAML file at path, then applies the environment on top.
// An empty path behaves like New.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.finish()
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("ENV", &c.Env)
	str("PORT", &c.Port)
	str("LOGLEVEL", &c.LogLevel)
	str("LOGFORMAT", &c.LogFormat)
	str("PROJECTID", &c.ProjectID)
	str("PUBLICURL", &c.PublicURL)
	str("STOREDRIVER", &c.StoreDriver)
	str("SQLITEPATH", &c.SQLitePath)
	str("WIDGETCOLLECTION", &c.WidgetCollection)
	str("REDISURL", &c.RedisURL)
	str("UPLOADBUCKET", &c.UploadBucket)
	str("UPLOADDIR", &c.UploadDir)
	str("BRANDINGLOGO", &c.BrandingLogo)
	str("BRANDINGLINK", &c.BrandingLink)

	if v, ok := lookup("CACHETTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
	if v, ok := lookup("MAXUPLOADBYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxUploadBytes = n
		}
	}
}

func (c *Config) finish() {
	if c.Env != EnvProduction {
		c.Env = EnvDevelopment
	}
	if c.LogFormat == "" {
		if c.IsProduction() {
			c.LogFormat = "json"
		} else {
			c.LogFormat = "console"
		}
	}
	for len(c.PublicURL) > 0 && c.PublicURL[len(c.PublicURL)-1] == '/' {
		c.PublicURL = c.PublicURL[:len(c.PublicURL)-1]
	}
}
