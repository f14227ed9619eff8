// Package shared holds process configuration. Environment variables carry the
// defaults; an optional YAML file named by TSHWANE_CONFIG overlays them.
package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// MySQLDSN empty disables the repository sink on the processor and is a
	// fatal misconfiguration for the API.
	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	BaseDir    string
	OutputDir  string
	SearchDirs []string

	Workers      int
	FetchTimeout time.Duration
	FetchDelay   time.Duration
	SearchBase   string

	ClassifierURL string
	ClassifierKey string

	CacheTTL time.Duration
}

// fileConfig is the YAML overlay shape; only set fields override.
type fileConfig struct {
	HTTPAddr      string   `yaml:"http_addr"`
	MySQLDSN      string   `yaml:"mysql_dsn"`
	RedisAddr     string   `yaml:"redis_addr"`
	BaseDir       string   `yaml:"base_dir"`
	OutputDir     string   `yaml:"output_dir"`
	SearchDirs    []string `yaml:"search_dirs"`
	Workers       int      `yaml:"workers"`
	SearchBase    string   `yaml:"search_base"`
	ClassifierURL string   `yaml:"classifier_url"`
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		MySQLDSN:      env("MYSQL_DSN", ""),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		BaseDir:       env("BASE_DIR", "."),
		OutputDir:     env("OUTPUT_DIR", "processed_data"),
		SearchDirs:    splitList(env("SEARCH_DIRS", "")),
		Workers:       atoi("ENRICH_WORKERS", 5),
		FetchTimeout:  time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		FetchDelay:    time.Duration(atoi("FETCH_DELAY_MS", 1000)) * time.Millisecond,
		SearchBase:    env("SEARCH_BASE_URL", ""),
		ClassifierURL: env("CLASSIFIER_URL", ""),
		ClassifierKey: env("CLASSIFIER_API_KEY", ""),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if path := os.Getenv("TSHWANE_CONFIG"); path != "" {
		overlayFile(&c, path)
	}
	return c
}

func overlayFile(c *Config, path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config file unreadable, using env only")
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config file invalid, using env only")
		return
	}
	if fc.HTTPAddr != "" {
		c.HTTPAddr = fc.HTTPAddr
	}
	if fc.MySQLDSN != "" {
		c.MySQLDSN = fc.MySQLDSN
	}
	if fc.RedisAddr != "" {
		c.RedisAddr = fc.RedisAddr
	}
	if fc.BaseDir != "" {
		c.BaseDir = fc.BaseDir
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if len(fc.SearchDirs) > 0 {
		c.SearchDirs = fc.SearchDirs
	}
	if fc.Workers > 0 {
		c.Workers = fc.Workers
	}
	if fc.SearchBase != "" {
		c.SearchBase = fc.SearchBase
	}
	if fc.ClassifierURL != "" {
		c.ClassifierURL = fc.ClassifierURL
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
