package config

import (
	_ "embed"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stickers.yaml
var stickersYAML []byte

type Config struct {
	Stickers StickersConfig
	Scoring  ScoringConfig
	Log      LogConfig
	Web      WebConfig
}

type StickersConfig struct {
	Dir      string                 // directory sticker files are resolved against (default "stickers")
	Manifest map[string]StickerSpec `yaml:"stickers"`
}

type StickerSpec struct {
	File        string `yaml:"file"`
	Description string `yaml:"description"`
}

// Files returns the sticker name to file name mapping.
func (c *StickersConfig) Files() map[string]string {
	files := make(map[string]string, len(c.Manifest))
	for name, s := range c.Manifest {
		files[name] = s.File
	}
	return files
}

// Names returns the sticker names in the manifest, sorted.
func (c *StickersConfig) Names() []string {
	names := make([]string, 0, len(c.Manifest))
	for name := range c.Manifest {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ScoringConfig struct {
	Metric string // IoU formulation, "snapped" (default) or "standard"
}

type LogConfig struct {
	Level      string // defaults to info
	File       string // optional rotating log file, stderr only when empty
	MaxSizeMB  int    // defaults to 100
	MaxBackups int    // defaults to 3
	MaxAgeDays int    // defaults to 28
}

type WebConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable, falling back to defaultVal when unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList splits a comma-separated environment variable, dropping empty items.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() *Config {
	var stickers StickersConfig
	if err := yaml.Unmarshal(stickersYAML, &stickers); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded stickers.yaml: " + err.Error())
	}
	stickers.Dir = envString("STICKERS_DIR", "stickers")

	return &Config{
		Stickers: stickers,
		Scoring: ScoringConfig{
			Metric: envString("STICKERS_IOU_METRIC", "snapped"),
		},
		Log: LogConfig{
			Level:      envString("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: envInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 28),
		},
		Web: WebConfig{
			Host:           envString("WEB_HOST", "0.0.0.0"),
			Port:           envInt("WEB_PORT", 8080),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
	}
}
