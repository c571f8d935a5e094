package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreConfig holds the storefront settings shared by every binary.
type StoreConfig struct {
	DataURL     string `yaml:"data_url"`
	APIBaseURL  string `yaml:"api_base_url"`
	ImageRoot   string `yaml:"image_root"`
	Placeholder string `yaml:"placeholder"`
	AudioCue    string `yaml:"audio_cue"`

	PopularCount int `yaml:"popular_count"`
	DealsCount   int `yaml:"deals_count"`
	MaxVisible   int `yaml:"max_visible"`

	ReducedMotion bool `yaml:"reduced_motion"`

	Addr        string `yaml:"addr"`
	CatalogFile string `yaml:"catalog_file"`
	PublicDir   string `yaml:"public_dir"`
	LogLevel    string `yaml:"log_level"`
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataURL:      "/data/cards.json",
		APIBaseURL:   "",
		ImageRoot:    "/assets/cards/",
		Placeholder:  "/assets/back.png",
		AudioCue:     "/assets/sounds/charizard.mp3",
		PopularCount: 8,
		DealsCount:   4,
		MaxVisible:   5,
		Addr:         ":8080",
		CatalogFile:  "public/data/cards.json",
		PublicDir:    "public",
		LogLevel:     "info",
	}
}

// LoadStoreConfig starts from the defaults, applies the YAML file named by
// POKEMART_CONFIG (if any) and then the POKEMART_* environment overrides.
func LoadStoreConfig() (StoreConfig, error) {
	cfg := DefaultStoreConfig()

	if path := strings.TrimSpace(os.Getenv("POKEMART_CONFIG")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	cfg.fillDefaults()
	return cfg, nil
}

func applyEnv(cfg *StoreConfig) {
	setString(&cfg.DataURL, "POKEMART_CARDS_ENDPOINT")
	setString(&cfg.APIBaseURL, "POKEMART_API_BASE_URL")
	setString(&cfg.ImageRoot, "POKEMART_IMAGE_ROOT")
	setString(&cfg.Placeholder, "POKEMART_PLACEHOLDER")
	setString(&cfg.AudioCue, "POKEMART_AUDIO_CUE")
	setString(&cfg.Addr, "POKEMART_ADDR")
	setString(&cfg.CatalogFile, "POKEMART_CATALOG_FILE")
	setString(&cfg.PublicDir, "POKEMART_PUBLIC_DIR")
	setString(&cfg.LogLevel, "POKEMART_LOG_LEVEL")

	setInt(&cfg.PopularCount, "POKEMART_POPULAR_COUNT")
	setInt(&cfg.DealsCount, "POKEMART_DEALS_COUNT")
	setInt(&cfg.MaxVisible, "POKEMART_MAX_VISIBLE")

	if v := strings.TrimSpace(os.Getenv("POKEMART_REDUCED_MOTION")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ReducedMotion = b
		}
	}
}

// a zero or negative count from the file falls back to the default
func (c *StoreConfig) fillDefaults() {
	def := DefaultStoreConfig()
	if c.PopularCount <= 0 {
		c.PopularCount = def.PopularCount
	}
	if c.DealsCount <= 0 {
		c.DealsCount = def.DealsCount
	}
	if c.MaxVisible <= 0 {
		c.MaxVisible = def.MaxVisible
	}
	if c.Placeholder == "" {
		c.Placeholder = def.Placeholder
	}
	if c.DataURL == "" {
		c.DataURL = def.DataURL
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// HealthURL is the backend probe endpoint under the API base.
func (c StoreConfig) HealthURL() string {
	return strings.TrimRight(c.APIBaseURL, "/") + "/store/health/"
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	// if parse fails, keep what we had
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
