// Package config loads the settings of the example lookup program.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the lookup client configuration.
type Config struct {
	SauceNAO  SauceNAOConfig  `yaml:"saucenao"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Relations RelationsConfig `yaml:"relations"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// SauceNAOConfig holds search endpoint settings.
type SauceNAOConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	DBMask        int64  `yaml:"dbmask"`
	DBMaskDisable int64  `yaml:"dbmaski"`
	DB            *int   `yaml:"db"` // nil = all indexes (999)
	ResultsLimit  int    `yaml:"results_limit"`
	TestMode      bool   `yaml:"test_mode"`
	StrictMode    bool   `yaml:"strict_mode"`
	TimeoutSec    int    `yaml:"timeout_sec"`
}

// RankingConfig holds result ordering settings.
type RankingConfig struct {
	MinSimilarity float64  `yaml:"min_similarity"` // 0 = no threshold
	Priority      []int    `yaml:"priority"`
	Tolerance     *float64 `yaml:"priority_tolerance"` // nil = client default
}

// RelationsConfig holds anime id mapping service settings.
type RelationsConfig struct {
	BaseURL string `yaml:"base_url"`
}

// CacheConfig holds the optional relation cache settings.
type CacheConfig struct {
	Addr     string `yaml:"addr"` // empty = disabled
	Password string `yaml:"password"`
	TTLHours int    `yaml:"ttl_hours"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML, substituting ${VAR} references, then applies defaults
// and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.SauceNAO.BaseURL == "" {
		c.SauceNAO.BaseURL = "https://saucenao.com/search.php"
	}
	if c.SauceNAO.DB == nil {
		allIndexes := 999
		c.SauceNAO.DB = &allIndexes
	}
	if c.SauceNAO.ResultsLimit <= 0 {
		c.SauceNAO.ResultsLimit = 6
	}
	if c.SauceNAO.TimeoutSec <= 0 {
		c.SauceNAO.TimeoutSec = 60
	}
	if c.Relations.BaseURL == "" {
		c.Relations.BaseURL = "https://relations.yuna.moe"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 168
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.SauceNAO.DB != nil && *c.SauceNAO.DB < 0 {
		return fmt.Errorf("saucenao.db must not be negative, got %d", *c.SauceNAO.DB)
	}
	if c.SauceNAO.DBMask < 0 || c.SauceNAO.DBMaskDisable < 0 {
		return errors.New("saucenao.dbmask and saucenao.dbmaski must not be negative")
	}
	if c.Ranking.MinSimilarity < 0 || c.Ranking.MinSimilarity > 100 {
		return fmt.Errorf("ranking.min_similarity must be between 0 and 100, got %v", c.Ranking.MinSimilarity)
	}
	if c.Ranking.Tolerance != nil && *c.Ranking.Tolerance < 0 {
		return fmt.Errorf("ranking.priority_tolerance must not be negative, got %v", *c.Ranking.Tolerance)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
