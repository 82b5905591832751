package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/jobpanel/internal/jobview"
)

// Config holds the panel's settings after defaults are applied.
type Config struct {
	APIURL         string
	Username       string
	APIToken       string
	PageSize       int
	PageSizes      []int
	PollInterval   time.Duration
	SearchDebounce time.Duration
	RequestTimeout time.Duration
	LogFile        string
}

const (
	defaultConfigPath     = "~/.config/jobpanel/config.toml"
	defaultAPIURL         = "https://api.maap-project.org"
	defaultUsername       = "anonymous"
	defaultPollInterval   = 30 * time.Second
	defaultSearchDebounce = 200 * time.Millisecond
	defaultRequestTimeout = 5 * time.Second
	defaultLogFile        = "~/.local/state/jobpanel/jobpanel.log"
)

// fileConfig mirrors the on-disk layout for both TOML and YAML.
type fileConfig struct {
	APIURL         string `toml:"api_url" yaml:"api_url"`
	Username       string `toml:"username" yaml:"username"`
	APIToken       string `toml:"api_token" yaml:"api_token"`
	PageSize       int    `toml:"page_size" yaml:"page_size"`
	PageSizes      []int  `toml:"page_sizes" yaml:"page_sizes"`
	PollInterval   string `toml:"poll_interval" yaml:"poll_interval"`
	SearchDebounce string `toml:"search_debounce" yaml:"search_debounce"`
	RequestTimeout string `toml:"request_timeout" yaml:"request_timeout"`
	LogFile        string `toml:"log_file" yaml:"log_file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		Username:       defaultUsername,
		PageSize:       jobview.DefaultPageSize,
		PageSizes:      append([]int(nil), jobview.DefaultPageSizes...),
		PollInterval:   defaultPollInterval,
		SearchDebounce: defaultSearchDebounce,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// Load reads the config at path (or the default path), falling back to
// defaults when the file is missing. Files ending in .yaml or .yml are parsed
// as YAML, everything else as TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return raw.resolve()
}

func (raw fileConfig) resolve() (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.Username); v != "" {
		cfg.Username = v
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)

	if len(raw.PageSizes) > 0 {
		sizes := make([]int, 0, len(raw.PageSizes))
		for _, size := range raw.PageSizes {
			if size <= 0 {
				return Config{}, fmt.Errorf("parse config: page_sizes must be positive, got %d", size)
			}
			sizes = append(sizes, size)
		}
		cfg.PageSizes = sizes
		cfg.PageSize = sizes[0]
	}
	if raw.PageSize < 0 {
		return Config{}, fmt.Errorf("parse config: page_size must be positive, got %d", raw.PageSize)
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	var err error
	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, cfg.PollInterval); err != nil {
		return Config{}, err
	}
	if cfg.SearchDebounce, err = parseDuration("search_debounce", raw.SearchDebounce, cfg.SearchDebounce); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return Config{}, err
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	return cfg, nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", field)
	}
	return d, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading "~" to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
