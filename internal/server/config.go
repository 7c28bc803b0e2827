package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/config"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the calculator web server.
type Config struct {
	Address         string                 `yaml:"address"`
	MaxUploadSize   string                 `yaml:"maxUploadSize"`
	HistoryLimit    int                    `yaml:"historyLimit"`
	Logging         config.LoggingConfig   `yaml:"logging"`
	Optimizer       config.OptimizerConfig `yaml:"optimizer"`
	uploadSizeBytes int64
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		HistoryLimit:    constants.DefaultHistoryLimit,
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
	cfg.Optimizer.Normalize()
	return cfg
}

// LoadConfig reads the server settings from a YAML file. A missing file, or
// an empty path, yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("reading server config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding server config %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("server config %s: %w", path, err)
	}
	return cfg, nil
}

// UploadSizeBytes is the largest scenario upload the server accepts.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the upload limit; non-positive sizes are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
}

func (c *Config) normalize() error {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Address) == "" {
		c.Address = defaults.Address
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaults.HistoryLimit
	}
	if err := c.Optimizer.Validate(); err != nil {
		return err
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = defaults.uploadSizeBytes
	}
	c.SetUploadSizeBytes(size)
	return nil
}

var sizeUnits = map[string]int64{
	"":    1,
	"B":   1,
	"K":   1 << 10,
	"KB":  1 << 10,
	"KIB": 1 << 10,
	"M":   1 << 20,
	"MB":  1 << 20,
	"MIB": 1 << 20,
	"G":   1 << 30,
	"GB":  1 << 30,
	"GIB": 1 << 30,
}

// ParseSize converts a byte count with an optional binary unit suffix, such
// as "256K" or "10MiB", into bytes. An empty string means the default limit.
func ParseSize(value string) (int64, error) {
	text := strings.ToUpper(strings.TrimSpace(value))
	if text == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) })
	if split == -1 {
		split = len(text)
	}
	if split == 0 {
		return 0, fmt.Errorf("size %q does not start with a number", value)
	}

	multiplier, ok := sizeUnits[strings.TrimSpace(text[split:])]
	if !ok {
		return 0, fmt.Errorf("size %q has an unknown unit", value)
	}
	n, err := strconv.ParseInt(text[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("size %q: %w", value, err)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return n * multiplier, nil
}
