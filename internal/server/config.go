package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/lp-bulk/internal/config"
	"github.com/iwvelando/lp-bulk/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the web calculator server.
type Config struct {
	Address           string               `yaml:"address"`
	MaxUploadSize     string               `yaml:"maxUploadSize"`
	DefaultMultiplier int                  `yaml:"defaultMultiplier"`
	Logging           config.LoggingConfig `yaml:"logging"`
	uploadSizeBytes   int64
}

// sizeUnits maps the suffixes accepted in maxUploadSize to byte factors.
// Offer tables are small, so nothing beyond megabytes is accepted.
var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
}

// LoadConfig reads the server configuration at path. A missing file, or an
// empty path, yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:           constants.DefaultServerAddress,
		DefaultMultiplier: constants.DefaultMultiplier,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes returns the offer table upload limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	switch {
	case c.DefaultMultiplier == 0:
		c.DefaultMultiplier = constants.DefaultMultiplier
	case c.DefaultMultiplier < constants.MinMultiplier:
		return fmt.Errorf("defaultMultiplier must be at least %d, got %d", constants.MinMultiplier, c.DefaultMultiplier)
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
	return nil
}

// ParseSize converts an upload limit such as "256K" or "2MB" into bytes.
// Blank text yields the default limit.
func ParseSize(value string) (int64, error) {
	text := strings.ToUpper(strings.TrimSpace(value))
	if text == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	unit := strings.TrimLeftFunc(text, unicode.IsDigit)
	digits := text[:len(text)-len(unit)]
	factor, ok := sizeUnits[strings.TrimSpace(unit)]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit in %q", value)
	}
	if digits == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("upload size must be positive, got %q", value)
	}
	if n > constants.MaxUploadSizeBytes/factor {
		return 0, fmt.Errorf("upload size %q exceeds %d bytes", value, constants.MaxUploadSizeBytes)
	}
	return n * factor, nil
}
