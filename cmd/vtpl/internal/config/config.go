package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the project config file
	ConfigFileName = ".vtpl.yaml"

	// CurrentVersion is written into new config files
	CurrentVersion = "1.0"
)

// Config represents the vtpl configuration
type Config struct {
	// Format is the tree encoding used by `vtpl parse`
	Format string `yaml:"format,omitempty" validate:"required,oneof=json yaml"`

	// Minify passes rendered markup through the HTML minifier
	Minify bool `yaml:"minify,omitempty"`

	// Debug logs every compiled template and tree to stderr
	Debug bool `yaml:"debug,omitempty"`

	// ID is the default element id for `vtpl extract`
	ID string `yaml:"id,omitempty" validate:"omitempty,printascii"`

	// Version tracks the config file version for future migrations
	Version string `yaml:"version,omitempty" validate:"required"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Format:  "json",
		Version: CurrentVersion,
	}
}

// Path returns the config file location inside dir
func Path(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// LoadConfig loads the configuration from dir.
// If the file doesn't exist, returns a default config
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults for missing fields
	if config.Format == "" {
		config.Format = "json"
	}
	if config.Version == "" {
		config.Version = CurrentVersion
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the configuration into dir
func SaveConfig(dir string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation at once
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &InvalidConfigError{Problems: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "printascii":
		return fmt.Sprintf("%s must be printable ASCII", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// InvalidConfigError lists every problem found in a config file
type InvalidConfigError struct {
	Problems []string
}

func (e *InvalidConfigError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}
