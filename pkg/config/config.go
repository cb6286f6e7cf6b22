package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yumyai/panres/logger"
)

const DefaultConfigFile = "panres.yaml"

type Config struct {
	DataDir           string  `yaml:"data_dir" validate:"required"`
	DBPath            string  `yaml:"db"`
	Addr              string  `yaml:"addr" validate:"required"`
	StaticDir         string  `yaml:"static_dir"`
	ServerURL         string  `yaml:"server_url" validate:"omitempty,url"`
	LogLevel          string  `yaml:"log_level" validate:"oneof=debug info warn error"`
	AutocompleteLimit int     `yaml:"autocomplete_limit" validate:"min=1,max=100"`
	AutocompleteRPS   float64 `yaml:"autocomplete_rps" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		DataDir:           "./data",
		Addr:              ":8080",
		StaticDir:         "./static",
		ServerURL:         "http://localhost:8080",
		LogLevel:          "info",
		AutocompleteLimit: 10,
		AutocompleteRPS:   20,
	}
}

// Load builds the configuration: defaults, then the YAML file, then .env
// and the environment, then validation. An empty path means PANRES_CONFIG
// or panres.yaml; only an explicitly named file has to exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env found, using local environment")
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("PANRES_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "db", "panres.db")
	}

	if err := ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("PANRES_DATA", &c.DataDir)
	setString("PANRES_DB", &c.DBPath)
	setString("PANRES_ADDR", &c.Addr)
	setString("PANRES_STATIC", &c.StaticDir)
	setString("PANRES_SERVER", &c.ServerURL)
	setString("PANRES_LOG_LEVEL", &c.LogLevel)
	c.LogLevel = strings.ToLower(c.LogLevel)

	if v := os.Getenv("PANRES_AUTOCOMPLETE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PANRES_AUTOCOMPLETE_LIMIT: %w", err)
		}
		c.AutocompleteLimit = n
	}
	if v := os.Getenv("PANRES_AUTOCOMPLETE_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PANRES_AUTOCOMPLETE_RPS: %w", err)
		}
		c.AutocompleteRPS = f
	}
	return nil
}

var validate = validator.New()

// ValidateStruct validates a struct based on its validation tags.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
