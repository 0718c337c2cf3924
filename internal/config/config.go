package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultOutputDir is where documents land when no directory is given.
const DefaultOutputDir = "results/"

type Config struct {
	Output struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"` // "pdf" or "text"
		Verify bool   `yaml:"verify"` // re-read written PDFs
	} `yaml:"output"`
	Page struct {
		Width     float64 `yaml:"width"` // points
		Height    float64 `yaml:"height"`
		Margin    float64 `yaml:"margin"`
		Indent    float64 `yaml:"indent"`
		TextWidth uint    `yaml:"text_width"` // columns, text format only
	} `yaml:"page"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // "text" or "json"
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Output.Dir = DefaultOutputDir
	cfg.Output.Format = "pdf"
	cfg.Page.TextWidth = 80
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
	return &cfg
}

// LoadConfig reads .env, then the YAML file at path (a missing file keeps the
// defaults), then PYDOCPDF_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, err
			}
		}
	}

	// 3. Override with Environment Variables if present
	if dir := os.Getenv("PYDOCPDF_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if format := os.Getenv("PYDOCPDF_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if verify := os.Getenv("PYDOCPDF_VERIFY"); verify != "" {
		if v, err := strconv.ParseBool(verify); err == nil {
			cfg.Output.Verify = v
		}
	}
	if level := os.Getenv("PYDOCPDF_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	return cfg, nil
}
