package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Absolentia/aif-core/internal/domain"
)

// Environment overrides, applied after aif.yaml.
const (
	EnvWorkers    = "AIF_WORKERS"
	EnvSamplesDir = "AIF_SAMPLES_DIR"
	EnvSchemasDir = "AIF_SCHEMAS_DIR"
	EnvInferRoot  = "AIF_INFER_ROOT"
)

// LoadConfig loads aif.yaml from the workspace root and applies defaults.
// A .env file next to aif.yaml is loaded first; it never overrides variables that are
// already set in the process environment.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadenv",
				Kind: domain.KindInvalidConfig,
				Path: envPath,
				Err:  err,
			}
		}
	}

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	applyYAML(&cfg, y)

	if err := applyEnv(&cfg); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	if cfg.Infer.Workers < 1 {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("field infer.workers: must be >= 1: %w", domain.ErrInvalidConfig),
		}
	}

	return cfg, nil
}

func applyYAML(cfg *domain.Config, y yamlConfig) {
	a := y.AIF
	if a.Paths.SamplesDir != "" {
		cfg.Paths.SamplesDir = a.Paths.SamplesDir
	}
	if a.Paths.SchemasDir != "" {
		cfg.Paths.SchemasDir = a.Paths.SchemasDir
	}
	if a.Paths.SetsDir != "" {
		cfg.Paths.SetsDir = a.Paths.SetsDir
	}
	if a.Infer.Workers != nil {
		cfg.Infer.Workers = *a.Infer.Workers
	}
	if a.Infer.Root != "" {
		cfg.Infer.Root = a.Infer.Root
	}
	if a.Store.Index != nil {
		cfg.Store.Index = *a.Store.Index
	}
	if a.Policy.File != "" {
		cfg.Policy.File = a.Policy.File
	}
	if a.Policy.GoMod != "" {
		cfg.Policy.GoMod = a.Policy.GoMod
	}
}

func applyEnv(cfg *domain.Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, err)
		}
		cfg.Infer.Workers = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvSamplesDir)); v != "" {
		cfg.Paths.SamplesDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSchemasDir)); v != "" {
		cfg.Paths.SchemasDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvInferRoot)); v != "" {
		cfg.Infer.Root = v
	}
	return nil
}

type yamlConfig struct {
	AIF struct {
		Paths struct {
			SamplesDir string `yaml:"samples_dir"`
			SchemasDir string `yaml:"schemas_dir"`
			SetsDir    string `yaml:"sets_dir"`
		} `yaml:"paths"`

		Infer struct {
			Workers *int   `yaml:"workers"`
			Root    string `yaml:"root"`
		} `yaml:"infer"`

		Store struct {
			Index *bool `yaml:"index"`
		} `yaml:"store"`

		Policy struct {
			File  string `yaml:"file"`
			GoMod string `yaml:"gomod"`
		} `yaml:"policy"`
	} `yaml:"aif"`
}
