package config

import (
	"fmt"
	"os"

	"clrindex/internal/nsfilter"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		// DumpDir is the directory holding module metadata dumps.
		DumpDir string `yaml:"dump_dir"`
	} `yaml:"project"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Filter nsfilter.Config `yaml:"filter"`
}

// LoadConfig reads the YAML config, after loading .env if present.
// Environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Database.Path = "clrindex.db"

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment are enough.
	default:
		return nil, err
	}

	if dir := os.Getenv("CLRINDEX_DUMP_DIR"); dir != "" {
		cfg.Project.DumpDir = dir
	}
	if db := os.Getenv("CLRINDEX_DB"); db != "" {
		cfg.Database.Path = db
	}

	return &cfg, nil
}
