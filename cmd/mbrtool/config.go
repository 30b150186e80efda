package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// GlobalConfig is the global tool configuration
type GlobalConfig struct {
	// LBA is the sector holding the partition table when -lba is not given
	LBA uint64 `yaml:"lba"`
	// Reread asks the kernel to re-read the table after every write to a
	// block device
	Reread bool `yaml:"reread"`
}

func defaultConfig() GlobalConfig {
	return GlobalConfig{LBA: 0, Reread: true}
}

func defaultConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "mbrtool", "config.yml")
}

// readConfig loads the configuration file at path. A missing file gives the
// defaults.
func readConfig(path string) (GlobalConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	cfgBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %q: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(cfgBytes, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return cfg, nil
}
