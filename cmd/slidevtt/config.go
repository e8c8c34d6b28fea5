// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/slidevtt/pkg/types"
)

func init() {
	viper.SetDefault("convert.input", "recording.json")
	viper.SetDefault("convert.output", "")
	viper.SetDefault("convert.out_dir", "")
	viper.SetDefault("convert.header_bytes", types.DefaultHeaderBytes)
	viper.SetDefault("convert.strict", false)

	viper.SetDefault("catalog.dir", "catalog")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.path", "")
	viper.SetDefault("logging.max_size", 10)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", false)
}

// loadConfig decodes the merged viper settings into a types.Config.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Convert.HeaderBytes < 0 {
		return cfg, fmt.Errorf("convert.header_bytes must not be negative, got %d", cfg.Convert.HeaderBytes)
	}
	return cfg, nil
}
