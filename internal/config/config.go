package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// PageBufConfig is the yaml configuration consumed by the demo binaries.
type PageBufConfig struct {
	Pool struct {
		Size int `mapstructure:"size"`
	} `mapstructure:"pool"`
	Storage struct {
		Dir  string `mapstructure:"dir"`
		File string `mapstructure:"file"`
	} `mapstructure:"storage"`
	Snapshot struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"snapshot"`
}

// PageFilePath joins the configured storage dir and file name.
func (c *PageBufConfig) PageFilePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.File)
}

func Load(path string) (*PageBufConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("pool.size", 64)
	v.SetDefault("storage.dir", ".")
	v.SetDefault("storage.file", "pagebuf.pgf")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg PageBufConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
