package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config resolves where the app keeps its state: JSON blobs under
// StatePath, catalog course documents under CatalogPath, and the
// rebuildable SQLite projections at DBPath.
type Config struct {
	RootPath    string `mapstructure:"root_path"`
	StatePath   string `mapstructure:"state_path"`
	CatalogPath string `mapstructure:"catalog_path"`
	DBPath      string `mapstructure:"db_path"`
}

// New builds a Config rooted at rootPath. An optional eduvantage.yaml in
// the root and EDUVANTAGE_* environment variables override the defaults.
func New(rootPath string) (Config, error) {
	if rootPath == "" {
		return Config{}, fmt.Errorf("root path is required")
	}

	v := viper.New()
	v.SetDefault("root_path", rootPath)
	v.SetDefault("state_path", filepath.Join(rootPath, ".eduvantage", "state"))
	v.SetDefault("catalog_path", filepath.Join(rootPath, "catalog"))
	v.SetDefault("db_path", filepath.Join(rootPath, ".eduvantage", "eduvantage.db"))

	v.SetConfigName("eduvantage")
	v.SetConfigType("yaml")
	v.AddConfigPath(rootPath)
	v.SetEnvPrefix("EDUVANTAGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
