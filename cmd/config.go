package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ravikgupta/affilink/backend/store"
)

// Store backend kinds
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config stores app configuration
type Config struct {
	Server struct {
		Address     string `yaml:"address"`
		Timeout     int    `yaml:"timeout"`
		OtlpAddress string `yaml:"otlp_address"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"server"`
	Auth struct {
		Secret    string `yaml:"secret"`
		Algorithm string `yaml:"algorithm"`
	} `yaml:"auth"`
	Store             string `yaml:"store"`
	store.MongoConfig `yaml:"mongo"`
}

// AppConfig reads config from file and creates config struct
func AppConfig(cfgPath string, logger *zap.Logger) (*Config, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("can't open config file: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			logger.Error("can't close config file: %w", zap.Error(err))
		}
	}()

	cfg := new(Config)
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't decode config file: %w", err)
	}

	if cfg.Store == "" {
		cfg.Store = StoreMongo
	}
	if cfg.Store != StoreMemory && cfg.Store != StoreMongo {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}

	return cfg, nil
}
