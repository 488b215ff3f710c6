package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // hcl file or directory

	LogFormat   string
	LogLevel    string
	MetricsAddr string // empty disables the health and metrics server

	// Checkpoint files are relative to the storage directory of the model.
	RestoreFile string
	StoreFile   string
	Dump        bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
