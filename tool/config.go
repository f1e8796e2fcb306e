package tool

import (
	"fmt"
	"os"
	"time"

	"github.com/wrenko/ragsend-go/types"
	"gopkg.in/yaml.v3"
)

var (
	// ConfigPath is the default location of the config file.
	ConfigPath = "config.yaml"

	// CurrentConfig holds the loaded application configuration.
	CurrentConfig types.AppConfig
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		BackendURL:            "http://127.0.0.1:8000",
		RequestTimeoutSeconds: 30,
		Port:                  53319,
		AllowedTypes:          []string{"pdf", "docx", "txt", "md", "rtf"},
		MaxFileBytes:          10485760, // backend default MAX_FILE_SIZE, 10 MB
		MaxToasts:             5,
		SuccessToastMs:        5000,
		ErrorToastMs:          8000,
		NotifyWS:              true,
		IntakeLinkTTLSeconds:  600,
		DomainCacheTTLSeconds: 300,
	}
}

// LoadConfig reads the config file at path, creating it with defaults when missing.
// An empty path falls back to ConfigPath.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := writeConfig(path, cfg); err != nil {
			return types.AppConfig{}, err
		}
		DefaultLogger.Infof("Created new config file at %s", path)
		CurrentConfig = cfg
		return cfg, nil
	}
	if err != nil {
		return types.AppConfig{}, fmt.Errorf("failed to stat config file: %v", err)
	}
	if info.IsDir() {
		return types.AppConfig{}, fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.AppConfig{}, fmt.Errorf("failed to read config file: %v", err)
	}
	var cfg types.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("failed to parse config file: %v", err)
	}
	fillConfigDefaults(&cfg)
	CurrentConfig = cfg
	return cfg, nil
}

// fillConfigDefaults backfills zero values so a sparse config file still works.
// NotifyWS is not backfilled, false there is a valid setting.
func fillConfigDefaults(cfg *types.AppConfig) {
	def := defaultConfig()
	if cfg.BackendURL == "" {
		cfg.BackendURL = def.BackendURL
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = def.RequestTimeoutSeconds
	}
	if cfg.Port <= 0 {
		cfg.Port = def.Port
	}
	if len(cfg.AllowedTypes) == 0 {
		cfg.AllowedTypes = def.AllowedTypes
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = def.MaxFileBytes
	}
	if cfg.MaxToasts <= 0 {
		cfg.MaxToasts = def.MaxToasts
	}
	if cfg.SuccessToastMs <= 0 {
		cfg.SuccessToastMs = def.SuccessToastMs
	}
	if cfg.ErrorToastMs <= 0 {
		cfg.ErrorToastMs = def.ErrorToastMs
	}
	if cfg.IntakeLinkTTLSeconds <= 0 {
		cfg.IntakeLinkTTLSeconds = def.IntakeLinkTTLSeconds
	}
	if cfg.DomainCacheTTLSeconds <= 0 {
		cfg.DomainCacheTTLSeconds = def.DomainCacheTTLSeconds
	}
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

// GetCurrentConfig returns the loaded configuration.
func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

// RequestTimeout returns the configured short-call timeout as a duration.
func RequestTimeout() time.Duration {
	return time.Duration(CurrentConfig.RequestTimeoutSeconds) * time.Second
}
