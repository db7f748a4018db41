package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetDefaultConfigPath returns the OS-appropriate default config file path.
// Accepts userConfigDir for dependency injection (testability).
// Ensures the app-specific config directory exists.
func GetDefaultConfigPath(userConfigDir func() (string, error)) (string, error) {
	// Get OS-appropriate config directory
	// - Windows: %AppData%
	// - macOS: $HOME/Library/Application Support
	// - Linux: $XDG_CONFIG_HOME or $HOME/.config
	configDir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appConfigDir := filepath.Join(configDir, "netscope")

	if err := os.MkdirAll(appConfigDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appConfigDir, "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
// If configPath is empty, it uses the OS-appropriate default path.
// If the config file doesn't exist, it returns a default configuration.
// Accepts userConfigDir for dependency injection (testability).
func Load(configPath string, userConfigDir func() (string, error)) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = GetDefaultConfigPath(userConfigDir)
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults, not an error.
		if os.IsNotExist(err) {
			return NewDefaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures Viper default values matching NewDefaultConfig.
func setDefaults(v *viper.Viper) {
	def := NewDefaultConfig()
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("doh.endpoint", def.DoH.Endpoint)
	v.SetDefault("doh.record_types", def.DoH.RecordTypes)
	v.SetDefault("geo.database_path", "")
	v.SetDefault("upstream.proxy", "")
	v.SetDefault("upstream.user_agent", "")
	v.SetDefault("upstream.timeout", def.Upstream.Timeout)
	v.SetDefault("upstream.rps", def.Upstream.RPS)
	v.SetDefault("upstream.burst", def.Upstream.Burst)
}
