package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the application-level options shared by every command.
type Settings struct {
	DataDir   string `mapstructure:"data"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	FPS       int    `mapstructure:"fps"`
}

// NewViper returns a viper instance with defaults, PHYSLAB_* environment
// overrides and an optional physlab.yaml in configDir.
func NewViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetDefault("data", "./data")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("fps", 60)

	v.SetEnvPrefix("physlab")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("physlab")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	return v
}

// LoadSettings binds flags, reads the optional config file and returns
// the merged settings. A missing config file is not an error.
func LoadSettings(v *viper.Viper, flags *pflag.FlagSet) (Settings, error) {
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if s.FPS <= 0 {
		s.FPS = 60
	}
	return s, nil
}
