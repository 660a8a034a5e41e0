// Package configloader builds duolog configurations from environment
// variables, YAML documents, and configuration files using Viper.
package configloader

import (
	"github.com/hyp3rd/duolog"
)

type rawConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	TimeFormat  string `mapstructure:"time_format" yaml:"time_format"`
	CallerWidth *int   `mapstructure:"caller_width" yaml:"caller_width"`
	Console     struct {
		Level    string `mapstructure:"level" yaml:"level"`
		Color    *bool  `mapstructure:"color" yaml:"color"`
		ForceTTY *bool  `mapstructure:"force_tty" yaml:"force_tty"`
	} `mapstructure:"console" yaml:"console"`
	File struct {
		Path    string `mapstructure:"path" yaml:"path"`
		Level   string `mapstructure:"level" yaml:"level"`
		MaxSize *int64 `mapstructure:"max_size" yaml:"max_size"`
	} `mapstructure:"file" yaml:"file"`
}

func applyRaw(raw rawConfig) (*duolog.Config, error) {
	name := raw.Name
	if name == "" {
		name = "duolog"
	}

	cfg := duolog.DefaultConfig(name)

	if raw.TimeFormat != "" {
		err := duolog.ValidateTimeFormat(raw.TimeFormat)
		if err != nil {
			return nil, err
		}

		cfg.TimeFormat = raw.TimeFormat
	}

	if raw.CallerWidth != nil {
		cfg.CallerWidth = *raw.CallerWidth
	}

	if raw.Console.Level != "" {
		level, err := duolog.ParseLevel(raw.Console.Level)
		if err != nil {
			return nil, err
		}

		cfg.ConsoleThreshold = level
	}

	if raw.Console.Color != nil {
		cfg.Color.Enable = *raw.Console.Color
	}

	if raw.Console.ForceTTY != nil {
		cfg.Color.ForceTTY = *raw.Console.ForceTTY
	}

	if raw.File.Path != "" {
		cfg.FilePath = raw.File.Path
	}

	if raw.File.Level != "" {
		level, err := duolog.ParseLevel(raw.File.Level)
		if err != nil {
			return nil, err
		}

		cfg.FileThreshold = level
	}

	if raw.File.MaxSize != nil {
		cfg.MaxFileSizeBytes = *raw.File.MaxSize
	}

	return &cfg, nil
}

func allKeys() []string {
	return []string{
		"name",
		"time_format",
		"caller_width",
		"console.level",
		"console.color",
		"console.force_tty",
		"file.path",
		"file.level",
		"file.max_size",
	}
}
