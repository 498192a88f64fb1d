// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds application wide settings unmarshalled
// from viper (see cli).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Name is the base name of the settings file and the prefix of
// settings environment variables.
const Name = "singlem"

// ExtractConfig is settings for sequence extraction.
type ExtractConfig struct {
	// Backend is the extraction back-end: fxtract, index or scan.
	Backend string `mapstructure:"backend"`

	// Fxtract is the path to the fxtract binary.
	Fxtract string `mapstructure:"fxtract"`

	// LineWidth is the sequence line width of FASTA output.
	// Zero writes each sequence on one line.
	LineWidth int `mapstructure:"line-width"`
}

// LogConfig is logging settings.
type LogConfig struct {
	Quiet bool `mapstructure:"quiet"`
	Debug bool `mapstructure:"debug"`
}

// Config is the root-level settings struct, a mix of settings from
// singlem.yaml, SINGLEM_* environment variables and the command line.
type Config struct {
	Extract ExtractConfig `mapstructure:"extract"`
	Log     LogConfig     `mapstructure:"log"`
}

// SetDefaults registers default settings with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extract.backend", "fxtract")
	v.SetDefault("extract.fxtract", "")
	v.SetDefault("extract.line-width", 0)
	v.SetDefault("log.quiet", false)
	v.SetDefault("log.debug", false)
}

// Load reads the settings file into v and returns the resulting Config.
// If file is empty singlem.yaml is searched for in the working directory
// and $HOME/.config/singlem; it is not an error for it to be absent.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(Name)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}
	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return Config{}, errors.Wrap(err, "failed to read settings")
		}
	}

	var c Config
	err = v.Unmarshal(&c)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to decode settings")
	}
	if c.Extract.LineWidth < 0 {
		return Config{}, errors.Errorf("invalid line width: %d", c.Extract.LineWidth)
	}
	return c, nil
}
