// Package config loads this module's optional config file via viper,
// layering file values under explicit CLI flags rather than exposing a
// package-level global: the evaluation driver is a one-shot CLI run, not
// a long-lived service with config hot-reload, so there is no Global/Set
// pair to mutate mid-run.
package config

import (
	"errors"
	"io/fs"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the ambient settings a config file may supply. CLI flags
// always take precedence; a field's zero value here means "use the CLI
// default instead".
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	ReportPath  string `mapstructure:"report_path"`
}

// Load reads path (or, if empty, the default search path
// $HOME/.pceval/pceval.yaml then ./pceval.yaml) into a Config. A missing
// config file is not an error: Load returns a zero Config so the caller
// falls back entirely to CLI defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pceval")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home + "/.pceval")
		}
		v.AddConfigPath(".")
	}

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
