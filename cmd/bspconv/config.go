package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the bspconv configuration file (~/.config/bspconv/config.yaml).
// Booleans are pointers so we can distinguish "not set" from false.
type Config struct {
	Pack          *bool `yaml:"pack"`
	FromContainer *bool `yaml:"from_container"`
	Recursive     *bool `yaml:"recursive"`

	// Report is the default run report path.
	Report string `yaml:"report"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	if p := os.Getenv("BSPCONV_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bspconv", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return Config{}
	}
	return cfg
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyConvertConfig applies config file defaults to convert command
// variables when the corresponding CLI flag was not explicitly set.
func applyConvertConfig(c *cli.Command, cfg Config, pack, fromContainer, recursive *bool, report *string) {
	if cfg.Pack != nil && !c.IsSet("pack") {
		*pack = *cfg.Pack
	}
	if cfg.FromContainer != nil && !c.IsSet("from-container") {
		*fromContainer = *cfg.FromContainer
	}
	if cfg.Recursive != nil && !c.IsSet("recursive") {
		*recursive = *cfg.Recursive
	}
	if cfg.Report != "" && !c.IsSet("report") {
		*report = cfg.Report
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
