package main

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/zephyrtronium/calc"
	"gopkg.in/yaml.v3"
)

// config holds the program settings. Each field can come from the config file
// or from the flag of the same meaning.
type config struct {
	Mode           string `yaml:"mode" toml:"mode"`
	Precision      uint   `yaml:"precision" toml:"precision"`
	FactorialLimit uint64 `yaml:"factorial_limit" toml:"factorial_limit"`
	Format         string `yaml:"format" toml:"format"`
	Prompt         string `yaml:"prompt" toml:"prompt"`
	LogLevel       string `yaml:"log_level" toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Precision:      64,
		FactorialLimit: calc.DefaultFactorialLimit,
		Format:         "%g",
		Prompt:         "calc> ",
		LogLevel:       "warn",
	}
}

// loadConfig reads a YAML file, or a TOML file if the name ends in .toml,
// into cfg. Settings absent from the file keep their values in cfg.
func loadConfig(path string, cfg *config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return loadTOML(path, cfg)
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file sets nothing.
			return nil
		}
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func loadTOML(path string, cfg *config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("config: unknown setting %q in %s", keys[0].String(), path)
	}
	return nil
}

// override copies the setting for the named flag from flags.
func (cfg *config) override(name string, flags *config) {
	switch name {
	case "mode":
		cfg.Mode = flags.Mode
	case "p":
		cfg.Precision = flags.Precision
	case "factorial-limit":
		cfg.FactorialLimit = flags.FactorialLimit
	case "fmt":
		cfg.Format = flags.Format
	case "prompt":
		cfg.Prompt = flags.Prompt
	case "log-level":
		cfg.LogLevel = flags.LogLevel
	}
}

func (cfg *config) validate() error {
	if cfg.Mode != "" {
		if _, ok := calc.ParseMode(cfg.Mode); !ok {
			return fmt.Errorf("config: unknown mode %q", cfg.Mode)
		}
	}
	if cfg.Precision == 0 || cfg.Precision > big.MaxPrec {
		return fmt.Errorf("config: precision %d out of range [1, %d]", cfg.Precision, uint(big.MaxPrec))
	}
	if cfg.Format == "" {
		return errors.New("config: empty format")
	}
	return nil
}

// mode gets the configured evaluation mode. The result is false if no mode
// is configured.
func (cfg *config) mode() (calc.Mode, bool) {
	if cfg.Mode == "" {
		return 0, false
	}
	return calc.ParseMode(cfg.Mode)
}

// options gets the context options for the configuration.
func (cfg *config) options() []calc.ContextOption {
	return []calc.ContextOption{calc.Prec(cfg.Precision), calc.FactorialLimit(cfg.FactorialLimit)}
}
