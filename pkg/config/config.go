// Package config provides functionality for loading and saving configuration
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/uberswe/DomainHunter/pkg/domain"
	"github.com/uberswe/DomainHunter/pkg/generator"
)

// DefaultConfigFileName is the default name for the configuration file
const DefaultConfigFileName = "config.json"

const (
	AuthoritativeRevved = "revved"
	AuthoritativeLoopia = "loopia"
)

var (
	ErrNoTLDs           = errors.New("no TLDs configured")
	ErrNoStrategies     = errors.New("no strategies configured")
	ErrBadAuthoritative = errors.New("unknown authoritative source")
)

// Default returns the configuration used when no file is present
func Default() *domain.Config {
	return &domain.Config{
		TLDs:            []string{".com", ".net", ".org", ".dev", ".io"},
		MaxPricePerYear: 15,
		Keywords:        []string{},
		PersonalNames:   []string{},
		Strategies:      []string{generator.KeyShort, generator.KeyCombo},
		RequestDelayMs:  1500,
		SaveEvery:       50,
		ResultsFile:     "results.json",
		Authoritative:   AuthoritativeRevved,
	}
}

// Load loads the configuration from the config file.
// If the file doesn't exist, it returns a default configuration.
// Environment variables (and a .env file) override values from the file.
func Load(configFileName string) (*domain.Config, error) {
	cfg := Default()

	// .env is optional
	_ = godotenv.Load()

	if _, err := os.Stat(configFileName); os.IsNotExist(err) {
		log.Warn().Str("file", configFileName).Msg("Configuration file not found, using defaults and environment variables")
	} else {
		data, err := os.ReadFile(configFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// decoded over the defaults so keys absent from the file keep
		// their default while explicit zero values are honored
		if isYAML(configFileName) {
			err = yaml.Unmarshal(data, cfg)
		} else {
			err = json.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.TLDs = normalizeTLDs(cfg.TLDs)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks a loaded configuration for values the hunt cannot run with
func Validate(cfg *domain.Config) error {
	if len(cfg.TLDs) == 0 {
		return ErrNoTLDs
	}
	if len(cfg.Strategies) == 0 {
		return ErrNoStrategies
	}
	for _, s := range cfg.Strategies {
		if !generator.IsKnown(s) {
			return fmt.Errorf("%w: %q", generator.ErrUnknownStrategy, s)
		}
	}
	if cfg.MaxPricePerYear < 0 {
		return fmt.Errorf("maxPricePerYear must not be negative, got %g", cfg.MaxPricePerYear)
	}
	if cfg.RequestDelayMs < 0 {
		return fmt.Errorf("requestDelayMs must not be negative, got %d", cfg.RequestDelayMs)
	}
	if cfg.SaveEvery < 1 {
		return fmt.Errorf("saveEvery must be at least 1, got %d", cfg.SaveEvery)
	}
	switch cfg.Authoritative {
	case AuthoritativeRevved:
	case AuthoritativeLoopia:
		if cfg.Username == "" || cfg.Password == "" {
			return errors.New("loopia authoritative source needs LOOPIA_USERNAME and LOOPIA_PASSWORD")
		}
	default:
		return fmt.Errorf("%w: %q", ErrBadAuthoritative, cfg.Authoritative)
	}
	return nil
}

// Save saves the configuration to the config file
func Save(cfg *domain.Config, configFileName string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configFileName) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFileName, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// normalizeTLDs lower-cases TLDs, adds the leading dot and drops duplicates
func normalizeTLDs(tlds []string) []string {
	out := make([]string, 0, len(tlds))
	for _, t := range tlds {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || t == "." {
			continue
		}
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
