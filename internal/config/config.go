// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the urantia configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-urantia/corpus"
)

const (
	// DefaultKorean is the default Korean source file name.
	DefaultKorean = "urantia_ko.txt"

	// DefaultEnglish is the default English source file name.
	DefaultEnglish = "urantia_en.txt"

	// DefaultGlossary is the default glossary file name.
	DefaultGlossary = "glossary.xlsx"

	// DefaultSearchLimit is the default maximum number of search results.
	DefaultSearchLimit = 100
)

// Environment variables that override the configuration file.
const (
	EnvKorean      = "URANTIA_KOREAN"
	EnvEnglish     = "URANTIA_ENGLISH"
	EnvGlossary    = "URANTIA_GLOSSARY"
	EnvSearchLimit = "URANTIA_SEARCH_LIMIT"
	EnvLogLevel    = "URANTIA_LOG_LEVEL"
	EnvLogFormat   = "URANTIA_LOG_FORMAT"
)

// ErrInvalid indicates an invalid configuration value.
var ErrInvalid = errors.New("invalid configuration")

// Config is the top-level configuration.
type Config struct {
	// Korean is the path to the Korean source file.
	Korean string `yaml:"korean"`

	// English is the path to the English source file.
	English string `yaml:"english"`

	// Glossary is the path to the glossary table.
	Glossary string `yaml:"glossary"`

	// Encodings are the candidate source file encodings, tried in order.
	Encodings []string `yaml:"encodings"`

	// SearchLimit is the maximum number of search results.
	SearchLimit int `yaml:"searchLimit"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the log level and output format.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Korean:      DefaultKorean,
		English:     DefaultEnglish,
		Glossary:    DefaultGlossary,
		Encodings:   []string{"utf-8", "utf-16", "euc-kr"},
		SearchLimit: DefaultSearchLimit,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the YAML config file at path, if path is not empty, and applies
// environment variable overrides. Relative file paths in the config file are
// relative to the directory of the config file.
func Load(path string) (*Config, error) {
	return loadWith(path, os.LookupEnv)
}

func loadWith(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		dir := filepath.Dir(path)
		cfg.Korean = relativeTo(dir, cfg.Korean, DefaultKorean)
		cfg.English = relativeTo(dir, cfg.English, DefaultEnglish)
		cfg.Glossary = relativeTo(dir, cfg.Glossary, DefaultGlossary)
	}

	if err := applyEnvOverrides(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// relativeTo joins a relative path p to dir. Bare default file names are left
// as is so they are looked up in the data directories.
func relativeTo(dir, p, def string) string {
	if p == "" || p == def || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvKorean); ok && v != "" {
		cfg.Korean = v
	}
	if v, ok := lookup(EnvEnglish); ok && v != "" {
		cfg.English = v
	}
	if v, ok := lookup(EnvGlossary); ok && v != "" {
		cfg.Glossary = v
	}
	if v, ok := lookup(EnvSearchLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, EnvSearchLimit, err)
		}
		cfg.SearchLimit = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.SearchLimit < 1 {
		return fmt.Errorf("%w: searchLimit must be positive: %d", ErrInvalid, c.SearchLimit)
	}
	if _, err := c.CorpusEncodings(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format: %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// CorpusEncodings returns the configured encodings. An empty list returns
// corpus.DefaultEncodings.
func (c *Config) CorpusEncodings() ([]corpus.Encoding, error) {
	if len(c.Encodings) == 0 {
		return corpus.DefaultEncodings, nil
	}
	encodings := make([]corpus.Encoding, 0, len(c.Encodings))
	for _, name := range c.Encodings {
		e, err := corpus.EncodingByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		encodings = append(encodings, e)
	}
	return encodings, nil
}

// ParseLevel parses a log level name. The empty string is "info".
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level: %q", ErrInvalid, level)
	}
}

// NewLogger returns a logger that writes to w in the configured format at the
// configured level.
func (l LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(l.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: unknown log format: %q", ErrInvalid, l.Format)
	}
	return slog.New(handler), nil
}
