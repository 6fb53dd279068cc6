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

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-urantia/corpus"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "urantia.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg := Default()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		encodings, err := cfg.CorpusEncodings()
		if err != nil {
			t.Fatalf("CorpusEncodings: %v", err)
		}
		if diff := cmp.Diff(corpus.DefaultEncodings, encodings, cmpopts.IgnoreFields(corpus.Encoding{}, "Encoding")); diff != "" {
			t.Errorf("CorpusEncodings (-want, +got):\n%s", diff)
		}
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, strings.Join([]string{
			"korean: data/ko.txt",
			"english: /srv/urantia/en.txt",
			"encodings: [euc-kr, utf-8]",
			"searchLimit: 20",
			"logging:",
			"  level: debug",
		}, "\n"))

		cfg, err := loadWith(path, func(string) (string, bool) { return "", false })
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		expected := &Config{
			Korean:      filepath.Join(filepath.Dir(path), "data", "ko.txt"),
			English:     "/srv/urantia/en.txt",
			Glossary:    DefaultGlossary,
			Encodings:   []string{"euc-kr", "utf-8"},
			SearchLimit: 20,
			Logging: LoggingConfig{
				Level:  "debug",
				Format: "text",
			},
		}
		if diff := cmp.Diff(expected, cfg); diff != "" {
			t.Errorf("Load (-want, +got):\n%s", diff)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "korean: ko.txt\nsearchLimit: 20\n")
		env := map[string]string{
			EnvKorean:      "/env/ko.txt",
			EnvSearchLimit: "5",
			EnvLogFormat:   "json",
		}
		cfg, err := loadWith(path, func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff("/env/ko.txt", cfg.Korean); diff != "" {
			t.Errorf("Korean (-want, +got):\n%s", diff)
		}
		if diff := cmp.Diff(5, cfg.SearchLimit); diff != "" {
			t.Errorf("SearchLimit (-want, +got):\n%s", diff)
		}
		if diff := cmp.Diff("json", cfg.Logging.Format); diff != "" {
			t.Errorf("Logging.Format (-want, +got):\n%s", diff)
		}
	})
}

func TestLoad_errors(t *testing.T) {
	t.Parallel()

	noEnv := func(string) (string, bool) { return "", false }

	tests := []struct {
		name    string
		content string
		env     map[string]string
		err     error
	}{
		{
			name:    "unknown encoding",
			content: "encodings: [klingon]",
			err:     ErrInvalid,
		},
		{
			name:    "bad limit",
			content: "searchLimit: 0",
			err:     ErrInvalid,
		},
		{
			name:    "bad level",
			content: "logging:\n  level: loud",
			err:     ErrInvalid,
		},
		{
			name:    "bad format",
			content: "logging:\n  format: xml",
			err:     ErrInvalid,
		},
		{
			name:    "bad env limit",
			content: "",
			env:     map[string]string{EnvSearchLimit: "many"},
			err:     ErrInvalid,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			lookup := noEnv
			if test.env != nil {
				lookup = func(k string) (string, bool) {
					v, ok := test.env[k]
					return v, ok
				}
			}
			_, err := loadWith(writeConfig(t, test.content), lookup)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Load (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load: want %v, got %v", os.ErrNotExist, err)
	}
}

func TestLoad_syntaxError(t *testing.T) {
	t.Parallel()

	if _, err := Load(writeConfig(t, "korean: [unterminated")); err == nil {
		t.Fatalf("Load: expected error")
	}
}

func TestCorpusEncodings(t *testing.T) {
	t.Parallel()

	cfg := &Config{Encodings: []string{"cp949", "windows-1252"}}
	encodings, err := cfg.CorpusEncodings()
	if err != nil {
		t.Fatalf("CorpusEncodings: %v", err)
	}
	var names []string
	for _, e := range encodings {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"euc-kr", "windows-1252"}, names); diff != "" {
		t.Errorf("names (-want, +got):\n%s", diff)
	}
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"component":"test"`) {
		t.Errorf("unexpected output: %q", out)
	}

	level, err := ParseLevel("DEBUG")
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if diff := cmp.Diff(slog.LevelDebug, level); diff != "" {
		t.Errorf("ParseLevel (-want, +got):\n%s", diff)
	}
}
