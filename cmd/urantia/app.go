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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-urantia"
	"github.com/ianlewis/go-urantia/corpus"
	"github.com/ianlewis/go-urantia/glossary"
	"github.com/ianlewis/go-urantia/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeSourceUnavailable is the exit code used when a source file
	// could not be read.
	ExitCodeSourceUnavailable
)

// configFileName is the name of the config file looked up in the data
// directories when --config is not given.
const configFileName = "urantia.yaml"

// noMatchMessage is printed when a reference has no text.
const noMatchMessage = "No matching text found. Check your reference (e.g., 111:1.1)."

// ErrUrantia is a parent error for all command errors.
var ErrUrantia = errors.New("urantia")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrUrantia)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but the --help flag is handled by the app's Action.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
		Hidden:             true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, corpus.ErrSourceUnavailable):
		return ExitCodeSourceUnavailable
	default:
		return ExitCodeUnknownError
	}
}

// appEnv is the state shared by commands. It is created by the app's Before
// hook.
type appEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	lib    *urantia.Library
}

const appEnvKey = "env"

func getEnv(c *cli.Context) *appEnv {
	//nolint:forcetypeassert // set by the Before hook.
	return c.App.Metadata[appEnvKey].(*appEnv)
}

// findFile returns the path of the first file named name in dirs. Paths that
// include a directory are returned as is, as is name if no file is found.
func findFile(name string, dirs []string) string {
	if name == "" || filepath.Base(name) != name {
		return name
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return name
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	dirs := append([]string{"."}, c.StringSlice("data-dir")...)

	path := c.String("config")
	if path == "" {
		if p := findFile(configFileName, dirs); p != configFileName {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUrantia, err)
	}

	if c.IsSet("korean") {
		cfg.Korean = c.String("korean")
	}
	if c.IsSet("english") {
		cfg.English = c.String("english")
	}
	if c.IsSet("glossary") {
		cfg.Glossary = c.String("glossary")
	}
	if c.IsSet("limit") {
		cfg.SearchLimit = c.Int("limit")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	cfg.Korean = findFile(cfg.Korean, dirs)
	cfg.English = findFile(cfg.English, dirs)
	cfg.Glossary = findFile(cfg.Glossary, dirs)

	return cfg, nil
}

func setup(c *cli.Context) error {
	if (c.Bool("help") || c.Bool("version")) && c.NArg() == 0 {
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, err := cfg.Logging.NewLogger(c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	encodings, err := cfg.CorpusEncodings()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	lib := urantia.NewLibrary(
		urantia.Source{
			Path: cfg.Korean,
			Options: &corpus.Options{
				Encodings: encodings,
				Folder:    urantia.KoreanOptions.Folder,
			},
		},
		urantia.Source{
			Path: cfg.English,
			Options: &corpus.Options{
				Encodings: encodings,
				Folder:    urantia.EnglishOptions.Folder,
			},
		},
		&urantia.LibraryOptions{Logger: logger},
	)

	c.App.Metadata[appEnvKey] = &appEnv{
		cfg:    cfg,
		logger: logger,
		lib:    lib,
	}
	return nil
}

// openGlossary opens the configured glossary. A missing glossary file is
// treated as an empty glossary.
func (e *appEnv) openGlossary() (*glossary.Glossary, error) {
	g, err := glossary.Open(e.cfg.Glossary)
	if errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("glossary not found", "path", e.cfg.Glossary)
		return &glossary.Glossary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUrantia, err)
	}
	return g, nil
}

func newUrantiaApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Read the Urantia Book in Korean and English.",
		Description: strings.Join([]string{
			"Bilingual Urantia Book reference viewer written in Go.",
			"http://github.com/ianlewis/go-urantia",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"URANTIA_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "look for source files in `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(dataLocations()...),
			},
			&cli.StringFlag{
				Name:  "korean",
				Usage: "read Korean text from `FILE`",
			},
			&cli.StringFlag{
				Name:  "english",
				Usage: "read English text from `FILE`",
			},
			&cli.StringFlag{
				Name:  "glossary",
				Usage: "read the glossary from `FILE`",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "print at most `N` search results",
				Value: config.DefaultSearchLimit,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log in `FORMAT` (text, json)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		Metadata:        map[string]interface{}{},
		Before:          setup,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newShowCommand(),
			newSearchCommand(),
			newGlossaryCommand(),
			newInfoCommand(),
		},
	}
}
