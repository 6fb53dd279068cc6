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
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-urantia"
)

func newShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the Korean and English text of a reference",
		ArgsUsage: "PAPER[:SECTION[.PARAGRAPH]]",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected one reference, got %d arguments", ErrFlagParse, c.NArg())
			}
			env := getEnv(c)

			results, err := env.lib.Lookup(c.Args().First())
			if errors.Is(err, urantia.ErrInvalidQuery) || errors.Is(err, urantia.ErrNotFound) {
				env.logger.Debug("no match", "query", c.Args().First(), "error", err)
				_, err = fmt.Fprintln(c.App.Writer, noMatchMessage)
				return err
			}
			if err != nil {
				return err
			}

			var b strings.Builder
			for i, r := range results {
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "%s\n", r.Locator)
				fmt.Fprintf(&b, "  [ko] %s\n", r.Korean)
				fmt.Fprintf(&b, "  [en] %s\n", r.English)
			}
			_, err = fmt.Fprint(c.App.Writer, b.String())
			return err
		},
	}
}
