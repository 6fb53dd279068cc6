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
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-urantia"
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "find passages containing a term",
		ArgsUsage: "TERM",
		Action: func(c *cli.Context) error {
			term := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(term) == "" {
				return fmt.Errorf("%w: missing search term", ErrFlagParse)
			}
			env := getEnv(c)

			results, err := env.lib.Search(term, &urantia.SearchOptions{Limit: env.cfg.SearchLimit})
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, err = fmt.Fprintln(c.App.Writer, "No passages found.")
				return err
			}

			tbl := newTable(c.App.Writer, "Reference", "Korean", "English")
			for _, r := range results {
				tbl.AddRow(r.Locator, snippet(r.Korean, snippetWidth), snippet(r.English, snippetWidth))
			}
			tbl.Print()

			if len(results) == env.cfg.SearchLimit {
				_, err = fmt.Fprintf(c.App.Writer, "\nShowing the first %d results.\n", len(results))
				return err
			}
			return nil
		},
	}
}
