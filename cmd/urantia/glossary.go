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
)

func newGlossaryCommand() *cli.Command {
	return &cli.Command{
		Name:      "glossary",
		Usage:     "look up a term in the Korean or English glossary",
		ArgsUsage: "TERM",
		Action: func(c *cli.Context) error {
			term := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(term) == "" {
				return fmt.Errorf("%w: missing glossary term", ErrFlagParse)
			}

			g, err := getEnv(c).openGlossary()
			if err != nil {
				return err
			}

			entries := g.Search(term)
			if len(entries) == 0 {
				_, err = fmt.Fprintln(c.App.Writer, "No glossary entry found.")
				return err
			}

			tbl := newTable(c.App.Writer, "Term-ko", "Term-en", "Description")
			for _, e := range entries {
				tbl.AddRow(e.Korean, e.English, e.Description)
			}
			tbl.Print()
			return nil
		},
	}
}
