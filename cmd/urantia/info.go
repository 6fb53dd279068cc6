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
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-urantia"
	"github.com/ianlewis/go-urantia/corpus"
)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print information about the source files",
		Action: func(c *cli.Context) error {
			env := getEnv(c)

			tbl := newTable(c.App.Writer, "Language", "Path", "Encoding", "Degraded", "Papers", "Passages")
			for _, lang := range []struct {
				lang urantia.Language
				path string
			}{
				{urantia.Korean, env.cfg.Korean},
				{urantia.English, env.cfg.English},
			} {
				idx, err := env.lib.Index(lang.lang)
				if err != nil {
					return err
				}
				tbl.AddRow(lang.lang, lang.path, idx.Encoding(), idx.Degraded(), paperCount(idx), idx.Len())
			}
			tbl.Print()
			return nil
		},
	}
}

// paperCount returns the number of distinct papers in idx.
func paperCount(idx *corpus.Index) int {
	n := 0
	last := -1
	for _, p := range idx.Passages() {
		if paper := p.Locator().Paper; paper != last {
			n++
			last = paper
		}
	}
	return n
}
