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
	"io"
	"strings"

	"github.com/rodaine/table"
	"golang.org/x/text/width"
)

// snippetWidth is the maximum display width of text in table cells.
const snippetWidth = 48

// displayWidth returns the number of terminal columns needed to display s.
// East Asian wide characters such as Hangul syllables take two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// snippet shortens s to at most w display columns, marking truncated text
// with an ellipsis.
func snippet(s string, w int) string {
	if displayWidth(s) <= w {
		return s
	}

	var b strings.Builder
	n := 0
	for _, r := range s {
		rw := runeWidth(r)
		if n+rw > w-1 {
			break
		}
		b.WriteRune(r)
		n += rw
	}
	return strings.TrimRight(b.String(), " ") + "…"
}

func headerFormatter(format string, vals ...interface{}) string {
	return strings.ToUpper(fmt.Sprintf(format, vals...))
}

// newTable returns a table that writes to the app's writer and measures
// Hangul correctly.
func newTable(w io.Writer, headers ...interface{}) table.Table {
	return table.New(headers...).
		WithWriter(w).
		WithHeaderFormatter(headerFormatter).
		WithWidthFunc(displayWidth)
}
