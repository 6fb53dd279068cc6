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

package glossary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ianlewis/go-urantia/corpus"
	"github.com/ianlewis/go-urantia/internal/folding"
)

const (
	columnKorean      = "term-ko"
	columnEnglish     = "term-en"
	columnDescription = "description"
)

var (
	// ErrMissingColumn indicates that a required column is not in the header.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidTable indicates that the table could not be parsed.
	ErrInvalidTable = errors.New("invalid table")
)

// Entry is a glossary entry.
type Entry struct {
	// Korean is the Korean term.
	Korean string

	// English is the English term.
	English string

	// Description describes the term.
	Description string
}

// Options are options for loading a glossary.
type Options struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune
}

// DefaultOptions is the default options for a glossary.
var DefaultOptions = &Options{
	Comma: ',',
}

type entry struct {
	Entry

	foldedKorean  string
	foldedEnglish string
}

// Glossary is a list of glossary entries in file order.
type Glossary struct {
	entries []entry
}

// Open opens the glossary file at path. Files ending in ".xlsx" are read from
// the first sheet of the workbook. Files ending in ".tsv" or ".tab" are read
// as tab separated values and other files as comma separated values.
func Open(path string) (*Glossary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glossary: %w", err)
	}
	defer f.Close()

	var g *Glossary
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		g, err = LoadWorkbook(f)
	case ".tsv", ".tab":
		g, err = Load(f, &Options{Comma: '\t'})
	default:
		g, err = Load(f, DefaultOptions)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load reads a delimited glossary table from r. Rows where both terms are
// empty are skipped.
func Load(r io.Reader, options *Options) (*Glossary, error) {
	if options == nil {
		options = DefaultOptions
	}

	cr := csv.NewReader(r)
	if options.Comma != 0 {
		cr.Comma = options.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return fromRows(records)
}

// LoadWorkbook reads a glossary from the first sheet of an Excel workbook.
// Rows where both terms are empty are skipped.
func LoadWorkbook(r io.Reader) (*Glossary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidTable)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrInvalidTable, sheets[0], err)
	}
	return fromRows(rows)
}

// fromRows builds a glossary from a header row followed by records. Blank
// rows before the header are skipped.
func fromRows(rows [][]string) (*Glossary, error) {
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrInvalidTable)
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		name = strings.ToLower(corpus.Sanitize(name))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	var missing []string
	for _, name := range []string{columnKorean, columnEnglish, columnDescription} {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	g := &Glossary{}
	for _, record := range rows[1:] {
		e := Entry{
			Korean:      field(record, columns[columnKorean]),
			English:     field(record, columns[columnEnglish]),
			Description: field(record, columns[columnDescription]),
		}
		if e.Korean == "" && e.English == "" {
			continue
		}
		g.entries = append(g.entries, entry{
			Entry:         e,
			foldedKorean:  fold(e.Korean),
			foldedEnglish: fold(e.English),
		})
	}

	return g, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return corpus.Sanitize(record[i])
}

func fold(s string) string {
	folded, err := folding.Folder(folding.Term).Fold(s)
	if err != nil {
		return s
	}
	return folded
}

// Search returns the entries whose Korean or English term contains term.
// Matching ignores case and folds whitespace. Entries are returned in file
// order. A blank term matches nothing.
func (g *Glossary) Search(term string) []Entry {
	if g == nil {
		return nil
	}
	term = fold(term)
	if term == "" {
		return nil
	}

	var found []Entry
	for _, e := range g.entries {
		if strings.Contains(e.foldedKorean, term) || strings.Contains(e.foldedEnglish, term) {
			found = append(found, e.Entry)
		}
	}
	return found
}

// Entries returns all entries in file order.
func (g *Glossary) Entries() []Entry {
	if g == nil {
		return nil
	}
	entries := make([]Entry, 0, len(g.entries))
	for _, e := range g.entries {
		entries = append(entries, e.Entry)
	}
	return entries
}

// Len returns the number of entries.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}
