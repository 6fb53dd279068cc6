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

package corpus

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ianlewis/go-urantia/internal/index"
	"github.com/ianlewis/go-urantia/locator"
)

// ErrSourceUnavailable indicates that a source file could not be opened or
// read. It is distinct from a source that was read but contained no passages,
// which results in an empty Index.
var ErrSourceUnavailable = errors.New("source unavailable")

// lineRegex matches a passage line: a "P:S.N" locator, whitespace and the
// passage text.
var lineRegex = regexp.MustCompile(`^([0-9]+):([0-9]+)\.([0-9]+)\s+(.*)$`)

// lineBreakRegex matches LF, CRLF and CR line endings.
var lineBreakRegex = regexp.MustCompile(`\r\n|\r|\n`)

// Passage is a unit of source text keyed by a paragraph locator.
type Passage struct {
	locator locator.Locator
	text    string

	// folded is text folded by the index's Folder.
	folded string
}

// Locator returns the passage's paragraph locator.
func (p *Passage) Locator() locator.Locator {
	return p.locator
}

// Text returns the sanitized passage text.
func (p *Passage) Text() string {
	return p.text
}

// String returns the passage in source file form.
func (p *Passage) String() string {
	return p.locator.String() + " " + p.text
}

// Options are options for building an Index.
type Options struct {
	// Encodings are the candidate encodings of the source file, tried in
	// order. If none decode the source without errors the source is decoded
	// as UTF-8 with replacement characters.
	Encodings []Encoding

	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding) on passage text and search terms for Find.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{
	Encodings: DefaultEncodings,
	Folder: func() transform.Transformer {
		return norm.NFC
	},
}

// Index is an in-memory, read-only index of the passages of one language.
type Index struct {
	passages map[locator.Locator]*Passage

	// sorted holds the passages ordered by locator.
	sorted *index.Index[*Passage]

	folder func() transform.Transformer

	encoding string
	degraded bool
}

// Build builds an Index from the raw contents of a source file. Each line of
// the form "P:S.N text" becomes a passage. Other lines are skipped. When a
// locator appears more than once the last line wins.
func Build(raw []byte, options *Options) *Index {
	if options == nil {
		options = DefaultOptions
	}
	encodings := options.Encodings
	if encodings == nil {
		encodings = DefaultEncodings
	}

	idx := &Index{
		passages: map[locator.Locator]*Passage{},
		folder:   DefaultOptions.Folder,
	}
	if options.Folder != nil {
		idx.folder = options.Folder
	}

	var text string
	text, idx.encoding, idx.degraded = decode(raw, encodings)
	text = strings.TrimPrefix(text, string(byteOrderMark))

	for _, line := range lineBreakRegex.Split(text, -1) {
		p, ok := parseLine(line)
		if !ok {
			continue
		}
		p.folded = idx.fold(p.text)
		idx.passages[p.locator] = p
	}

	list := make([]*Passage, 0, len(idx.passages))
	for _, p := range idx.passages {
		list = append(list, p)
	}
	idx.sorted = index.NewIndex(list, func(a, b *Passage) int {
		return locator.Compare(a.locator, b.locator)
	})

	return idx
}

// New reads a source file from r and builds an Index from it. An error is
// returned only if r could not be read.
func New(r io.Reader, options *Options) (*Index, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading source: %w", ErrSourceUnavailable, err)
	}
	return Build(b, options), nil
}

// Open opens the source file at path and builds an Index from it. Files with
// a ".gz" extension are decompressed with gzip and files with a ".dz"
// extension are decompressed with dictzip.
func Open(path string, options *Options) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: opening %q: %w", ErrSourceUnavailable, path, err)
		}
		defer z.Close()
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: opening %q: %w", ErrSourceUnavailable, path, err)
		}
		r = z
	}

	idx, err := New(r, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// parseLine parses a "P:S.N text" line.
func parseLine(line string) (*Passage, bool) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			// The number overflows an int.
			return nil, false
		}
		nums[i] = n
	}

	return &Passage{
		locator: locator.New(nums[0], nums[1], nums[2]),
		text:    Sanitize(m[4]),
	}, true
}

func (idx *Index) fold(s string) string {
	folded, _, err := transform.String(idx.folder(), s)
	if err != nil {
		return s
	}
	return folded
}

// Get returns the passage at the given paragraph locator.
func (idx *Index) Get(loc locator.Locator) (*Passage, bool) {
	p, ok := idx.passages[loc]
	return p, ok
}

// Range returns the passages under the given paper or section, ordered by
// locator. A paragraph locator returns at most the one passage.
func (idx *Index) Range(prefix locator.Locator) []*Passage {
	return idx.sorted.Search(func(p *Passage) int {
		return prefix.ComparePrefix(p.locator)
	})
}

// Find returns the passages whose text contains term, ordered by locator.
// Both the text and the term are folded by the index's Folder before
// comparison. A blank term matches nothing.
func (idx *Index) Find(term string) []*Passage {
	folded := idx.fold(strings.TrimSpace(term))
	if folded == "" {
		return nil
	}

	var result []*Passage
	for _, p := range idx.sorted.All() {
		if strings.Contains(p.folded, folded) {
			result = append(result, p)
		}
	}
	return result
}

// Passages returns all passages ordered by locator.
func (idx *Index) Passages() []*Passage {
	return idx.sorted.All()
}

// Len returns the number of passages in the index.
func (idx *Index) Len() int {
	return len(idx.passages)
}

// Encoding returns the name of the encoding the source was decoded with.
func (idx *Index) Encoding() string {
	return idx.encoding
}

// Degraded returns true if the source could not be decoded strictly by any
// candidate encoding. Some characters may have been replaced or dropped.
func (idx *Index) Degraded() bool {
	return idx.degraded
}
