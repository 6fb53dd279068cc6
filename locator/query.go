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

package locator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalid indicates that a string is not a locator.
var ErrInvalid = errors.New("invalid locator")

// queryGrammar accepts "P", "P:S" and "P:S.N". Numbers are captured as strings
// so that they are always parsed as base 10.
type queryGrammar struct {
	Paper   string       `parser:"@Int"`
	Section *sectionPart `parser:"( ':' @@ )?"`
}

type sectionPart struct {
	Section   string  `parser:"@Int"`
	Paragraph *string `parser:"( '.' @Int )?"`
}

// There is deliberately no whitespace rule: any space inside a query is a
// lexer error.
var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:.]`},
})

var queryParser = participle.MustBuild[queryGrammar](
	participle.Lexer(queryLexer),
)

// Parse parses a locator query. Leading and trailing whitespace is ignored.
// The accepted forms are:
//   - "196" (paper)
//   - "196:2" (section)
//   - "196:2.3" (paragraph)
func Parse(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locator{}, fmt.Errorf("%w: empty string", ErrInvalid)
	}

	parsed, err := queryParser.ParseString("", s)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %q: %w", ErrInvalid, s, err)
	}

	paper, err := strconv.Atoi(parsed.Paper)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: paper %q: %w", ErrInvalid, parsed.Paper, err)
	}
	if parsed.Section == nil {
		return NewPaper(paper), nil
	}

	section, err := strconv.Atoi(parsed.Section.Section)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: section %q: %w", ErrInvalid, parsed.Section.Section, err)
	}
	if parsed.Section.Paragraph == nil {
		return NewSection(paper, section), nil
	}

	paragraph, err := strconv.Atoi(*parsed.Section.Paragraph)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: paragraph %q: %w", ErrInvalid, *parsed.Section.Paragraph, err)
	}
	return New(paper, section, paragraph), nil
}

// Classify returns the locator named by the query, or the zero (Invalid)
// Locator if the query is not a locator.
func Classify(s string) Locator {
	l, err := Parse(s)
	if err != nil {
		return Locator{}
	}
	return l
}
