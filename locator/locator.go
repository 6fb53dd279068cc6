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
	"cmp"
	"strconv"
)

// Level is the granularity of a Locator.
type Level int

const (
	// Invalid is the level of the zero Locator. It is returned for queries
	// that match none of the locator forms.
	Invalid Level = iota

	// Paper is a paper-only locator, e.g. "196".
	Paper

	// Section is a paper and section locator, e.g. "196:2".
	Section

	// Paragraph is a fully qualified locator, e.g. "196:2.3".
	Paragraph
)

// String returns the name of the level.
func (l Level) String() string {
	switch l {
	case Paper:
		return "paper"
	case Section:
		return "section"
	case Paragraph:
		return "paragraph"
	default:
		return "invalid"
	}
}

// Locator identifies a paper, a section of a paper, or a paragraph of a
// section. Fields below the locator's Level are always zero so Locators can be
// compared with == and used as map keys.
type Locator struct {
	Paper     int
	Section   int
	Paragraph int
	Level     Level
}

// NewPaper returns a paper locator.
func NewPaper(paper int) Locator {
	return Locator{Paper: paper, Level: Paper}
}

// NewSection returns a section locator.
func NewSection(paper, section int) Locator {
	return Locator{Paper: paper, Section: section, Level: Section}
}

// New returns a paragraph locator.
func New(paper, section, paragraph int) Locator {
	return Locator{Paper: paper, Section: section, Paragraph: paragraph, Level: Paragraph}
}

// IsValid returns true if the locator is not the Invalid locator.
func (l Locator) IsValid() bool {
	return l.Level != Invalid
}

// String returns the canonical form of the locator: "P", "P:S" or "P:S.N".
// The Invalid locator is the empty string.
func (l Locator) String() string {
	switch l.Level {
	case Paper:
		return strconv.Itoa(l.Paper)
	case Section:
		return strconv.Itoa(l.Paper) + ":" + strconv.Itoa(l.Section)
	case Paragraph:
		return strconv.Itoa(l.Paper) + ":" + strconv.Itoa(l.Section) + "." + strconv.Itoa(l.Paragraph)
	default:
		return ""
	}
}

// Compare returns a negative number when a < b, a positive number when a > b
// and zero when a == b. Locators are ordered numerically by paper, section and
// paragraph. A coarser locator sorts before the finer locators it contains.
func Compare(a, b Locator) int {
	if c := cmp.Compare(a.Paper, b.Paper); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Section, b.Section); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Paragraph, b.Paragraph); c != 0 {
		return c
	}
	return cmp.Compare(a.Level, b.Level)
}

// ComparePrefix compares l with other truncated to l's level. It returns zero
// when l contains other. Over a slice sorted by Compare the locators contained
// by l form a single contiguous run.
func (l Locator) ComparePrefix(other Locator) int {
	if l.Level == Invalid {
		return -1
	}
	if c := cmp.Compare(l.Paper, other.Paper); c != 0 || l.Level == Paper {
		return c
	}
	if c := cmp.Compare(l.Section, other.Section); c != 0 || l.Level == Section {
		return c
	}
	return cmp.Compare(l.Paragraph, other.Paragraph)
}

// Contains returns true if other falls under l. A paper contains all of its
// sections and paragraphs, a section contains its paragraphs and a paragraph
// contains only itself.
func (l Locator) Contains(other Locator) bool {
	return l.Level != Invalid && other.Level >= l.Level && l.ComparePrefix(other) == 0
}
