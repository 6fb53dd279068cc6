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

package urantia

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ianlewis/go-urantia/corpus"
	"github.com/ianlewis/go-urantia/locator"
)

// DefaultSearchLimit is the maximum number of results returned by Search.
const DefaultSearchLimit = 100

var (
	// ErrInvalidQuery indicates that a query is not a locator.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotFound indicates that a well-formed locator has no passages.
	ErrNotFound = errors.New("not found")
)

// Result is a locator with its Korean and English text. Text that is missing
// from a language is the empty string.
type Result struct {
	Locator locator.Locator
	Korean  string
	English string
}

// Lookup resolves a locator query against the Korean (primary) and English
// (secondary) indexes. The Korean index determines which paragraphs exist.
// The results are ordered by locator.
//
// Lookup returns an error wrapping ErrInvalidQuery if the query is not a
// locator and ErrNotFound if the locator has no Korean passages.
func Lookup(query string, ko, en *corpus.Index) ([]Result, error) {
	loc, err := locator.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	var locs []locator.Locator
	if ko != nil {
		switch loc.Level {
		case locator.Paragraph:
			if _, ok := ko.Get(loc); ok {
				locs = append(locs, loc)
			}
		default:
			for _, p := range ko.Range(loc) {
				locs = append(locs, p.Locator())
			}
		}
	}

	if len(locs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
	}
	return pair(locs, ko, en), nil
}

// Resolve is like Lookup but returns an empty result rather than an error for
// invalid queries and missing locators.
func Resolve(query string, ko, en *corpus.Index) []Result {
	results, err := Lookup(query, ko, en)
	if err != nil {
		return nil
	}
	return results
}

// SearchOptions are options for Search.
type SearchOptions struct {
	// Limit is the maximum number of results. Values less than one use
	// DefaultSearchLimit.
	Limit int
}

// DefaultSearchOptions is the default options for Search.
var DefaultSearchOptions = &SearchOptions{
	Limit: DefaultSearchLimit,
}

// Search returns the locators whose Korean or English text contains term,
// paired with the text of both languages. Each index folds the term and its
// text with its own Folder so indexes opened with KoreanOptions match
// case-sensitively and indexes opened with EnglishOptions match
// case-insensitively. A locator matched in both languages appears once.
//
// The results are ordered by locator and truncated to the limit, keeping the
// lowest locators.
func Search(term string, ko, en *corpus.Index, options *SearchOptions) []Result {
	if options == nil {
		options = DefaultSearchOptions
	}
	limit := options.Limit
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	seen := map[locator.Locator]bool{}
	var locs []locator.Locator
	for _, idx := range []*corpus.Index{ko, en} {
		if idx == nil {
			continue
		}
		for _, p := range idx.Find(term) {
			if !seen[p.Locator()] {
				seen[p.Locator()] = true
				locs = append(locs, p.Locator())
			}
		}
	}

	slices.SortFunc(locs, locator.Compare)
	if len(locs) > limit {
		locs = locs[:limit]
	}
	return pair(locs, ko, en)
}

// pair returns the Korean and English text for each locator.
func pair(locs []locator.Locator, ko, en *corpus.Index) []Result {
	if len(locs) == 0 {
		return nil
	}
	results := make([]Result, 0, len(locs))
	for _, loc := range locs {
		results = append(results, Result{
			Locator: loc,
			Korean:  text(ko, loc),
			English: text(en, loc),
		})
	}
	return results
}

func text(idx *corpus.Index, loc locator.Locator) string {
	if idx == nil {
		return ""
	}
	if p, ok := idx.Get(loc); ok {
		return p.Text()
	}
	return ""
}
