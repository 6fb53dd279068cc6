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
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ianlewis/go-urantia/corpus"
	"github.com/ianlewis/go-urantia/internal/folding"
)

// Language is a language of the book.
type Language string

const (
	// Korean is the primary language.
	Korean Language = "ko"

	// English is the secondary language.
	English Language = "en"
)

// KoreanOptions are the index options for Korean source files. Korean search
// is case-sensitive.
var KoreanOptions = &corpus.Options{
	Encodings: corpus.DefaultEncodings,
	Folder:    folding.NFC,
}

// EnglishOptions are the index options for English source files. English
// search is case-insensitive.
var EnglishOptions = &corpus.Options{
	Encodings: corpus.DefaultEncodings,
	Folder:    folding.Case,
}

// Source is a language's source file.
type Source struct {
	// Path is the path to the source file.
	Path string

	// Options are the index options. If nil, KoreanOptions or EnglishOptions
	// are used depending on the language.
	Options *corpus.Options
}

// LibraryOptions are options for a Library.
type LibraryOptions struct {
	// Logger receives load diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Library lazily loads the Korean and English indexes. Each index is built at
// most once. Concurrent callers that ask for an index that is being built wait
// for the build to finish and share its result. A failed build is not cached
// and is retried by the next caller.
type Library struct {
	sources map[Language]Source
	logger  *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	indexes map[Language]*corpus.Index

	// open builds an index from a source. It is replaced in tests.
	open func(Source) (*corpus.Index, error)
}

// NewLibrary returns a new Library for the given source files.
func NewLibrary(korean, english Source, options *LibraryOptions) *Library {
	if korean.Options == nil {
		korean.Options = KoreanOptions
	}
	if english.Options == nil {
		english.Options = EnglishOptions
	}

	logger := slog.Default()
	if options != nil && options.Logger != nil {
		logger = options.Logger
	}

	return &Library{
		sources: map[Language]Source{
			Korean:  korean,
			English: english,
		},
		logger:  logger.With("component", "library"),
		indexes: map[Language]*corpus.Index{},
		open: func(src Source) (*corpus.Index, error) {
			//nolint:wrapcheck // corpus errors include the path.
			return corpus.Open(src.Path, src.Options)
		},
	}
}

// Index returns the index for the given language, loading it on first use.
// The returned error wraps corpus.ErrSourceUnavailable if the source file
// could not be read.
func (l *Library) Index(lang Language) (*corpus.Index, error) {
	if idx := l.cached(lang); idx != nil {
		return idx, nil
	}

	src, ok := l.sources[lang]
	if !ok {
		return nil, fmt.Errorf("unknown language: %q", lang)
	}

	v, err, _ := l.group.Do(string(lang), func() (interface{}, error) {
		// Another caller may have finished loading since the check above.
		if idx := l.cached(lang); idx != nil {
			return idx, nil
		}

		l.logger.Debug("loading index", "language", lang, "path", src.Path)
		idx, err := l.open(src)
		if err != nil {
			l.logger.Error("loading index failed", "language", lang, "path", src.Path, "error", err)
			return nil, err
		}
		l.logger.Debug("loaded index",
			"language", lang,
			"path", src.Path,
			"passages", idx.Len(),
			"encoding", idx.Encoding(),
		)
		if idx.Degraded() {
			l.logger.Warn("source was not valid in any candidate encoding; some characters were replaced",
				"language", lang,
				"path", src.Path,
			)
		}
		if idx.Len() == 0 {
			l.logger.Warn("source contains no passages", "language", lang, "path", src.Path)
		}

		l.mu.Lock()
		l.indexes[lang] = idx
		l.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s index: %w", lang, err)
	}

	//nolint:forcetypeassert // the function above only returns *corpus.Index.
	return v.(*corpus.Index), nil
}

func (l *Library) cached(lang Language) *corpus.Index {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexes[lang]
}

// Indexes returns both indexes, loading them if necessary.
func (l *Library) Indexes() (ko, en *corpus.Index, err error) {
	ko, err = l.Index(Korean)
	if err != nil {
		return nil, nil, err
	}
	en, err = l.Index(English)
	if err != nil {
		return nil, nil, err
	}
	return ko, en, nil
}

// Lookup resolves a locator query. See the Lookup function.
func (l *Library) Lookup(query string) ([]Result, error) {
	ko, en, err := l.Indexes()
	if err != nil {
		return nil, err
	}
	return Lookup(query, ko, en)
}

// Resolve resolves a locator query. An error is returned only if an index
// could not be loaded. See the Resolve function.
func (l *Library) Resolve(query string) ([]Result, error) {
	ko, en, err := l.Indexes()
	if err != nil {
		return nil, err
	}
	return Resolve(query, ko, en), nil
}

// Search searches both languages for term. An error is returned only if an
// index could not be loaded. See the Search function.
func (l *Library) Search(term string, options *SearchOptions) ([]Result, error) {
	ko, en, err := l.Indexes()
	if err != nil {
		return nil, err
	}
	return Search(term, ko, en, options), nil
}
