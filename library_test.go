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
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-urantia/corpus"
	"github.com/ianlewis/go-urantia/internal/testutil"
	"github.com/ianlewis/go-urantia/locator"
)

func TestLibrary_Resolve(t *testing.T) {
	t.Parallel()

	ko := testutil.MakeTempCorpus(t, []string{"196:2.3 안녕하세요"}, nil)
	en := testutil.MakeTempCorpus(t, []string{"196:2.3 Hello there"}, nil)

	lib := NewLibrary(Source{Path: ko}, Source{Path: en}, nil)

	got, err := lib.Resolve("196:2.3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	expected := []Result{
		{Locator: locator.New(196, 2, 3), Korean: "안녕하세요", English: "Hello there"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Resolve (-want, +got):\n%s", diff)
	}

	got, err = lib.Resolve("999")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]Result(nil), got); diff != "" {
		t.Fatalf("Resolve (-want, +got):\n%s", diff)
	}

	_, err = lib.Lookup("999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup: want %v, got %v", ErrNotFound, err)
	}

	results, err := lib.Search("HELLO", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if diff := cmp.Diff(expected, results); diff != "" {
		t.Fatalf("Search (-want, +got):\n%s", diff)
	}
}

func TestLibrary_Index_singleFlight(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(Source{Path: "ko.txt"}, Source{Path: "en.txt"}, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	lib.open = func(src Source) (*corpus.Index, error) {
		calls.Add(1)
		<-release
		return corpus.Build([]byte("1:1.1 "+src.Path+"\n"), src.Options), nil
	}

	const callers = 16
	indexes := make([]*corpus.Index, callers)
	errs := make([]error, callers)
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		i := i
		go func() {
			defer done.Done()
			started.Done()
			indexes[i], errs[i] = lib.Index(Korean)
		}()
	}
	started.Wait()
	close(release)
	done.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("Index: %v", errs[i])
		}
		if indexes[i] != indexes[0] {
			t.Fatalf("Index: caller %d got a different index", i)
		}
	}

	// Later calls use the cache.
	idx, err := lib.Index(Korean)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if idx != indexes[0] {
		t.Fatalf("Index: cached index differs")
	}
	if diff := cmp.Diff(int32(1), calls.Load()); diff != "" {
		t.Fatalf("open calls (-want, +got):\n%s", diff)
	}

	// The other language is loaded separately.
	en, err := lib.Index(English)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if en == idx {
		t.Fatalf("Index: English and Korean share an index")
	}
	if diff := cmp.Diff(int32(2), calls.Load()); diff != "" {
		t.Fatalf("open calls (-want, +got):\n%s", diff)
	}
}

func TestLibrary_Index_errorNotCached(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(Source{Path: "ko.txt"}, Source{Path: "en.txt"}, nil)

	var calls atomic.Int32
	errOpen := errors.New("open failed")
	lib.open = func(src Source) (*corpus.Index, error) {
		if calls.Add(1) == 1 {
			return nil, errOpen
		}
		return corpus.Build([]byte("1:1.1 text\n"), src.Options), nil
	}

	if _, err := lib.Index(Korean); !errors.Is(err, errOpen) {
		t.Fatalf("Index: want %v, got %v", errOpen, err)
	}

	idx, err := lib.Index(Korean)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if diff := cmp.Diff(1, idx.Len()); diff != "" {
		t.Fatalf("Len (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(int32(2), calls.Load()); diff != "" {
		t.Fatalf("open calls (-want, +got):\n%s", diff)
	}
}

func TestLibrary_Index_unavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var buf bytes.Buffer
	lib := NewLibrary(
		Source{Path: filepath.Join(dir, "ko.txt")},
		Source{Path: filepath.Join(dir, "en.txt")},
		&LibraryOptions{Logger: slog.New(slog.NewTextHandler(&buf, nil))},
	)

	_, err := lib.Index(Korean)
	if !errors.Is(err, corpus.ErrSourceUnavailable) {
		t.Fatalf("Index: want %v, got %v", corpus.ErrSourceUnavailable, err)
	}
	if _, err := lib.Resolve("1"); !errors.Is(err, corpus.ErrSourceUnavailable) {
		t.Fatalf("Resolve: want %v, got %v", corpus.ErrSourceUnavailable, err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("component=library")) {
		t.Fatalf("log output missing component: %q", buf.String())
	}
}

func TestLibrary_Index_unknownLanguage(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(Source{}, Source{}, nil)
	if _, err := lib.Index(Language("fr")); err == nil {
		t.Fatalf("Index: expected error")
	}
}

func TestLibrary_Index_degraded(t *testing.T) {
	t.Parallel()

	path := testutil.WriteTempFile(t, "ko.txt", []byte("1:1.1 caf\xff\n"))
	var buf bytes.Buffer
	lib := NewLibrary(
		Source{Path: path},
		Source{Path: path},
		&LibraryOptions{Logger: slog.New(slog.NewTextHandler(&buf, nil))},
	)

	idx, err := lib.Index(Korean)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !idx.Degraded() {
		t.Fatalf("Degraded: want true")
	}
	if !bytes.Contains(buf.Bytes(), []byte("level=WARN")) {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}
