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
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-urantia/corpus"
	"github.com/ianlewis/go-urantia/internal/testutil"
)

type testFiles struct {
	dir      string
	korean   string
	english  string
	glossary string
}

func makeTestFiles(t *testing.T) testFiles {
	t.Helper()

	dir := t.TempDir()
	return testFiles{
		dir: dir,
		korean: testutil.MakeTempCorpus(t, []string{
			"196:2.3 안녕하세요",
			"196:2.4 두번째 문단",
		}, nil),
		english: testutil.MakeTempCorpus(t, []string{
			"196:2.3 Hello there",
		}, nil),
		glossary: testutil.WriteTempFile(t, "glossary.csv", []byte(
			"term-ko,term-en,description\n낙원,Paradise,The center of all things.\n",
		)),
	}
}

func runApp(t *testing.T, files testFiles, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newUrantiaApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	fullArgs := []string{"urantia", "--data-dir", files.dir}
	if files.korean != "" {
		fullArgs = append(fullArgs, "--korean", files.korean)
	}
	if files.english != "" {
		fullArgs = append(fullArgs, "--english", files.english)
	}
	if files.glossary != "" {
		fullArgs = append(fullArgs, "--glossary", files.glossary)
	}
	err := app.Run(append(fullArgs, args...))
	return stdout.String(), stderr.String(), err
}

func TestShow(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "paragraph",
			query:    "196:2.3",
			expected: "196:2.3\n  [ko] 안녕하세요\n  [en] Hello there\n",
		},
		{
			name:  "section",
			query: "196:2",
			expected: "196:2.3\n  [ko] 안녕하세요\n  [en] Hello there\n" +
				"\n196:2.4\n  [ko] 두번째 문단\n  [en] \n",
		},
		{
			name:     "not found",
			query:    "999",
			expected: noMatchMessage + "\n",
		},
		{
			name:     "invalid",
			query:    "hello",
			expected: noMatchMessage + "\n",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runApp(t, files, "show", test.query)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if diff := cmp.Diff(test.expected, stdout); diff != "" {
				t.Errorf("output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestShow_args(t *testing.T) {
	t.Parallel()

	_, _, err := runApp(t, makeTestFiles(t), "show")
	if !errors.Is(err, ErrFlagParse) {
		t.Fatalf("Run: want %v, got %v", ErrFlagParse, err)
	}
	if diff := cmp.Diff(ExitCodeFlagParseError, exitCode(err)); diff != "" {
		t.Errorf("exitCode (-want, +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)

	stdout, _, err := runApp(t, files, "search", "HELLO")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"REFERENCE", "196:2.3", "안녕하세요", "Hello there"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = runApp(t, files, "search", "Paradise")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff("No passages found.\n", stdout); diff != "" {
		t.Errorf("output (-want, +got):\n%s", diff)
	}
}

func TestSearch_limit(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)

	stdout, _, err := runApp(t, files, "--limit", "1", "search", "문단")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stdout, "Showing the first 1 results.") {
		t.Errorf("output missing limit note:\n%s", stdout)
	}
}

func TestGlossary(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)

	stdout, _, err := runApp(t, files, "glossary", "paradise")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"TERM-KO", "낙원", "Paradise", "The center of all things."} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestGlossary_workbook(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)
	files.glossary = testutil.MakeTempWorkbook(t, [][]string{
		{"term-ko", "term-en", "description"},
		{"조절자", "Thought Adjuster", "Spirit fragment."},
	})

	stdout, _, err := runApp(t, files, "glossary", "조절자")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"Thought Adjuster", "Spirit fragment."} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestGlossary_missing(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)
	files.glossary = filepath.Join(files.dir, "missing.csv")

	stdout, stderr, err := runApp(t, files, "glossary", "paradise")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff("No glossary entry found.\n", stdout); diff != "" {
		t.Errorf("output (-want, +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "glossary not found") {
		t.Errorf("expected warning, got %q", stderr)
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, makeTestFiles(t), "info")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"LANGUAGE", "ko", "en", "utf-8", "false"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestSourceUnavailable(t *testing.T) {
	t.Parallel()

	files := makeTestFiles(t)
	files.korean = filepath.Join(files.dir, "missing.txt")

	_, _, err := runApp(t, files, "show", "196:2.3")
	if !errors.Is(err, corpus.ErrSourceUnavailable) {
		t.Fatalf("Run: want %v, got %v", corpus.ErrSourceUnavailable, err)
	}
	if diff := cmp.Diff(ExitCodeSourceUnavailable, exitCode(err)); diff != "" {
		t.Errorf("exitCode (-want, +got):\n%s", diff)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, testFiles{dir: t.TempDir()}, "--version")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stdout, "Copyright (c) 2025 Ian Lewis") {
		t.Errorf("unexpected version output:\n%s", stdout)
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		s        string
		w        int
		expected string
	}{
		{
			name:     "short",
			s:        "Hello",
			w:        10,
			expected: "Hello",
		},
		{
			name:     "ascii",
			s:        "Hello there",
			w:        8,
			expected: "Hello t…",
		},
		{
			name:     "hangul",
			s:        "안녕하세요",
			w:        6,
			expected: "안녕…",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, snippet(test.s, test.w)); diff != "" {
				t.Errorf("snippet (-want, +got):\n%s", diff)
			}
		})
	}

	if diff := cmp.Diff(10, displayWidth("안녕하세요")); diff != "" {
		t.Errorf("displayWidth (-want, +got):\n%s", diff)
	}
}
