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

package testutil

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/text/encoding"
)

// MakeCorpusOptions are options for MakeTempCorpus.
type MakeCorpusOptions struct {
	// Ext is an optional file extension for the corpus file. Defaults to
	// '.txt.dz' if DictZip is true, '.txt.gz' if Gzip is true and '.txt'
	// otherwise.
	Ext string

	// DictZip indicates that the file should be compressed with DictZip.
	DictZip bool

	// Gzip indicates that the file should be compressed with gzip.
	Gzip bool

	// Encoding is the text encoding of the file. Defaults to UTF-8.
	Encoding encoding.Encoding
}

// GetExt returns the file extension to use.
func (o *MakeCorpusOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		if o.DictZip {
			return ".txt.dz"
		}
		if o.Gzip {
			return ".txt.gz"
		}
	}
	return ".txt"
}

// MakeCorpus creates the contents of a corpus file from lines. The lines are
// joined with newlines and encoded with enc. A nil enc leaves the text as
// UTF-8.
func MakeCorpus(t *testing.T, lines []string, enc encoding.Encoding) []byte {
	t.Helper()

	text := strings.Join(lines, "\n") + "\n"
	if enc == nil {
		return []byte(text)
	}

	b, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatalf("encoding corpus: %v", err)
	}
	return b
}

// MakeTempCorpus writes a corpus file to a temporary directory and returns its
// path. The directory is removed when the test completes.
func MakeTempCorpus(t *testing.T, lines []string, opts *MakeCorpusOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeCorpusOptions{}
	}

	path := filepath.Join(t.TempDir(), "corpus"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b := MakeCorpus(t, lines, opts.Encoding)

	switch {
	case opts.DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case opts.Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(b); err != nil {
			t.Fatal(err)
		}
	}

	return path
}

// WriteTempFile writes b to a file with the given name in a temporary
// directory and returns its path.
func WriteTempFile(t *testing.T, name string, b []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
