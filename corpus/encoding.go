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
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding indicates that an encoding name is not recognized.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding is a candidate text encoding for a source file.
type Encoding struct {
	// Name is the name reported by [Index.Encoding].
	Name string

	// Encoding decodes the source file.
	Encoding encoding.Encoding
}

var (
	// UTF8 is UTF-8. A leading byte order mark is allowed.
	UTF8 = Encoding{Name: "utf-8", Encoding: unicode.UTF8}

	// UTF16 is UTF-16 in either byte order. A byte order mark is required.
	UTF16 = Encoding{Name: "utf-16", Encoding: unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)}

	// EUCKR is EUC-KR including the Unified Hangul Code (CP949) extension.
	EUCKR = Encoding{Name: "euc-kr", Encoding: korean.EUCKR}
)

// DefaultEncodings are the encodings tried, in order, when decoding a source
// file.
var DefaultEncodings = []Encoding{UTF8, UTF16, EUCKR}

// EncodingByName returns the encoding for the given name. The names "utf-8",
// "utf-16", "euc-kr" and "cp949" are recognized directly. Any other WHATWG
// encoding label (e.g. "windows-1252", "shift_jis") is looked up in the HTML
// encoding index.
func EncodingByName(name string) (Encoding, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16", "utf16":
		return UTF16, nil
	case "euc-kr", "euckr", "cp949", "uhc":
		return EUCKR, nil
	default:
		e, err := htmlindex.Get(n)
		if err != nil {
			return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
		canonical, err := htmlindex.Name(e)
		if err != nil {
			canonical = n
		}
		return Encoding{Name: canonical, Encoding: e}, nil
	}
}

// decodeStrict decodes b and reports whether b was valid in the encoding. A
// decoder that substitutes U+FFFD for invalid input is treated as a failure.
func (e Encoding) decodeStrict(b []byte) (string, bool) {
	if e.Encoding == unicode.UTF8 {
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	}

	out, _, err := transform.Bytes(e.Encoding.NewDecoder(), b)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// decode tries each encoding in order and returns the text from the first
// that decodes b strictly. If none do, b is decoded as UTF-8 with invalid
// bytes replaced by U+FFFD and degraded is true.
func decode(b []byte, encodings []Encoding) (text, name string, degraded bool) {
	for _, e := range encodings {
		if s, ok := e.decodeStrict(b); ok {
			return s, e.Name, false
		}
	}

	// The UTF-8 decoder never fails. It replaces each invalid byte with
	// U+FFFD.
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		out = []byte(strings.ToValidUTF8(string(b), string(utf8.RuneError)))
	}
	return string(out), UTF8.Name, true
}
