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
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/k3a/html2text"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = '\uFEFF'

// markupRegex matches a known HTML tag or a character entity. Other text in
// angle brackets is left alone.
var markupRegex = regexp.MustCompile(`(?i)</?(a|abbr|b|big|blockquote|br|center|cite|code|dd|del|div|dl|dt|em|font|h[1-6]|hr|i|img|ins|li|ol|p|pre|q|s|small|span|strike|strong|sub|sup|table|tbody|td|th|thead|tr|tt|u|ul)(\s[^>]*)?/?>|&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z]+);`)

// stripped are the runes removed from passage text.
var stripped = runes.Predicate(func(r rune) bool {
	return r == byteOrderMark || r == utf8.RuneError
})

// Sanitize returns s as plain text. Byte order marks and U+FFFD replacement
// characters are removed, the text is normalized to NFC, HTML markup is
// converted to text and leading and trailing whitespace is trimmed.
func Sanitize(s string) string {
	if markupRegex.MatchString(s) {
		s = html2text.HTML2Text(s)
	}

	out, _, err := transform.String(transform.Chain(runes.Remove(stripped), norm.NFC), s)
	if err != nil {
		// The input is valid UTF-8 so this is not expected. Fall back to
		// removing the runes without normalizing.
		out = strings.Map(func(r rune) rune {
			if stripped.Contains(r) {
				return -1
			}
			return r
		}, s)
	}
	return strings.TrimSpace(out)
}
