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

// Package folding implements text folding transformers used to make text
// searchable.
package folding

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Folder returns a new [transform.Transformer] that folds text. Transformers
// are stateful so a Folder is called once per string.
type Folder func() transform.Transformer

// Nop performs no folding.
func Nop() transform.Transformer {
	return transform.Nop
}

// NFC normalizes text to Unicode normalization form C. Hangul decomposed into
// conjoining jamo is recomposed into syllables, which is the only folding
// applied to Korean text.
func NFC() transform.Transformer {
	return norm.NFC
}

// Case normalizes text to NFC and applies Unicode case folding.
func Case() transform.Transformer {
	return transform.Chain(norm.NFC, cases.Fold())
}

// Term normalizes text to NFC, applies Unicode case folding and folds
// whitespace. It is used for short terms rather than running text.
func Term() transform.Transformer {
	return transform.Chain(&WhitespaceFolder{}, norm.NFC, cases.Fold())
}

// Fold folds s using the folder f. A nil folder returns s unchanged.
func (f Folder) Fold(s string) (string, error) {
	if f == nil {
		return s, nil
	}
	folded, _, err := transform.String(f(), s)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", s, err)
	}
	return folded, nil
}
