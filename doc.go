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

// Package urantia implements a bilingual (Korean and English) reader for the
// Urantia Book.
//
// The book is read from two plain text source files, one per language, in
// which each paragraph is a line prefixed with its "P:S.N" locator. The
// corpus package parses a source file into an index. This package resolves
// locator queries and search terms against a pair of indexes and aligns the
// Korean and English text of each paragraph.
//
// The Korean text is primary: it determines which paragraphs exist. English
// text is paired by locator and is the empty string where it is missing.
//
// A [Library] loads each language's index once on first use and shares it
// between callers.
package urantia
