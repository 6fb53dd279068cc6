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

// Package corpus implements reading a language's source text into an index of
// passages.
//
// A source file is plain text with one passage per line. Each passage line
// starts with a "P:S.N" locator followed by whitespace and the passage text:
//
//	196:2.3 Jesus lived a life which is a revelation of God to man.
//
// Lines without a locator (titles, blank lines, etc.) are skipped. The
// encoding of a source file is not known in advance so a list of candidate
// encodings is tried in order.
package corpus
