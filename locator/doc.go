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

// Package locator implements paper, section and paragraph locators.
//
// A locator names a passage of the book at one of three granularities:
//  1. A paper, written "P" (e.g. "196").
//  2. A section of a paper, written "P:S" (e.g. "196:2").
//  3. A paragraph of a section, written "P:S.N" (e.g. "196:2.3").
//
// Locators are ordered numerically rather than lexically so that "10" sorts
// after "2".
package locator
