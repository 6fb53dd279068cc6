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

package index

import (
	"slices"
	"sort"
)

// Index is a generic sorted array index.
type Index[V any] struct {
	// index is sorted. Equal elements keep their input order.
	index []V
}

// NewIndex creates an index from the given slice and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number when
// a > b and zero when a == b or a and b are incomparable in the sense of a
// strict weak ordering.
func NewIndex[V any](index []V, cmp func(V, V) int) *Index[V] {
	sorted := make([]V, len(index))
	copy(sorted, index)
	slices.SortStableFunc(sorted, cmp)

	return &Index[V]{
		index: sorted,
	}
}

// Search performs a binary search over the index and returns the contiguous
// run of elements for which target returns zero. target(v) must return a
// negative number when the searched range sorts before v, zero when v is in the
// range and a positive number when the range sorts after v.
func (idx *Index[V]) Search(target func(V) int) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return target(idx.index[i])
	})

	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && target(idx.index[j]) == 0; j++ {
	}
	return idx.index[i:j:j]
}

// All returns every element of the index in sorted order.
func (idx *Index[V]) All() []V {
	return idx.index[:len(idx.index):len(idx.index)]
}

// Len returns the number of elements in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}
