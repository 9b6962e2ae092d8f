// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package hash

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashset.  Hashes are permitted to collide, hence equality is
// required as well.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

// Set defines a generic set implementation backed by a map.  This is a true
// hashtable in that collisions are handled gracefully using buckets, rather than
// simply discarding them.  Items are additionally retained in insertion order,
// such that iteration over the set is deterministic.
type Set[T Hasher[T]] struct {
	// items maps hashcodes to *buckets* of items.
	items map[uint64]hashSetBucket[T]
	// order records items in the order they were first inserted.
	order []T
}

// NewSet creates a new HashSet with a given underlying capacity.
func NewSet[T Hasher[T]](size uint) *Set[T] {
	items := make(map[uint64]hashSetBucket[T], size)
	return &Set[T]{items, make([]T, 0, size)}
}

// Size returns the number of unique items stored in this HashSet.
//
//nolint:revive
func (p *Set[T]) Size() uint {
	return uint(len(p.order))
}

// Items returns the items of this set in insertion order.  The returned slice
// must not be modified.
//
//nolint:revive
func (p *Set[T]) Items() []T {
	return p.order
}

// Insert a new item into this set, returning true if it was already contained
// and false otherwise.
//
//nolint:revive
func (p *Set[T]) Insert(item T) bool {
	// Compute item's hashcode
	hash := item.Hash()
	// Lookup existing bucket
	bucket := p.items[hash]
	// Insert new item
	if bucket.insert(item) {
		return true
	}
	// Update map
	p.items[hash] = bucket
	p.order = append(p.order, item)
	// Done
	return false
}

// Contains checks whether the given item is contained within this set, or not.
//
//nolint:revive
func (p *Set[T]) Contains(item T) bool {
	if bucket, ok := p.items[item.Hash()]; ok {
		return bucket.contains(item)
	}

	return false
}

//nolint:revive
func (p *Set[T]) String() string {
	var r strings.Builder
	//
	r.WriteString("{")
	//
	for i, item := range p.order {
		if i != 0 {
			r.WriteString(",")
		}
		//
		r.WriteString(fmt.Sprintf("%v", any(item)))
	}
	//
	r.WriteString("}")
	//
	return r.String()
}

// ============================================================================
// Bucket
// ============================================================================

type hashSetBucket[T Hasher[T]] struct {
	items []T
}

// Insert a new item into this bucket, returning true if it was already present.
//
//nolint:revive
func (b *hashSetBucket[T]) insert(item T) bool {
	if b.contains(item) {
		return true
	}
	//
	b.items = append(b.items, item)
	//
	return false
}

// Check whether this bucket contains a given item, or not.
//
//nolint:revive
func (b *hashSetBucket[T]) contains(item T) bool {
	for _, i := range b.items {
		if item.Equals(i) {
			return true
		}
	}

	return false
}

// ============================================================================
// StringKey
// ============================================================================

var _ Hasher[StringKey] = StringKey{}

// StringKey wraps a string (e.g. a structural formula key) as something which
// can be safely placed into a HashSet.
type StringKey struct {
	value string
}

// NewStringKey constructs a new string key.
func NewStringKey(value string) StringKey {
	return StringKey{value}
}

// Equals compares two StringKeys.
func (p StringKey) Equals(other StringKey) bool {
	return p.value == other.value
}

// Hash generates a 64-bit hashcode from the underlying string.
func (p StringKey) Hash() uint64 {
	hash := fnv.New64a()
	hash.Write([]byte(p.value))
	// Done
	return hash.Sum64()
}

func (p StringKey) String() string {
	return p.value
}
