// Package orderset keeps a sorted set of distinct BigInt values.
package orderset

import (
	"github.com/google/btree"

	"bigcalc/bignum"
)

const degree = 16

// Set is an ordered set of BigInt. It is not safe for concurrent mutation.
type Set struct {
	tree *btree.BTreeG[bignum.BigInt]
}

// New returns an empty Set.
func New() *Set {
	return &Set{tree: btree.NewG(degree, bignum.Less)}
}

// Insert adds x and reports whether it was not already present.
func (s *Set) Insert(x bignum.BigInt) bool {
	_, replaced := s.tree.ReplaceOrInsert(x)
	return !replaced
}

// Delete removes x and reports whether it was present.
func (s *Set) Delete(x bignum.BigInt) bool {
	_, ok := s.tree.Delete(x)
	return ok
}

// Has reports whether x is in the set.
func (s *Set) Has(x bignum.BigInt) bool { return s.tree.Has(x) }

// Len returns the number of elements.
func (s *Set) Len() int { return s.tree.Len() }

// Min returns the smallest element, or false if the set is empty.
func (s *Set) Min() (bignum.BigInt, bool) { return s.tree.Min() }

// Max returns the largest element, or false if the set is empty.
func (s *Set) Max() (bignum.BigInt, bool) { return s.tree.Max() }

// Ascend calls fn for each element in increasing order until fn returns false.
func (s *Set) Ascend(fn func(bignum.BigInt) bool) { s.tree.Ascend(fn) }

// Descend calls fn for each element in decreasing order until fn returns false.
func (s *Set) Descend(fn func(bignum.BigInt) bool) { s.tree.Descend(fn) }

// Range calls fn for each element in [lo, hi) in increasing order.
func (s *Set) Range(lo, hi bignum.BigInt, fn func(bignum.BigInt) bool) {
	s.tree.AscendRange(lo, hi, fn)
}

// Values returns the elements in increasing order.
func (s *Set) Values() []bignum.BigInt {
	out := make([]bignum.BigInt, 0, s.tree.Len())
	s.tree.Ascend(func(x bignum.BigInt) bool {
		out = append(out, x)
		return true
	})
	return out
}
