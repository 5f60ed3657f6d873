package deptree

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Navigation methods are pure reads over the snapshot current at call time.
// Each call recomputes from the live index, so results produced after a
// merge reflect the merged tree; slices returned to the caller are fresh and
// never alias internal state.

// Children returns the direct dependents of token i in document order.
func (d *Document) Children(i int) ([]Token, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return nil, err
	}
	return s.collect(s.index.children[i]), nil
}

// Lefts returns the dependents of token i that precede it.
func (d *Document) Lefts(i int) ([]Token, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return nil, err
	}
	return s.collect(s.index.lefts(i)), nil
}

// Rights returns the dependents of token i that follow it.
func (d *Document) Rights(i int) ([]Token, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return nil, err
	}
	return s.collect(s.index.rights(i)), nil
}

// NLefts returns the number of left dependents of token i.
func (d *Document) NLefts(i int) (int, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return 0, err
	}
	return s.index.nLefts[i], nil
}

// NRights returns the number of right dependents of token i.
func (d *Document) NRights(i int) (int, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return 0, err
	}
	return len(s.index.children[i]) - s.index.nLefts[i], nil
}

// Ancestors returns the head chain of token i from its immediate head up to
// and including the root. The walk is bounded by the document length; going
// past it means the head relation cycles, which yields a CorruptTreeError.
func (d *Document) Ancestors(i int) ([]Token, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return nil, err
	}
	var out []Token
	j := i
	for !s.tokens[j].IsRoot() {
		if len(out) >= len(s.tokens) {
			return nil, &CorruptTreeError{Index: i, Reason: "ancestor walk exceeded document length"}
		}
		j = s.tokens[j].Head
		out = append(out, s.tokens[j])
	}
	return out, nil
}

// IsAncestor reports whether token a transitively dominates token b.
// A token does not dominate itself.
func (d *Document) IsAncestor(a, b int) (bool, error) {
	s := d.view()
	if err := s.check(a); err != nil {
		return false, err
	}
	if err := s.check(b); err != nil {
		return false, err
	}
	steps := 0
	j := b
	for !s.tokens[j].IsRoot() {
		if steps++; steps > len(s.tokens) {
			return false, &CorruptTreeError{Index: b, Reason: "ancestor walk exceeded document length"}
		}
		j = s.tokens[j].Head
		if j == a {
			return true, nil
		}
	}
	return false, nil
}

// Subtree returns token i and everything it transitively dominates, in
// document order. For a non-projective tree the result need not be
// contiguous; this is the exact membership.
func (d *Document) Subtree(i int) ([]Token, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return nil, err
	}
	bm := s.subtreeSet(i)
	out := make([]Token, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, s.tokens[it.Next()])
	}
	return out, nil
}

// LeftEdge returns the smallest token index in the subtree of token i.
func (d *Document) LeftEdge(i int) (int, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return 0, err
	}
	return int(s.subtreeSet(i).Minimum()), nil
}

// RightEdge returns the largest token index in the subtree of token i.
// For a projective tree, Subtree(i) is exactly [LeftEdge(i), RightEdge(i)];
// for a non-projective tree callers must use Subtree for membership.
func (d *Document) RightEdge(i int) (int, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return 0, err
	}
	return int(s.subtreeSet(i).Maximum()), nil
}

// SubtreeSpan returns the subtree bound of token i as a Span.
func (d *Document) SubtreeSpan(i int) (Span, error) {
	s := d.view()
	if err := s.check(i); err != nil {
		return Span{}, err
	}
	bm := s.subtreeSet(i)
	return Span{Start: int(bm.Minimum()), End: int(bm.Maximum()) + 1, Root: i}, nil
}

// IsProjective reports whether every subtree occupies a contiguous index
// range, i.e. the tree has no crossing arcs.
func (d *Document) IsProjective() bool {
	s := d.view()
	for i := range s.tokens {
		bm := s.subtreeSet(i)
		width := uint64(bm.Maximum()-bm.Minimum()) + 1
		if width != bm.GetCardinality() {
			return false
		}
	}
	return true
}

// subtreeSet collects the subtree of token i as a bitmap with an explicit
// stack, so arbitrarily deep trees cannot exhaust the goroutine stack.
func (s *snapshot) subtreeSet(i int) *roaring.Bitmap {
	bm := roaring.New()
	stack := []int{i}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if bm.Contains(uint32(j)) {
			continue
		}
		bm.Add(uint32(j))
		stack = append(stack, s.index.children[j]...)
	}
	return bm
}

// collect maps token indices to fresh Token values.
func (s *snapshot) collect(idxs []int) []Token {
	out := make([]Token, len(idxs))
	for k, j := range idxs {
		out[k] = s.tokens[j]
	}
	return out
}
