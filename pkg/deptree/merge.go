package deptree

// Merge collapses tokens [start, end) into a single token and returns it.
//
// The range must be exactly the subtree bound of one token r: the unique
// token inside the range whose head lies outside it (or which is the
// document root), with start == LeftEdge(r) and end == RightEdge(r)+1.
// Anything else yields an InvalidSpanError and leaves the document
// untouched. Indices out of bounds yield an OutOfRangeError.
//
// The merged token takes r's label and tag, its text from the source span,
// and r's head re-expressed in the post-merge index space. Every external
// head reference into the range is repointed at the merged token; indices at
// or above end shift down by end-start-1. The swap is atomic: concurrent
// readers observe either the old snapshot or the new one, never an
// intermediate state.
func (d *Document) Merge(start, end int) (Token, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.snap
	if err := s.checkRange(start, end); err != nil {
		return Token{}, err
	}

	r := -1
	for i := start; i < end; i++ {
		t := s.tokens[i]
		if t.IsRoot() || t.Head < start || t.Head >= end {
			if r >= 0 {
				return Token{}, &InvalidSpanError{Start: start, End: end,
					Reason: "more than one token heads outside the span"}
			}
			r = i
		}
	}
	if r < 0 {
		// Unreachable for an acyclic tree, but the invariant is checked at
		// construction, not trusted here.
		return Token{}, &InvalidSpanError{Start: start, End: end, Reason: "no span root found"}
	}

	bm := s.subtreeSet(r)
	if int(bm.Minimum()) != start || int(bm.Maximum()) != end-1 {
		return Token{}, &InvalidSpanError{Start: start, End: end,
			Reason: "span does not match a subtree bound"}
	}
	// A gap in r's subtree would mean a second external-headed token in the
	// range, already rejected above; this only fires if the acyclicity
	// invariant has been corrupted since construction.
	if int(bm.GetCardinality()) != end-start {
		return Token{}, &InvalidSpanError{Start: start, End: end,
			Reason: "subtree is not contiguous over the span"}
	}

	shift := end - start - 1
	remap := func(i int) int {
		switch {
		case i < start:
			return i
		case i < end:
			return start
		default:
			return i - shift
		}
	}

	rootTok := s.tokens[r]
	merged := Token{
		Index: start,
		Text:  s.spanText(start, end),
		Start: s.tokens[start].Start,
		End:   s.tokens[end-1].End,
		Tag:   rootTok.Tag,
		Dep:   rootTok.Dep,
		Head:  start,
	}
	if !rootTok.IsRoot() {
		merged.Head = remap(rootTok.Head)
	}

	tokens := make([]Token, 0, len(s.tokens)-shift)
	for i := 0; i < start; i++ {
		t := s.tokens[i]
		t.Head = remap(t.Head)
		tokens = append(tokens, t)
	}
	tokens = append(tokens, merged)
	for i := end; i < len(s.tokens); i++ {
		t := s.tokens[i]
		t.Index = i - shift
		t.Head = remap(t.Head)
		tokens = append(tokens, t)
	}

	d.snap = &snapshot{text: s.text, tokens: tokens, index: buildArcIndex(tokens)}
	return merged, nil
}
