package deptree

import "fmt"

// CorruptTreeError reports a violated tree invariant: no root, more than one
// root, or a head cycle. A well-formed upstream parse never produces one; it
// indicates corruption and must propagate, not be absorbed.
type CorruptTreeError struct {
	Index  int
	Reason string
}

func (e *CorruptTreeError) Error() string {
	return fmt.Sprintf("corrupt dependency tree at token %d: %s", e.Index, e.Reason)
}

// InvalidSpanError reports a merge range that is not exactly one token's
// subtree bound. Recoverable: recompute bounds via LeftEdge/RightEdge and
// retry.
type InvalidSpanError struct {
	Start  int
	End    int
	Reason string
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("invalid span [%d,%d): %s", e.Start, e.End, e.Reason)
}

// OutOfRangeError reports a token index outside the current document bounds.
// Especially relevant after a merge has shrunk the document.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("token index %d out of range [0,%d)", e.Index, e.Len)
}
