// Package deptree implements a dependency-annotated document model: an
// ordered token arena with per-token head/label assignments, a derived
// child index, read-only tree navigation, and a destructive span merge.
//
// Heads are produced upstream (a statistical parser) and consumed here;
// this package never assigns heads itself.
package deptree

// Token is a single word in a document. Text and offsets are fixed at
// construction; Head and Dep come from the upstream parse. Tokens are
// addressed by Index into the owning document, not by pointer, so a merge
// can repoint relations with plain index rewrites.
type Token struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Start int    `json:"start"` // byte offset into the document text
	End   int    `json:"end"`   // exclusive
	Tag   string `json:"tag"`   // part-of-speech tag
	Dep   string `json:"dep"`   // dependency label
	Head  int    `json:"head"`  // index of the governing token
}

// IsRoot reports whether the token is the document root (its own head).
func (t Token) IsRoot() bool { return t.Head == t.Index }

// Span is a half-open token index range [Start, End) with the index of the
// token whose subtree bounds it. Indices are valid only until the owning
// document is mutated.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Root  int `json:"root"`
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether token index i falls inside the span.
func (s Span) Contains(i int) bool { return i >= s.Start && i < s.End }

// Overlaps reports whether two spans share at least one token.
func (s Span) Overlaps(o Span) bool { return s.Start < o.End && o.Start < s.End }
