package deptree

import (
	"fmt"
	"strings"
	"sync"
)

// Document is an ordered sequence of dependency-annotated tokens plus the
// derived arc index. Navigation works against an immutable snapshot, so any
// number of readers may run concurrently; Merge is the single mutating
// operation and swaps in a fresh snapshot under the write lock. Reader
// handles taken before a merge keep observing the pre-merge state.
type Document struct {
	mu   sync.RWMutex
	snap *snapshot
	lang string
}

// snapshot is one immutable version of the document. Token slices and the
// index are never modified after construction.
type snapshot struct {
	text   string
	tokens []Token
	index  *arcIndex
}

// New builds a document for text from a fully populated upstream parse.
// Token Index fields are assigned positionally; Head/Dep/Tag/offsets must
// already be final. Returns a CorruptTreeError unless exactly one token is
// its own head and every head chain reaches it without cycling.
func New(text string, tokens []Token, lang string) (*Document, error) {
	toks := make([]Token, len(tokens))
	copy(toks, tokens)
	for i := range toks {
		toks[i].Index = i
		if h := toks[i].Head; h < 0 || h >= len(toks) {
			return nil, &CorruptTreeError{Index: i, Reason: fmt.Sprintf("head %d outside document of length %d", h, len(toks))}
		}
		if toks[i].Start < 0 || toks[i].End > len(text) || toks[i].Start > toks[i].End {
			return nil, fmt.Errorf("token %d: offsets [%d,%d) outside text of length %d", i, toks[i].Start, toks[i].End, len(text))
		}
	}
	if err := validateTree(toks); err != nil {
		return nil, err
	}
	return &Document{
		snap: &snapshot{text: text, tokens: toks, index: buildArcIndex(toks)},
		lang: lang,
	}, nil
}

// FromWords builds a document whose text is the words joined by single
// spaces, computing byte offsets along the way. words, tags, deps and heads
// must have equal length. Convenience for callers that receive a parse
// without character alignment (and for tests).
func FromWords(words, tags, deps []string, heads []int, lang string) (*Document, error) {
	if len(tags) != len(words) || len(deps) != len(words) || len(heads) != len(words) {
		return nil, fmt.Errorf("mismatched parse columns: %d words, %d tags, %d deps, %d heads",
			len(words), len(tags), len(deps), len(heads))
	}
	var sb strings.Builder
	tokens := make([]Token, len(words))
	for i, w := range words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		start := sb.Len()
		sb.WriteString(w)
		tokens[i] = Token{
			Text:  w,
			Start: start,
			End:   sb.Len(),
			Tag:   tags[i],
			Dep:   deps[i],
			Head:  heads[i],
		}
	}
	return New(sb.String(), tokens, lang)
}

// validateTree checks the single-root and acyclicity invariants in O(n)
// using three-color marking over head chains.
func validateTree(tokens []Token) error {
	root := -1
	for i, t := range tokens {
		if t.IsRoot() {
			if root >= 0 {
				return &CorruptTreeError{Index: i, Reason: fmt.Sprintf("multiple roots (%d and %d)", root, i)}
			}
			root = i
		}
	}
	if root < 0 && len(tokens) > 0 {
		return &CorruptTreeError{Index: 0, Reason: "no root token"}
	}

	const (
		unseen = iota
		walking
		done
	)
	state := make([]uint8, len(tokens))
	for i := range tokens {
		j := i
		for state[j] == unseen && !tokens[j].IsRoot() {
			state[j] = walking
			j = tokens[j].Head
		}
		if state[j] == walking {
			return &CorruptTreeError{Index: j, Reason: "head cycle"}
		}
		// Mark the walked chain resolved.
		j = i
		for state[j] == walking {
			state[j] = done
			j = tokens[j].Head
		}
		state[i] = done
	}
	return nil
}

// view returns the current snapshot. Everything read from it is consistent
// even if a merge lands concurrently afterwards.
func (d *Document) view() *snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

// Len returns the current number of tokens.
func (d *Document) Len() int { return len(d.view().tokens) }

// Text returns the document source text.
func (d *Document) Text() string { return d.view().text }

// Lang returns the language identifier the document was built with.
func (d *Document) Lang() string { return d.lang }

// Token returns the token at index i.
func (d *Document) Token(i int) (Token, error) {
	s := d.view()
	if i < 0 || i >= len(s.tokens) {
		return Token{}, &OutOfRangeError{Index: i, Len: len(s.tokens)}
	}
	return s.tokens[i], nil
}

// Tokens returns a copy of the current token sequence.
func (d *Document) Tokens() []Token {
	s := d.view()
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Root returns the root token.
func (d *Document) Root() (Token, error) {
	s := d.view()
	if len(s.tokens) == 0 {
		return Token{}, &OutOfRangeError{Index: 0, Len: 0}
	}
	return s.tokens[s.index.root], nil
}

// SpanText returns the source text covered by tokens [start, end).
func (d *Document) SpanText(start, end int) (string, error) {
	s := d.view()
	if err := s.checkRange(start, end); err != nil {
		return "", err
	}
	return s.spanText(start, end), nil
}

func (s *snapshot) spanText(start, end int) string {
	return s.text[s.tokens[start].Start:s.tokens[end-1].End]
}

func (s *snapshot) check(i int) error {
	if i < 0 || i >= len(s.tokens) {
		return &OutOfRangeError{Index: i, Len: len(s.tokens)}
	}
	return nil
}

func (s *snapshot) checkRange(start, end int) error {
	if start < 0 || start >= len(s.tokens) {
		return &OutOfRangeError{Index: start, Len: len(s.tokens)}
	}
	if end < 0 || end > len(s.tokens) {
		return &OutOfRangeError{Index: end, Len: len(s.tokens)}
	}
	if start >= end {
		return &InvalidSpanError{Start: start, End: end, Reason: "empty span"}
	}
	return nil
}
