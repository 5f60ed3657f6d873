package chunker

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kittclouds/depdoc/pkg/deptree"
)

// Chunk is one extracted noun phrase: the covered span, the anchor token
// that selected it, and the surface text.
type Chunk struct {
	Span   deptree.Span `json:"span"`
	Anchor int          `json:"anchor"`
	Text   string       `json:"text"`
}

// Extractor finds noun chunks using a language scheme. It holds no document
// state; one extractor may serve any number of documents of its language.
type Extractor struct {
	scheme *Scheme
}

// New returns an extractor for lang. Fails if no scheme is registered.
func New(lang string) (*Extractor, error) {
	s := Lookup(lang)
	if s == nil {
		return nil, fmt.Errorf("no chunk scheme registered for language %q", lang)
	}
	return &Extractor{scheme: s}, nil
}

// NewWithScheme returns an extractor over an explicit scheme, bypassing the
// registry.
func NewWithScheme(s *Scheme) *Extractor {
	return &Extractor{scheme: s}
}

// Extract scans the document left to right and emits one chunk per eligible
// anchor whose span does not intersect anything already emitted. The span of
// an anchor is its subtree bound, trimmed on the right per the scheme; the
// anchor itself is never trimmed away.
func (e *Extractor) Extract(doc *deptree.Document) ([]Chunk, error) {
	var chunks []Chunk
	coverage := roaring.New()

	tokens := doc.Tokens()
	for i, tok := range tokens {
		if !e.scheme.Anchors[tok.Dep] {
			continue
		}
		if coverage.Contains(uint32(i)) {
			continue
		}
		span, err := doc.SubtreeSpan(i)
		if err != nil {
			return nil, err
		}
		span = e.trim(tokens, span)

		claim := roaring.New()
		claim.AddRange(uint64(span.Start), uint64(span.End))
		if claim.Intersects(coverage) {
			continue
		}
		coverage.Or(claim)

		text, err := doc.SpanText(span.Start, span.End)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{Span: span, Anchor: i, Text: text})
	}
	return chunks, nil
}

// trim shrinks the span's right boundary past trailing coordinators,
// punctuation and anything else the scheme excludes, without ever dropping
// the anchor token.
func (e *Extractor) trim(tokens []deptree.Token, span deptree.Span) deptree.Span {
	for span.End-1 > span.Root {
		last := tokens[span.End-1]
		if !e.scheme.TrimDeps[last.Dep] && !e.scheme.TrimTags[last.Tag] {
			break
		}
		span.End--
	}
	return span
}
