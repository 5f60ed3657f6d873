// Package render produces the read-only {words, arcs} view of a parsed
// document consumed by the visualization service.
package render

import "github.com/kittclouds/depdoc/pkg/deptree"

// Word is one token in the rendered view.
type Word struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Arc is one labeled dependency between two word positions. Start < End
// always; Dir says which way the relation points in document order.
type Arc struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Dir   string `json:"dir"` // "left" when the child precedes its head
}

// Parse is the serialized document.
type Parse struct {
	Words []Word `json:"words"`
	Arcs  []Arc  `json:"arcs"`
}

// Build derives the view in one pass over the current token sequence. The
// root token contributes a word but no arc.
func Build(doc *deptree.Document) Parse {
	tokens := doc.Tokens()
	p := Parse{
		Words: make([]Word, len(tokens)),
		Arcs:  make([]Arc, 0, len(tokens)),
	}
	for i, t := range tokens {
		p.Words[i] = Word{Text: t.Text, Tag: t.Tag}
		if t.IsRoot() {
			continue
		}
		if i < t.Head {
			p.Arcs = append(p.Arcs, Arc{Start: i, End: t.Head, Label: t.Dep, Dir: "left"})
		} else {
			p.Arcs = append(p.Arcs, Arc{Start: t.Head, End: i, Label: t.Dep, Dir: "right"})
		}
	}
	return p
}
