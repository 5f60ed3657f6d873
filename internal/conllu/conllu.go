// Package conllu reads and writes the CoNLL-U dependency format: ten
// tab-separated columns per token, blank lines between sentences.
// See https://universaldependencies.org/format.html
package conllu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kittclouds/depdoc/pkg/deptree"
)

const numFields = 10

// Read parses every sentence in r into a document tagged with lang.
// Comment lines, multiword ranges (ids like 3-4) and empty nodes (ids like
// 3.1) are skipped; heads use the format's 1-based convention with 0 for
// the root and are converted to self-headed root indexing.
func Read(r io.Reader, lang string) ([]*deptree.Document, error) {
	var (
		docs  []*deptree.Document
		words []string
		tags  []string
		deps  []string
		heads []int
	)

	flush := func() error {
		if len(words) == 0 {
			return nil
		}
		doc, err := deptree.FromWords(words, tags, deps, heads, lang)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
		words, tags, deps, heads = nil, nil, nil, nil
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != numFields {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNo, numFields, len(fields))
		}
		// Multiword token ranges and empty nodes carry no head of their own.
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}

		head, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad head %q: %w", lineNo, fields[6], err)
		}
		if head == 0 {
			head = len(words) // self-headed root
		} else {
			head--
		}

		words = append(words, fields[1])
		tags = append(tags, fields[3])
		deps = append(deps, fields[7])
		heads = append(heads, head)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Write emits doc as one CoNLL-U sentence followed by a blank line. Columns
// this model does not carry (lemma, feats, deps, misc) are written as "_".
func Write(w io.Writer, doc *deptree.Document) error {
	bw := bufio.NewWriter(w)
	for _, t := range doc.Tokens() {
		head := 0
		if !t.IsRoot() {
			head = t.Head + 1
		}
		_, err := fmt.Fprintf(bw, "%d\t%s\t_\t%s\t_\t_\t%d\t%s\t_\t_\n",
			t.Index+1, t.Text, t.Tag, head, t.Dep)
		if err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}
