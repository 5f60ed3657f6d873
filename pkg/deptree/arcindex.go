package deptree

// arcIndex is the child structure derived from head assignments: for every
// token, its direct dependents in document order, split at the token's own
// index into left and right dependents. An arcIndex is immutable once built;
// mutation builds a fresh one.
type arcIndex struct {
	children [][]int // per-token dependents, ascending by index
	nLefts   []int   // per-token count of dependents left of the token
	root     int
}

// buildArcIndex assigns each non-root token to its head's children list in a
// single pass. Iterating in ascending index order keeps each list sorted
// without any later sort.
func buildArcIndex(tokens []Token) *arcIndex {
	ix := &arcIndex{
		children: make([][]int, len(tokens)),
		nLefts:   make([]int, len(tokens)),
	}
	for i, t := range tokens {
		if t.IsRoot() {
			ix.root = i
			continue
		}
		ix.children[t.Head] = append(ix.children[t.Head], i)
		if i < t.Head {
			ix.nLefts[t.Head]++
		}
	}
	return ix
}

// lefts returns the dependents of token i that precede it in document order.
func (ix *arcIndex) lefts(i int) []int {
	return ix.children[i][:ix.nLefts[i]]
}

// rights returns the dependents of token i that follow it in document order.
func (ix *arcIndex) rights(i int) []int {
	return ix.children[i][ix.nLefts[i]:]
}
