package deptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// applesDoc builds "bright red apples on fire" with apples as root.
func applesDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := FromWords(
		[]string{"bright", "red", "apples", "on", "fire"},
		[]string{"JJ", "JJ", "NNS", "IN", "NN"},
		[]string{"amod", "amod", "ROOT", "prep", "pobj"},
		[]int{2, 2, 2, 2, 3},
		"en",
	)
	require.NoError(t, err)
	return doc
}

// nonProjDoc builds a four-token tree where the subtree of token 0 is
// {0, 3}: a crossing arc, so no contiguity guarantee.
func nonProjDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := FromWords(
		[]string{"w0", "w1", "w2", "w3"},
		[]string{"X", "X", "X", "X"},
		[]string{"dep", "ROOT", "dep", "dep"},
		[]int{1, 1, 1, 0},
		"xx",
	)
	require.NoError(t, err)
	return doc
}

func TestChildrenAndAncestors(t *testing.T) {
	doc := carsDoc(t)

	kids, err := doc.Children(2) // shift
	require.NoError(t, err)
	assert.Equal(t, []string{"cars", "liability"}, texts(kids))

	kids, err = doc.Children(4) // liability
	require.NoError(t, err)
	assert.Equal(t, []string{"insurance", "toward"}, texts(kids))

	anc, err := doc.Ancestors(6) // manufacturers
	require.NoError(t, err)
	assert.Equal(t, []string{"toward", "liability", "shift"}, texts(anc))

	// The root has no ancestors.
	anc, err = doc.Ancestors(2)
	require.NoError(t, err)
	assert.Empty(t, anc)

	_, err = doc.Children(10)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
}

func TestLeftsRights(t *testing.T) {
	doc := applesDoc(t)

	lefts, err := doc.Lefts(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bright", "red"}, texts(lefts))

	rights, err := doc.Rights(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"on"}, texts(rights))

	nl, err := doc.NLefts(2)
	require.NoError(t, err)
	assert.Equal(t, 2, nl)

	nr, err := doc.NRights(2)
	require.NoError(t, err)
	assert.Equal(t, 1, nr)
}

func TestLeftsPlusRightsEqualsChildren(t *testing.T) {
	for _, doc := range []*Document{carsDoc(t), applesDoc(t), nonProjDoc(t)} {
		for i := 0; i < doc.Len(); i++ {
			kids, err := doc.Children(i)
			require.NoError(t, err)
			nl, err := doc.NLefts(i)
			require.NoError(t, err)
			nr, err := doc.NRights(i)
			require.NoError(t, err)
			assert.Equal(t, len(kids), nl+nr, "token %d", i)
		}
	}
}

func TestIsAncestor(t *testing.T) {
	doc := carsDoc(t)

	for b := 0; b < doc.Len(); b++ {
		anc, err := doc.Ancestors(b)
		require.NoError(t, err)
		inAnc := make(map[int]bool)
		for _, a := range anc {
			inAnc[a.Index] = true
		}
		for a := 0; a < doc.Len(); a++ {
			got, err := doc.IsAncestor(a, b)
			require.NoError(t, err)
			assert.Equal(t, inAnc[a], got, "IsAncestor(%d, %d)", a, b)
		}
	}

	// No token dominates itself.
	got, err := doc.IsAncestor(2, 2)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestSubtreeAndEdges(t *testing.T) {
	doc := carsDoc(t)

	sub, err := doc.Subtree(4) // liability
	require.NoError(t, err)
	assert.Equal(t, []string{"insurance", "liability", "toward", "manufacturers"}, texts(sub))

	le, err := doc.LeftEdge(4)
	require.NoError(t, err)
	assert.Equal(t, 3, le)

	re, err := doc.RightEdge(4)
	require.NoError(t, err)
	assert.Equal(t, 6, re)

	span, err := doc.SubtreeSpan(4)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 3, End: 7, Root: 4}, span)

	// The root's subtree is the whole document.
	root, err := doc.Root()
	require.NoError(t, err)
	sub, err = doc.Subtree(root.Index)
	require.NoError(t, err)
	assert.Len(t, sub, doc.Len())
}

func TestProjectiveSubtreesAreContiguous(t *testing.T) {
	doc := carsDoc(t)
	require.True(t, doc.IsProjective())

	for i := 0; i < doc.Len(); i++ {
		sub, err := doc.Subtree(i)
		require.NoError(t, err)
		le, err := doc.LeftEdge(i)
		require.NoError(t, err)
		re, err := doc.RightEdge(i)
		require.NoError(t, err)
		require.Len(t, sub, re-le+1)
		for k, tok := range sub {
			assert.Equal(t, le+k, tok.Index)
		}
	}
}

func TestNonProjectiveSubtree(t *testing.T) {
	doc := nonProjDoc(t)
	assert.False(t, doc.IsProjective())

	sub, err := doc.Subtree(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"w0", "w3"}, texts(sub))

	// Edges still bound the subtree, but the range is not the membership.
	le, err := doc.LeftEdge(0)
	require.NoError(t, err)
	re, err := doc.RightEdge(0)
	require.NoError(t, err)
	assert.Equal(t, 0, le)
	assert.Equal(t, 3, re)
	assert.NotEqual(t, re-le+1, len(sub))
}

func TestAncestorWalkTerminates(t *testing.T) {
	for _, doc := range []*Document{carsDoc(t), applesDoc(t), nonProjDoc(t)} {
		for i := 0; i < doc.Len(); i++ {
			anc, err := doc.Ancestors(i)
			require.NoError(t, err)
			assert.Less(t, len(anc), doc.Len()+1)
			if len(anc) > 0 {
				assert.True(t, anc[len(anc)-1].IsRoot())
			}
		}
	}
}
