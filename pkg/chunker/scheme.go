// Package chunker extracts flat noun-phrase spans from a dependency-parsed
// document, driven by a per-language label scheme.
package chunker

import "sync"

// Scheme is the capability table for one language: which dependency labels
// anchor a noun chunk, and which labels or tags get trimmed from a chunk's
// right boundary. Schemes are plain data; language variation lives in the
// registry, not in code.
type Scheme struct {
	Language string          `json:"language"`
	Anchors  map[string]bool `json:"anchors"`  // dep labels that start a chunk
	TrimDeps map[string]bool `json:"trimDeps"` // dep labels dropped at the boundary
	TrimTags map[string]bool `json:"trimTags"` // POS tags dropped at the boundary
}

var (
	regMu    sync.RWMutex
	registry = map[string]*Scheme{}
)

func init() {
	Register(&Scheme{
		Language: "en",
		Anchors: map[string]bool{
			"nsubj":     true,
			"nsubjpass": true,
			"dobj":      true,
			"iobj":      true,
			"pobj":      true,
			"pcomp":     true,
			"dative":    true,
			"appos":     true,
			"attr":      true,
			"ROOT":      true,
			"root":      true, // CoNLL-U spelling
		},
		TrimDeps: map[string]bool{
			"cc":    true,
			"punct": true,
		},
		TrimTags: map[string]bool{
			",": true,
			".": true,
			":": true,
		},
	})
}

// Register installs or replaces the scheme for its language.
func Register(s *Scheme) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[s.Language] = s
}

// Lookup returns the scheme registered for lang, or nil if none exists.
func Lookup(lang string) *Scheme {
	regMu.RLock()
	defer regMu.RUnlock()
	return registry[lang]
}

// Languages returns the registered language identifiers.
func Languages() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(registry))
	for lang := range registry {
		out = append(out, lang)
	}
	return out
}
