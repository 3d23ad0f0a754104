// Package normalize maps retailer product titles to a canonical matching key.
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFD then strip combining and format marks (creme == crème),
// canonical only, so ™ ½ ² keep their code points and fall out in step 4
// 3 Width fold and case fold
// 4 Drop everything that is not a-z, 0-9 or whitespace
// 5 Canonicalize units: "16 Ounces" -> "16oz"
// 6 Replace stop words with a space
// 7 Collapse whitespace and trim
// The pipeline repeats until the output stops changing, so Title is idempotent.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// maxPasses bounds the fixpoint loop; real titles settle in two
const maxPasses = 4

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			cases.Fold(),
		)
	},
}

// Title returns the canonical form of raw. Empty or all-filler input yields "".
func Title(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	s := fold(strings.ToValidUTF8(raw, ""))
	for i := 0; i < maxPasses; i++ {
		next := pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// fold runs steps 2-3 through a pooled transformer chain
func fold(s string) string {
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// pass runs steps 4-7 on folded input
func pass(s string) string {
	s = keepASCIIWords(s)
	s = Units(s)
	s = stripStopWords(s)
	return collapseSpaces(s)
}

func keepASCIIWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// stopWords never carry product identity
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "for": {}, "with": {},
	"new": {}, "free": {}, "best": {}, "top": {}, "premium": {}, "professional": {}, "pro": {},
}

// IsStopWord reports whether w is dropped by Title
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// stripStopWords blanks whole-word stop words so neighbours never fuse
func stripStopWords(s string) string {
	fields := strings.Split(s, " ")
	for i, f := range fields {
		if IsStopWord(f) {
			fields[i] = ""
		}
	}
	return strings.Join(fields, " ")
}

func collapseSpaces(s string) string { return strings.Join(strings.Fields(s), " ") }
