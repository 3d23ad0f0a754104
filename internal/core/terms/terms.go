// Package terms picks the significant tokens of a normalized title for fuzzy lookups
package terms

import "strings"

// Policy values for the two callers
const (
	MatchMaxTerms  = 3
	MatchMinLen    = 3
	SearchMaxTerms = 5
	SearchMinLen   = 2
)

// Significant returns up to maxTerms tokens longer than minLen, in title order
func Significant(normalized string, maxTerms, minLen int) []string {
	if maxTerms <= 0 {
		return nil
	}
	out := make([]string, 0, maxTerms)
	for _, tok := range strings.Fields(normalized) {
		if len(tok) <= minLen {
			continue
		}
		out = append(out, tok)
		if len(out) == maxTerms {
			break
		}
	}
	return out
}

// Pattern joins terms into an ordered LIKE pattern: %t1%t2%t3%.
// An empty term list yields "" so callers can tell "no pattern" from "match all".
func Pattern(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('%')
	for _, t := range terms {
		b.WriteString(escapeLike(t))
		b.WriteByte('%')
	}
	return b.String()
}

// Match reports whether normalized contains every term in order, the same predicate as Pattern under LIKE
func Match(normalized string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	rest := normalized
	for _, t := range terms {
		i := strings.Index(rest, t)
		if i < 0 {
			return false
		}
		rest = rest[i+len(t):]
	}
	return true
}

// Query joins terms with spaces for full-text engines
func Query(terms []string) string { return strings.Join(terms, " ") }

// escapeLike guards LIKE metacharacters; normalized titles never carry them but search input may
func escapeLike(s string) string {
	if !strings.ContainsAny(s, `%_\`) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
