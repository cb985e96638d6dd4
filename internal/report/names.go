package report

import (
	"fmt"
	"strings"
)

// slugFallback names reports whose record has no usable identity value.
const slugFallback = "report"

// slugify reduces a patient identity to a filesystem-safe file stem:
// surrounding whitespace is trimmed, inner spaces become underscores and
// anything outside [A-Za-z0-9_-] is dropped.
func slugify(identity string) string {
	identity = strings.TrimSpace(identity)
	identity = strings.ReplaceAll(identity, " ", "_")

	var b strings.Builder
	b.Grow(len(identity))
	for _, r := range identity {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return slugFallback
	}
	return b.String()
}

// namer hands out collision-free report file names within one run. The
// first record with a given identity gets "<slug>_report.pdf", later
// ones get a numeric suffix in input order. Not safe for concurrent
// use: names are assigned during the sequential planning phase.
type namer struct {
	used map[string]int
}

func newNamer() *namer {
	return &namer{used: make(map[string]int)}
}

func (n *namer) next(identity string) string {
	slug := slugify(identity)
	n.used[slug]++
	if n.used[slug] == 1 {
		return slug + "_report.pdf"
	}
	return fmt.Sprintf("%s_report_%d.pdf", slug, n.used[slug])
}
