// Package query holds the structured interpretation of a raw hiring query.
package query

import (
	"strings"

	"github.com/kailas-cloud/hrsearch/internal/domain/grade"
)

// Parsed is the structured metadata extracted from a raw query.
type Parsed struct {
	// Skills are required and adjacent skills, in the order the model listed them.
	Skills []string
	// Grade is the target seniority; Middle when the query does not say.
	Grade grade.Grade
	// NormalizedText is normalize(raw query + skills). May be empty ("no signal").
	NormalizedText string
}

// Terms returns the distinct normalized query tokens in first-seen order.
func (p *Parsed) Terms() []string {
	return DistinctTokens(p.NormalizedText)
}

// DistinctTokens splits text on whitespace and drops repeats, keeping first-seen order.
func DistinctTokens(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
