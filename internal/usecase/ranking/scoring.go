package ranking

import (
	"math"
	"strings"

	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/grade"
	"github.com/kailas-cloud/hrsearch/internal/domain/ranking"
)

// Weights are the composite score coefficients.
type Weights struct {
	Semantic   float64
	Grade      float64
	Overlap    float64
	Reputation float64
}

// DefaultWeights returns 0.60 / 0.20 / 0.15 / 0.05.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.60, Grade: 0.20, Overlap: 0.15, Reputation: 0.05}
}

// overlapFloor is added to the match count so zero matches do not collapse to zero.
const overlapFloor = 1

// Cosine returns dot(a,b)/(|a||b|) clamped to [0,1]. Empty, mismatched or
// zero-norm vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return min(max(dot/(math.Sqrt(na)*math.Sqrt(nb)), 0), 1)
}

// Overlap is the smoothed Ochiai coefficient between candidate skills and the
// query term set. skills must already be normalized; a skill matches when every
// one of its tokens is a query term. An empty term set scores 0.
func Overlap(skills []string, terms map[string]struct{}) float64 {
	if len(terms) == 0 || len(skills) == 0 {
		return 0
	}
	matches := overlapFloor
	for _, s := range skills {
		if matchesTerms(s, terms) {
			matches++
		}
	}
	return float64(matches) / math.Sqrt(float64(len(skills)*len(terms)))
}

func matchesTerms(skill string, terms map[string]struct{}) bool {
	toks := strings.Fields(skill)
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if _, ok := terms[t]; !ok {
			return false
		}
	}
	return true
}

// Composite folds a breakdown into one score.
func Composite(b ranking.Breakdown, w Weights) float64 {
	return w.Semantic*b.Semantic + w.Grade*b.Grade + w.Overlap*b.Overlap + w.Reputation*b.Reputation
}

// score computes the breakdown for one candidate.
func score(
	e *employee.Employee, normSkills []string, empVec, queryVec []float32,
	target grade.Grade, terms map[string]struct{},
) ranking.Breakdown {
	return ranking.Breakdown{
		Semantic:   Cosine(queryVec, empVec),
		Grade:      grade.Score(grade.FromTenure(e.ExperienceYears), target),
		Overlap:    Overlap(normSkills, terms),
		Reputation: float64(e.Level),
	}
}
