package ranking

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
	"github.com/kailas-cloud/hrsearch/internal/domain/ranking"
)

// keywords splits raw on commas and whitespace, lower-cased.
func keywords(raw string) []string {
	return strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// keywordMatch keeps employees with a skill containing any keyword,
// case-insensitively, in load order. No keywords keeps everyone.
func keywordMatch(emps []employee.Employee, kws []string, limit int) []ranking.Candidate {
	out := make([]ranking.Candidate, 0, min(len(emps), limit))
	for i := range emps {
		if len(out) == limit {
			break
		}
		e := &emps[i]
		if !e.Rankable() || (len(kws) > 0 && !hasSkill(e, kws)) {
			continue
		}
		c := candidate(e)
		c.Score = 1.0
		c.SemanticScore = 0.0
		c.SkillsMatch = 1.0
		out = append(out, c)
	}
	return out
}

func hasSkill(e *employee.Employee, kws []string) bool {
	for _, s := range e.Skills {
		name := strings.ToLower(s.Name)
		for _, kw := range kws {
			if strings.Contains(name, kw) {
				return true
			}
		}
	}
	return false
}

// candidate fills the fields shared by both paths.
func candidate(e *employee.Employee) ranking.Candidate {
	return ranking.Candidate{
		EmployeeID:      e.ID,
		FullName:        e.FullName(),
		Position:        e.Position,
		Department:      e.Department,
		ExperienceYears: e.ExperienceYears,
		Skills:          e.SkillNames(),
		Level:           e.Level,
		XPPoints:        e.XPPoints,
	}
}
