// Package employee holds the read-only employee view consumed by ranking.
package employee

import "strings"

// Skill is a named skill attached to an employee.
type Skill struct {
	Name     string
	Category string
}

// WorkExperience is one entry of an employee's work history.
// Periods are "YYYY-MM" strings; EndDate is empty for the current job.
type WorkExperience struct {
	CompanyName string
	Position    string
	Description string
	StartDate   string
	EndDate     string
	IsCurrent   bool
}

// Employee is an employee record as loaded from the employee store.
// The ranking core never mutates it.
type Employee struct {
	ID              int64
	FirstName       string
	LastName        string
	MiddleName      string
	Email           string
	Position        string
	Department      string
	ExperienceYears int
	Bio             string
	Skills          []Skill
	WorkExperiences []WorkExperience
	XPPoints        int
	Level           int
}

// FullName returns "First [Middle] Last".
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.MiddleName, e.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// SkillNames returns skill names in stored order.
func (e *Employee) SkillNames() []string {
	names := make([]string, len(e.Skills))
	for i, s := range e.Skills {
		names[i] = s.Name
	}
	return names
}

// Rankable reports whether the employee carries enough profile data to be ranked:
// first and last name, position, bio and at least one skill.
// Non-rankable employees stay in the system but never appear in search results.
func (e *Employee) Rankable() bool {
	return notBlank(e.FirstName) &&
		notBlank(e.LastName) &&
		notBlank(e.Position) &&
		notBlank(e.Bio) &&
		len(e.Skills) > 0
}

// FilterRankable keeps rankable employees, preserving order.
func FilterRankable(emps []Employee) []Employee {
	out := make([]Employee, 0, len(emps))
	for i := range emps {
		if emps[i].Rankable() {
			out = append(out, emps[i])
		}
	}
	return out
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }
