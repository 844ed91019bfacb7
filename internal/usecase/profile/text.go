package profile

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
)

const notSpecified = "not specified"

// BuildText renders the deterministic profile summary that gets embedded.
// Field order is fixed; work history keeps the stored order.
func BuildText(e *employee.Employee) string {
	parts := []string{
		"Position: " + orDefault(e.Position),
		"Department: " + orDefault(e.Department),
		"Experience: " + strconv.Itoa(e.ExperienceYears) + " years",
		"Skills: " + strings.Join(e.SkillNames(), ", "),
	}
	if bio := strings.TrimSpace(e.Bio); bio != "" {
		parts = append(parts, "About: "+bio)
	}
	if work := workHistory(e.WorkExperiences); work != "" {
		parts = append(parts, "Work history: "+work)
	}
	return strings.Join(parts, ". ")
}

func workHistory(items []employee.WorkExperience) string {
	entries := make([]string, 0, len(items))
	for _, w := range items {
		var b strings.Builder
		b.WriteString("Company: ")
		b.WriteString(w.CompanyName)
		if w.Position != "" {
			b.WriteString(", Position: ")
			b.WriteString(w.Position)
		}
		if w.Description != "" {
			b.WriteString(", Description: ")
			b.WriteString(w.Description)
		}
		entries = append(entries, b.String())
	}
	return strings.Join(entries, "; ")
}

func orDefault(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return notSpecified
}
