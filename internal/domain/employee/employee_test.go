package employee

import "testing"

func rankable() Employee {
	return Employee{
		ID:         1,
		FirstName:  "Anna",
		LastName:   "Petrova",
		Position:   "Data Scientist",
		Bio:        "ML in production",
		Skills:     []Skill{{Name: "Python"}},
		Department: "Analytics",
	}
}

func TestRankable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *Employee)
		want   bool
	}{
		{"complete", func(_ *Employee) {}, true},
		{"missing bio", func(e *Employee) { e.Bio = "" }, false},
		{"blank bio", func(e *Employee) { e.Bio = "   " }, false},
		{"missing position", func(e *Employee) { e.Position = "" }, false},
		{"no skills", func(e *Employee) { e.Skills = nil }, false},
		{"missing first name", func(e *Employee) { e.FirstName = "" }, false},
		{"missing last name", func(e *Employee) { e.LastName = "" }, false},
		{"department optional", func(e *Employee) { e.Department = "" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := rankable()
			tc.mutate(&e)
			if got := e.Rankable(); got != tc.want {
				t.Errorf("Rankable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterRankable_PreservesOrder(t *testing.T) {
	a, b, c := rankable(), rankable(), rankable()
	a.ID, b.ID, c.ID = 3, 1, 2
	b.Bio = ""

	got := FilterRankable([]Employee{a, b, c})
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestFullName(t *testing.T) {
	e := Employee{FirstName: "Ivan", MiddleName: "Petrovich", LastName: "Sidorov"}
	if got := e.FullName(); got != "Ivan Petrovich Sidorov" {
		t.Errorf("FullName() = %q", got)
	}
	e.MiddleName = ""
	if got := e.FullName(); got != "Ivan Sidorov" {
		t.Errorf("FullName() = %q", got)
	}
}
