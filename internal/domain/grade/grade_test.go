package grade

import "testing"

var all = []Grade{Junior, Middle, Senior, Lead}

func TestFromTenure_Boundaries(t *testing.T) {
	tests := []struct {
		years int
		want  Grade
	}{
		{-1, Junior},
		{0, Junior},
		{1, Junior},
		{2, Middle},
		{3, Middle},
		{4, Senior},
		{5, Senior},
		{6, Lead},
		{100, Lead},
	}
	for _, tc := range tests {
		if got := FromTenure(tc.years); got != tc.want {
			t.Errorf("FromTenure(%d) = %s, want %s", tc.years, got, tc.want)
		}
	}
}

func TestScore_Symmetric(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			if Score(a, b) != Score(b, a) {
				t.Errorf("Score(%s,%s) = %v, Score(%s,%s) = %v", a, b, Score(a, b), b, a, Score(b, a))
			}
		}
	}
}

func TestScore_Identity(t *testing.T) {
	for _, g := range all {
		if got := Score(g, g); got != 1.0 {
			t.Errorf("Score(%s,%s) = %v, want 1.0", g, g, got)
		}
	}
}

func TestScore_Distance(t *testing.T) {
	tests := []struct {
		a, b Grade
		want float64
	}{
		{Junior, Middle, 0.8},
		{Junior, Senior, 0.4},
		{Junior, Lead, 0.1},
		{Senior, Middle, 0.8},
	}
	for _, tc := range tests {
		if got := Score(tc.a, tc.b); got != tc.want {
			t.Errorf("Score(%s,%s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := map[string]Grade{
		"Junior":  Junior,
		"middle":  Middle,
		" SENIOR": Senior,
		"Lead":    Lead,
		"":        Middle,
		"Intern":  Middle,
	}
	for in, want := range tests {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %s, want %s", in, got, want)
		}
	}
}
