package service

import "testing"

func TestGradeFor(t *testing.T) {
	cases := []struct {
		name  string
		marks int
		total int
		want  string
	}{
		{"full marks", 100, 100, "A+"},
		{"exactly 90", 90, 100, "A+"},
		{"just under 90", 89, 100, "A"},
		{"exactly 80", 80, 100, "A"},
		{"just under 80", 79, 100, "B+"},
		{"exactly 70", 70, 100, "B+"},
		{"exactly 60", 60, 100, "B"},
		{"exactly 50", 50, 100, "C"},
		{"exactly 40", 40, 100, "D"},
		{"just under 40", 39, 100, "F"},
		{"zero", 0, 100, "F"},
		{"non-hundred total at boundary", 45, 50, "A+"},
		{"non-hundred total mid", 33, 60, "C"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GradeFor(tc.marks, tc.total); got != tc.want {
				t.Errorf("GradeFor(%d, %d) = %q, want %q", tc.marks, tc.total, got, tc.want)
			}
		})
	}
}
