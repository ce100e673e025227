package model

import (
	"testing"
	"time"
)

func TestExamState(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	examDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	exam := Exam{Date: examDate, Deadline: deadline}

	cases := []struct {
		name      string
		now       time.Time
		published bool
		want      ExamState
	}{
		{"before deadline", deadline.Add(-24 * time.Hour), false, ExamStateOpen},
		{"at deadline", deadline, false, ExamStateOpen},
		{"after deadline", deadline.Add(time.Second), false, ExamStateClosed},
		{"after exam date", examDate.Add(24 * time.Hour), false, ExamStateClosed},
		{"published wins over open", deadline.Add(-24 * time.Hour), true, ExamStatePublished},
		{"published wins over closed", examDate.Add(24 * time.Hour), true, ExamStatePublished},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exam.IsPublished = tc.published
			if got := exam.State(tc.now); got != tc.want {
				t.Errorf("State(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
