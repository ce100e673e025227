package service

import "testing"

func TestFormatRegistrationNumber(t *testing.T) {
	cases := []struct {
		year int
		seq  int64
		want string
	}{
		{2026, 1, "VESDM202600001"},
		{2026, 42, "VESDM202600042"},
		{2025, 99999, "VESDM202599999"},
		// Sequences past the padding width keep growing instead of wrapping.
		{2026, 100000, "VESDM2026100000"},
	}

	for _, tc := range cases {
		if got := FormatRegistrationNumber(tc.year, tc.seq); got != tc.want {
			t.Errorf("FormatRegistrationNumber(%d, %d) = %q, want %q", tc.year, tc.seq, got, tc.want)
		}
	}
}
