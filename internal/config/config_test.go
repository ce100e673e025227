package config

import "testing"

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Errorf("parseOrigins(\"\") = %v, want nil", got)
	}

	got := parseOrigins("https://a.example.com, https://b.example.com ,")
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(got) != len(want) {
		t.Fatalf("parseOrigins returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("origin[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCertificateVerifyKeyNormalizes(t *testing.T) {
	a := CacheKey.CertificateVerifyKey("  vesdm202600042-abcd-0042 ")
	b := CacheKey.CertificateVerifyKey("VESDM202600042-ABCD-0042")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
}
