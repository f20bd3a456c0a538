package plate_test

import (
	"testing"

	"github.com/gatewatch/server/internal/gatewatch/plate"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"abc123a":    "ABC123A",
		"  XYZ987Z ": "XYZ987Z",
		"":           "",
	}
	for in, want := range cases {
		if got := plate.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValid_AcceptsRegistryFormat(t *testing.T) {
	for _, p := range []string{"ABC123A", "ZZZ999Z", "AAA000A"} {
		if !plate.Valid(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
}

func TestValid_RejectsMalformed(t *testing.T) {
	for _, p := range []string{"", "ab12", "ABC123", "AB1234A", "ABCD123A", "abc123a", "ABC123AB", "123ABCA"} {
		if plate.Valid(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}
