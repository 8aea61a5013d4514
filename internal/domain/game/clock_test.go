package game

import "testing"

func TestNormalizeClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "PT12M00.00S", want: "12:00", ok: true},
		{in: "PT05M12.40S", want: "05:12", ok: true},
		{in: "PT00M00.00S", want: "00:00", ok: true},
		{in: "PT11M", want: "11:", ok: true},
		{in: "PT1M2M03.00S", want: "1:2:03", ok: true},
		{in: "12:00", ok: false},
		{in: "", ok: false},
		{in: "pt12M00.00S", ok: false},
	}

	for _, tc := range cases {
		got, ok := NormalizeClock(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeClock(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSnapshot_WithNormalizedClockKeepsUnknownForms(t *testing.T) {
	t.Parallel()

	if got := (Snapshot{Clock: "7:42"}).WithNormalizedClock().Clock; got != "7:42" {
		t.Fatalf("unrecognized clock must stay as-is, got %q", got)
	}
	if got := (Snapshot{Clock: "PT07M42.00S"}).WithNormalizedClock().Clock; got != "07:42" {
		t.Fatalf("unexpected normalized clock %q", got)
	}
}
