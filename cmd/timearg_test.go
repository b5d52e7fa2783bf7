package cmd

import (
	"math"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
)

func TestParseClockSeconds(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"90", 90},
		{"12.5", 12.5},
		{"12,5", 12.5},
		{"1:30", 90},
		{"0:05", 5},
		{"01:02:03", 3723},
		{"1:00:00", 3600},
		{" 45 ", 45},
	}

	for _, tc := range cases {
		got, err := parseClockSeconds(tc.raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.raw, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%q: expected %g, got %g", tc.raw, tc.want, got)
		}
	}
}

func TestParseClockSecondsInvalid(t *testing.T) {
	invalid := []string{"", "abc", "-5", "1:75", "1:2:3:4", "1::3", "01:99:00"}
	for _, raw := range invalid {
		if _, err := parseClockSeconds(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseTimeArgRational(t *testing.T) {
	got, err := parseTimeArg("1:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := avtime.FromSeconds(90, avtime.DefaultTimescale)
	if got.Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseTimesArg(t *testing.T) {
	times, err := parseTimesArg("1.5, 8 ,1:10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("expected 3 times, got %d", len(times))
	}
	if times[2].Seconds() != 70 {
		t.Fatalf("expected 70s, got %g", times[2].Seconds())
	}
}

func TestParseTimesArgEmpty(t *testing.T) {
	times, err := parseTimesArg("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if times != nil {
		t.Fatalf("expected nil for empty list, got %v", times)
	}
}

func TestParseTimesArgInvalidEntry(t *testing.T) {
	if _, err := parseTimesArg("1.5,bozuk,8"); err == nil {
		t.Fatalf("expected error for invalid entry")
	}
}

func TestParseRectArg(t *testing.T) {
	rect, err := parseRectArg("10 20 640 360")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rect.X != 10 || rect.Y != 20 || rect.Width != 640 || rect.Height != 360 {
		t.Fatalf("unexpected rect: %+v", rect)
	}
}

func TestParseRectArgInvalid(t *testing.T) {
	invalid := []string{"", "1 2 3", "1 2 3 4 5", "a b c d"}
	for _, raw := range invalid {
		if _, err := parseRectArg(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
