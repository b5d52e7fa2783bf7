package avtime

import (
	"math"
	"testing"
)

func TestFromSecondsUsesTimescale(t *testing.T) {
	tm := FromSeconds(2.5, DefaultTimescale)
	if tm.Value != 1500 || tm.Timescale != 600 {
		t.Fatalf("expected 1500/600, got %d/%d", tm.Value, tm.Timescale)
	}
	if math.Abs(tm.Seconds()-2.5) > 1e-9 {
		t.Fatalf("expected 2.5s roundtrip, got %f", tm.Seconds())
	}
}

func TestAddSubCmp(t *testing.T) {
	a := FromSeconds(1.0, 600)
	b := FromSeconds(0.5, 600)

	if got := a.Add(b).Seconds(); math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("expected 1.5s, got %f", got)
	}
	if got := a.Sub(b).Seconds(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5s, got %f", got)
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Fatal("expected cmp ordering 1/-1/0")
	}
}

func TestCmpAcrossTimescales(t *testing.T) {
	a := New(600, 600)   // 1s
	b := New(1000, 1000) // 1s
	if a.Cmp(b) != 0 {
		t.Fatalf("expected equal across timescales, got %d", a.Cmp(b))
	}
}

func TestScaledBy(t *testing.T) {
	d := FromSeconds(10, 600)

	half := d.ScaledBy(1.0 / 2.0)
	if math.Abs(half.Seconds()-5.0) > 1e-9 {
		t.Fatalf("expected 5s after 2x speed, got %f", half.Seconds())
	}

	same := d.ScaledBy(1.0)
	if same.Value != d.Value {
		t.Fatalf("expected 1.0 scale to be a no-op, got %d", same.Value)
	}

	longer := d.ScaledBy(1.0 / 0.5)
	if math.Abs(longer.Seconds()-20.0) > 1e-9 {
		t.Fatalf("expected 20s after 0.5x speed, got %f", longer.Seconds())
	}
}

func TestSplitAtMidSumsToOriginal(t *testing.T) {
	for _, totalSec := range []float64{2.0, 2.5, 0.001, 7.77} {
		r := RangeFromSeconds(1.0, totalSec)
		first, second := r.SplitAtMid()

		sum := first.Duration.Value + second.Duration.Value
		if sum != r.Duration.Value {
			t.Fatalf("duration %f: halves sum %d, want %d", totalSec, sum, r.Duration.Value)
		}
		if second.Start.Cmp(first.End()) != 0 {
			t.Fatalf("duration %f: halves are not contiguous", totalSec)
		}
	}
}

func TestStrideCoversRangeExactly(t *testing.T) {
	r := RangeFromSeconds(0, 2.5)
	parts := r.Stride(FromSeconds(1.0, 600))

	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	wantSec := []float64{1.0, 1.0, 0.5}
	for i, p := range parts {
		if math.Abs(p.Duration.Seconds()-wantSec[i]) > 1e-9 {
			t.Fatalf("part %d: expected %fs, got %fs", i, wantSec[i], p.Duration.Seconds())
		}
	}

	// boşluksuz ve çakışmasız
	for i := 1; i < len(parts); i++ {
		if parts[i].Start.Cmp(parts[i-1].End()) != 0 {
			t.Fatalf("part %d does not start where part %d ends", i, i-1)
		}
	}
	if parts[len(parts)-1].End().Cmp(r.End()) != 0 {
		t.Fatal("last part does not end at range end")
	}
}

func TestStrideCeilCount(t *testing.T) {
	cases := []struct {
		duration float64
		step     float64
		want     int
	}{
		{10, 1, 10},
		{10, 3, 4},
		{1, 2, 1},
		{0.5, 0.5, 1},
	}
	for _, c := range cases {
		parts := RangeFromSeconds(0, c.duration).Stride(FromSeconds(c.step, 600))
		if len(parts) != c.want {
			t.Fatalf("duration %f step %f: expected %d parts, got %d", c.duration, c.step, c.want, len(parts))
		}
	}
}

func TestStrideRejectsNonPositiveStep(t *testing.T) {
	r := RangeFromSeconds(0, 5)
	if parts := r.Stride(Zero()); parts != nil {
		t.Fatalf("expected nil for zero step, got %d parts", len(parts))
	}
	if parts := r.Stride(New(-600, 600)); parts != nil {
		t.Fatalf("expected nil for negative step, got %d parts", len(parts))
	}
}

func TestOverlaps(t *testing.T) {
	a := RangeFromSeconds(0, 2)
	b := RangeFromSeconds(1, 2)
	c := RangeFromSeconds(2, 2)

	if !a.Overlaps(b) {
		t.Fatal("expected [0,2) and [1,3) to overlap")
	}
	if a.Overlaps(c) {
		t.Fatal("expected touching ranges not to overlap")
	}
}
