package geometry

import "testing"

func TestRotationTransform90SwapsSize(t *testing.T) {
	size := Size{Width: 1920, Height: 1080}

	for _, angle := range []float64{90, -270, 450} {
		transform, newSize := RotationTransform(angle, size)

		if newSize != (Size{Width: 1080, Height: 1920}) {
			t.Fatalf("angle %g: expected swapped size, got %v", angle, newSize)
		}
		want := Affine{A: 0, B: 1, C: -1, D: 0, TX: 1080, TY: 0}
		if transform != want {
			t.Fatalf("angle %g: expected %v, got %v", angle, want, transform)
		}
	}
}

func TestRotationTransform180KeepsSize(t *testing.T) {
	size := Size{Width: 1920, Height: 1080}

	for _, angle := range []float64{180, -180, 540} {
		transform, newSize := RotationTransform(angle, size)

		if newSize != size {
			t.Fatalf("angle %g: expected unchanged size, got %v", angle, newSize)
		}
		// translate(1920,1080)∘rotate(π)
		want := Affine{A: -1, B: 0, C: 0, D: -1, TX: 1920, TY: 1080}
		if transform != want {
			t.Fatalf("angle %g: expected %v, got %v", angle, want, transform)
		}
	}
}

func TestRotationTransform270SwapsSize(t *testing.T) {
	size := Size{Width: 1920, Height: 1080}

	for _, angle := range []float64{270, -90} {
		transform, newSize := RotationTransform(angle, size)

		if newSize != (Size{Width: 1080, Height: 1920}) {
			t.Fatalf("angle %g: expected swapped size, got %v", angle, newSize)
		}
		want := Affine{A: 0, B: -1, C: 1, D: 0, TX: 0, TY: 1920}
		if transform != want {
			t.Fatalf("angle %g: expected %v, got %v", angle, want, transform)
		}
	}
}

func TestRotationTransformFallsThroughToIdentity(t *testing.T) {
	size := Size{Width: 640, Height: 480}

	for _, angle := range []float64{0, 360, -360, 45, 90.5, 179.999} {
		transform, newSize := RotationTransform(angle, size)

		if !transform.IsIdentity() {
			t.Fatalf("angle %g: expected identity, got %v", angle, transform)
		}
		if newSize != size {
			t.Fatalf("angle %g: expected unchanged size, got %v", angle, newSize)
		}
	}
}

func TestRotationTransformMapsCornersIntoFrame(t *testing.T) {
	size := Size{Width: 1920, Height: 1080}
	transform, newSize := RotationTransform(90, size)

	corners := [][2]float64{{0, 0}, {1920, 0}, {1920, 1080}, {0, 1080}}
	for _, c := range corners {
		x, y := transform.Apply(c[0], c[1])
		if x < 0 || x > newSize.Width || y < 0 || y > newSize.Height {
			t.Fatalf("corner (%g,%g) mapped outside frame: (%g,%g)", c[0], c[1], x, y)
		}
	}
}

func TestOrientationOf(t *testing.T) {
	cases := []struct {
		name string
		in   Affine
		want Orientation
	}{
		{"identity", Identity(), OrientationLandscapeRight},
		{"rotated 180", Affine{A: -1, B: 0, C: 0, D: -1}, OrientationLandscapeLeft},
		{"portrait", Affine{A: 0, B: 1, C: -1, D: 0, TX: 1080}, OrientationPortraitUp},
		{"portrait down", Affine{A: 0, B: -1, C: 1, D: 0}, OrientationPortraitDown},
		{"scaled oddball", Affine{A: 0.5, B: 0.7, C: -0.7, D: 0.5}, OrientationPortraitUp},
	}

	for _, c := range cases {
		if got := OrientationOf(c.in); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestOrientationIsPortrait(t *testing.T) {
	if !OrientationPortraitUp.IsPortrait() || !OrientationPortraitDown.IsPortrait() {
		t.Fatal("expected portrait orientations to report portrait")
	}
	if OrientationLandscapeRight.IsPortrait() || OrientationLandscapeLeft.IsPortrait() {
		t.Fatal("expected landscape orientations not to report portrait")
	}
}

func TestAffineMulOrder(t *testing.T) {
	// önce döndür sonra ötele: (0,0) → döndürmeden etkilenmez → (5,7)
	m := Rotation(0).Mul(Translation(5, 7))
	x, y := m.Apply(0, 0)
	if x != 5 || y != 7 {
		t.Fatalf("expected (5,7), got (%g,%g)", x, y)
	}

	// quarterTurn(1): (x,y) → (-y,x); ardından (10,0) ötelemesi
	m = quarterTurn(1).Mul(Translation(10, 0))
	x, y = m.Apply(0, 4)
	if x != 6 || y != 0 {
		t.Fatalf("expected (6,0), got (%g,%g)", x, y)
	}
}
