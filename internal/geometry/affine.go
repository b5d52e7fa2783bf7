package geometry

import (
	"fmt"
	"math"
)

// Size genişlik×yükseklik çiftidir.
type Size struct {
	Width  float64
	Height float64
}

// Swapped genişlik ve yüksekliği yer değiştirmiş boyutu döner.
func (s Size) Swapped() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// IsZero her iki kenarın da sıfır olup olmadığını kontrol eder.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect sol-alt köşe orijinli bir dikdörtgendir (CLI koordinat uzayı).
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Size dikdörtgenin boyutunu döner.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsValid kenarların pozitif olduğunu kontrol eder.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Affine 2×3 afin dönüşüm matrisidir. Satır-vektör konvansiyonu kullanılır:
//
//	[x' y'] = [x y] · |A  B|  + [TX TY]
//	                  |C  D|
//
// Yani p.Apply noktaya önce lineer kısmı, sonra ötelemeyi uygular.
type Affine struct {
	A, B, C, D float64
	TX, TY     float64
}

// Identity birim dönüşümü döner.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation (tx, ty) ötelemesini döner.
func Translation(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotation radyan cinsinden saat yönünün tersine dönme dönüşümünü döner.
func Rotation(radians float64) Affine {
	sin, cos := math.Sincos(radians)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// quarterTurn k çeyrek tur (k×90°) için kesin değerli dönme matrisi döner.
// math.Sin(π) tam sıfır olmadığından dört kanonik açı bu yoldan üretilir.
func quarterTurn(k int) Affine {
	switch ((k % 4) + 4) % 4 {
	case 1:
		return Affine{A: 0, B: 1, C: -1, D: 0}
	case 2:
		return Affine{A: -1, B: 0, C: 0, D: -1}
	case 3:
		return Affine{A: 0, B: -1, C: 1, D: 0}
	default:
		return Identity()
	}
}

// Mul iki dönüşümü birleştirir: önce t, sonra o uygulanır.
func (t Affine) Mul(o Affine) Affine {
	return Affine{
		A:  t.A*o.A + t.B*o.C,
		B:  t.A*o.B + t.B*o.D,
		C:  t.C*o.A + t.D*o.C,
		D:  t.C*o.B + t.D*o.D,
		TX: t.TX*o.A + t.TY*o.C + o.TX,
		TY: t.TX*o.B + t.TY*o.D + o.TY,
	}
}

// Apply dönüşümü bir noktaya uygular.
func (t Affine) Apply(x, y float64) (float64, float64) {
	return x*t.A + y*t.C + t.TX, x*t.B + y*t.D + t.TY
}

// IsIdentity birim dönüşüm mü kontrol eder.
func (t Affine) IsIdentity() bool {
	return t == Identity()
}

// LinearEqual iki dönüşümün 2×2 lineer kısımlarını karşılaştırır (öteleme hariç).
func (t Affine) LinearEqual(o Affine) bool {
	return t.A == o.A && t.B == o.B && t.C == o.C && t.D == o.D
}

func (t Affine) String() string {
	return fmt.Sprintf("[%g %g; %g %g; %g %g]", t.A, t.B, t.C, t.D, t.TX, t.TY)
}
