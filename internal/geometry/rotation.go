package geometry

import "math"

// RotationTransform verilen açı (derece) ve kaynak boyut için dönme dönüşümü
// ile sonuç boyutunu hesaplar. Açı önce mod 360 indirgenir (negatifler
// katlanır, ör. -270 ≡ 90). Yalnızca dik açılar desteklenir; dört durum
// dışındaki her açı (kesirli değerler dahil) bilinçli olarak birim
// dönüşüme düşer.
func RotationTransform(angleDegrees float64, original Size) (Affine, Size) {
	angle := math.Mod(angleDegrees, 360)
	if angle < 0 {
		angle += 360
	}

	switch angle {
	case 90:
		// çerçeve döndükten sonra yükseklik kadar sağa taşınır
		transform := quarterTurn(1).Mul(Translation(original.Height, 0))
		return transform, original.Swapped()
	case 180:
		transform := quarterTurn(2).Mul(Translation(original.Width, original.Height))
		return transform, original
	case 270:
		transform := quarterTurn(3).Mul(Translation(0, original.Width))
		return transform, original.Swapped()
	default:
		return Identity(), original
	}
}

// Orientation bir kaynağın görüntüleme yönelimini sınıflandırır.
type Orientation int

const (
	OrientationPortraitUp Orientation = iota
	OrientationPortraitDown
	OrientationLandscapeRight
	OrientationLandscapeLeft
)

// OrientationOf görüntüleme dönüşümünün 2×2 lineer kısmını dört kanonik
// sınıfla karşılaştırır. Hiçbirine uymayan dönüşümler (ör. döndürülmüş ve
// ölçeklenmiş bir matris) en yakın genel sınıf olarak portre kabul edilir;
// bu bir sezgisel sınıflandırmadır, genel bir matris ayrıştırması değildir.
func OrientationOf(t Affine) Orientation {
	switch {
	case t.LinearEqual(Affine{A: 1, B: 0, C: 0, D: 1}):
		return OrientationLandscapeRight
	case t.LinearEqual(Affine{A: -1, B: 0, C: 0, D: -1}):
		return OrientationLandscapeLeft
	case t.LinearEqual(Affine{A: 0, B: -1, C: 1, D: 0}):
		return OrientationPortraitDown
	case t.LinearEqual(Affine{A: 0, B: 1, C: -1, D: 0}):
		return OrientationPortraitUp
	default:
		// kanonik olmayan dönüşümler muhafazakar biçimde portre sayılır
		return OrientationPortraitUp
	}
}

// IsPortrait dikey yönelimlerden biri mi kontrol eder.
func (o Orientation) IsPortrait() bool {
	return o == OrientationPortraitUp || o == OrientationPortraitDown
}

func (o Orientation) String() string {
	switch o {
	case OrientationPortraitUp:
		return "portrait"
	case OrientationPortraitDown:
		return "portrait-down"
	case OrientationLandscapeRight:
		return "landscape"
	case OrientationLandscapeLeft:
		return "landscape-left"
	default:
		return "unknown"
	}
}
