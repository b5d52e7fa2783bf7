package render

import (
	"image"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// DefaultFrameRate tüm render talimatlarında kullanılan sabit kare hızıdır.
// Kaynak kare hızından türetilmez; bilinçli bir sadeleştirmedir.
const DefaultFrameRate = 30

// DefaultFadeDuration bindirme katmanlarının görünme/kaybolma süresidir.
var DefaultFadeDuration = avtime.New(int64(avtime.DefaultTimescale), avtime.DefaultTimescale)

// overlayFontScale metin bindirmede render genişliğinden punto payı hesaplar.
const overlayFontScale = 0.05

// OverlayFontSize taban puntoya render genişliğine oranlı pay ekler.
func OverlayFontSize(base float64, renderWidth float64) float64 {
	return base + renderWidth*overlayFontScale
}

// FrameFilter tek kareye uygulanan bildirimsel filtredir (kırpma gibi).
// Kare örnekleme yolunda çözülen her kareye senkron uygulanır.
type FrameFilter func(image.Image) image.Image

// LayerTransform bir video parçasına uygulanan zaman damgalı afin dönüşümdür.
type LayerTransform struct {
	Track     media.Track
	Transform geometry.Affine
	At        avtime.Time
}

// Position bindirme katmanının tuval üzerindeki yerleşimidir.
type Position string

const (
	PositionCenter      Position = "center"
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// ValidPosition bilinen bir yerleşim mi kontrol eder.
func ValidPosition(p Position) bool {
	switch p {
	case PositionCenter, PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return true
	}
	return false
}

// OverlayKind bindirme içeriğinin türüdür.
type OverlayKind string

const (
	OverlayImage OverlayKind = "image"
	OverlayText  OverlayKind = "text"
)

// OpacityRamp bir zaman aralığında doğrusal saydamlık geçişidir.
type OpacityRamp struct {
	Range avtime.Range
	From  float64
	To    float64
}

// OverlayLayer tek bir bindirme katmanıdır. Content bir kez önceden
// rasterize edilir (çözülmüş görsel veya çizilmiş metin); kare başına
// yeniden üretilmez.
type OverlayLayer struct {
	Kind     OverlayKind
	Content  image.Image
	Position Position
	Window   avtime.Range
	Opacity  []OpacityRamp
}

// OverlayTree temel video katmanı + bindirme katmanlarından oluşan küçük
// sahne ağacıdır.
type OverlayTree struct {
	Base     media.Track
	Overlays []OverlayLayer
}

// Instruction bir kompozisyonun video parçaları için render talimatıdır:
// tüm süreyi kapsayan tek aralık, parça başına bir katman dönüşümü,
// render boyutu ve sabit kare hızı.
type Instruction struct {
	Range      avtime.Range
	Layers     []LayerTransform
	RenderSize geometry.Size
	FrameRate  int

	// Kırpma işlemi için dolu: Crop model uzayında (sol-alt orijin)
	// kırpma dikdörtgeni, Filter ise aynı kırpmayı kare örnekleme
	// yolunda uygulayan bildirimsel karşılığıdır.
	Crop   *geometry.Rect
	Filter FrameFilter

	Overlay *OverlayTree
}

// sourceLayers kompozisyondaki her video parçası için verilen dönüşümle
// birer katman üretir.
func sourceLayers(comp *timeline.Composition, transform geometry.Affine) []LayerTransform {
	var layers []LayerTransform
	for _, track := range comp.TracksOf(media.TypeVideo) {
		if len(track.Segments) == 0 {
			continue
		}
		layers = append(layers, LayerTransform{
			Track:     track.Segments[0].Source,
			Transform: transform,
			At:        avtime.Zero(),
		})
	}
	return layers
}

// orientationTransform kaynak portre ise 90° düzeltme dönüşümü ve düzeltilmiş
// boyutu, değilse birim dönüşüm ve doğal boyutu döner.
func orientationTransform(src *media.Source) (geometry.Affine, geometry.Size) {
	if src.Orientation().IsPortrait() {
		return geometry.RotationTransform(90, src.NaturalSize())
	}
	return geometry.Identity(), src.NaturalSize()
}

// ForComposition yönelim düzeltmeli varsayılan talimatı üretir: kompozisyonun
// tüm süresi, portre kaynaklar için 90° düzeltme, diğerleri için birim dönüşüm.
func ForComposition(comp *timeline.Composition, src *media.Source) *Instruction {
	transform, size := orientationTransform(src)
	return &Instruction{
		Range:      avtime.NewRange(avtime.Zero(), comp.Duration()),
		Layers:     sourceLayers(comp, transform),
		RenderSize: size,
		FrameRate:  DefaultFrameRate,
	}
}

// ForRotation kullanıcı açısıyla dönme talimatı üretir. Açı yorumdan geçmez;
// geometry.RotationTransform'un kesin durum sınırları geçerlidir.
func ForRotation(comp *timeline.Composition, src *media.Source, angleDegrees float64) *Instruction {
	transform, size := geometry.RotationTransform(angleDegrees, src.NaturalSize())
	return &Instruction{
		Range:      avtime.NewRange(avtime.Zero(), comp.Duration()),
		Layers:     sourceLayers(comp, transform),
		RenderSize: size,
		FrameRate:  DefaultFrameRate,
	}
}

// ForCrop kırpma talimatı üretir: render boyutu dikdörtgenin boyutu olur,
// katman dönüşümü içeriği dikdörtgenin orijinine taşır ve Filter aynı
// kırpmayı kare düzeyinde uygular.
func ForCrop(comp *timeline.Composition, src *media.Source, rect geometry.Rect) *Instruction {
	cropRect := rect
	return &Instruction{
		Range:      avtime.NewRange(avtime.Zero(), comp.Duration()),
		Layers:     sourceLayers(comp, geometry.Translation(-rect.X, -rect.Y)),
		RenderSize: rect.Size(),
		FrameRate:  DefaultFrameRate,
		Crop:       &cropRect,
		Filter:     CropFilter(rect),
	}
}

// ForOverlay bindirme talimatı üretir: yönelim düzeltmeli taban katman +
// saydamlık rampalarıyla tek bindirme katmanı.
func ForOverlay(comp *timeline.Composition, src *media.Source, layer OverlayLayer) *Instruction {
	inst := ForComposition(comp, src)

	layer.Opacity = FadeRamps(layer.Window)

	tree := &OverlayTree{Overlays: []OverlayLayer{layer}}
	if tracks := comp.TracksOf(media.TypeVideo); len(tracks) > 0 && len(tracks[0].Segments) > 0 {
		tree.Base = tracks[0].Segments[0].Source
	}
	inst.Overlay = tree
	return inst
}

// FadeRamps bindirme penceresi için saydamlık rampalarını üretir:
// pencere başında DefaultFadeDuration boyunca 0→1, pencere sonundan
// itibaren DefaultFadeDuration boyunca 1→0.
func FadeRamps(window avtime.Range) []OpacityRamp {
	return []OpacityRamp{
		{Range: avtime.NewRange(window.Start, DefaultFadeDuration), From: 0, To: 1},
		{Range: avtime.NewRange(window.End(), DefaultFadeDuration), From: 1, To: 0},
	}
}

// CropFilter dikdörtgeni kesip orijine taşıyan kare filtresi döner.
// Model uzayı sol-alt orijinlidir; piksel uzayı üst-sol orijinli olduğundan
// dikey eksen burada çevrilir.
func CropFilter(rect geometry.Rect) FrameFilter {
	return func(frame image.Image) image.Image {
		bounds := frame.Bounds()

		x0 := bounds.Min.X + int(rect.X)
		y0 := bounds.Max.Y - int(rect.Y+rect.Height)
		crop := image.Rect(0, 0, int(rect.Width), int(rect.Height))

		out := image.NewRGBA(crop)
		for y := 0; y < crop.Dy(); y++ {
			for x := 0; x < crop.Dx(); x++ {
				out.Set(x, y, frame.At(x0+x, y0+y))
			}
		}
		return out
	}
}
