package render

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

type stubProber struct {
	meta media.Metadata
}

func (s stubProber) Probe(ctx context.Context, path string) (media.Metadata, error) {
	return s.meta, nil
}

func testSource(t *testing.T, durationSec float64, size geometry.Size, transform geometry.Affine) *media.Source {
	t.Helper()
	src := media.NewSource("/v/test.mp4", stubProber{meta: media.Metadata{
		Duration: avtime.FromSeconds(durationSec, 600),
		Tracks: []media.Track{
			{Type: media.TypeVideo, Index: 0, Codec: "h264", Size: size, Transform: transform},
			{Type: media.TypeAudio, Index: 0, Codec: "aac"},
		},
	}})
	if err := src.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return src
}

func fullComposition(t *testing.T, src *media.Source) *timeline.Composition {
	t.Helper()
	b := timeline.NewBuilder()
	if err := b.InsertFull(src, avtime.Zero()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	return b.Build()
}

func TestForRotation180KeepsSizeWithTranslation(t *testing.T) {
	src := testSource(t, 10, geometry.Size{Width: 1920, Height: 1080}, geometry.Identity())
	comp := fullComposition(t, src)

	inst := ForRotation(comp, src, 180)

	if inst.RenderSize != (geometry.Size{Width: 1920, Height: 1080}) {
		t.Fatalf("expected unchanged render size, got %v", inst.RenderSize)
	}
	if len(inst.Layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(inst.Layers))
	}
	want := geometry.Affine{A: -1, B: 0, C: 0, D: -1, TX: 1920, TY: 1080}
	if inst.Layers[0].Transform != want {
		t.Fatalf("expected %v, got %v", want, inst.Layers[0].Transform)
	}
	if inst.FrameRate != DefaultFrameRate {
		t.Fatalf("expected frame rate %d, got %d", DefaultFrameRate, inst.FrameRate)
	}
}

func TestForRotation90SwapsRenderSize(t *testing.T) {
	src := testSource(t, 10, geometry.Size{Width: 1920, Height: 1080}, geometry.Identity())
	comp := fullComposition(t, src)

	inst := ForRotation(comp, src, 90)
	if inst.RenderSize != (geometry.Size{Width: 1080, Height: 1920}) {
		t.Fatalf("expected swapped render size, got %v", inst.RenderSize)
	}
}

func TestForCompositionCorrectsPortrait(t *testing.T) {
	portrait := geometry.Affine{A: 0, B: 1, C: -1, D: 0, TX: 1080}
	src := testSource(t, 5, geometry.Size{Width: 1920, Height: 1080}, portrait)
	comp := fullComposition(t, src)

	inst := ForComposition(comp, src)

	if inst.RenderSize != (geometry.Size{Width: 1080, Height: 1920}) {
		t.Fatalf("expected portrait-corrected size, got %v", inst.RenderSize)
	}
	if inst.Layers[0].Transform.IsIdentity() {
		t.Fatal("expected a correcting transform for portrait source")
	}
}

func TestForCompositionLeavesLandscapeAlone(t *testing.T) {
	src := testSource(t, 5, geometry.Size{Width: 1920, Height: 1080}, geometry.Identity())
	comp := fullComposition(t, src)

	inst := ForComposition(comp, src)

	if inst.RenderSize != src.NaturalSize() {
		t.Fatalf("expected natural size, got %v", inst.RenderSize)
	}
	if !inst.Layers[0].Transform.IsIdentity() {
		t.Fatalf("expected identity transform, got %v", inst.Layers[0].Transform)
	}
	if inst.Range.Duration.Seconds() != 5 {
		t.Fatalf("expected instruction to span 5s, got %f", inst.Range.Duration.Seconds())
	}
}

func TestForCropUsesRectSize(t *testing.T) {
	src := testSource(t, 5, geometry.Size{Width: 1920, Height: 1080}, geometry.Identity())
	comp := fullComposition(t, src)

	inst := ForCrop(comp, src, geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})

	if inst.RenderSize != (geometry.Size{Width: 100, Height: 100}) {
		t.Fatalf("expected 100x100 render size, got %v", inst.RenderSize)
	}
	if inst.Crop == nil || inst.Filter == nil {
		t.Fatal("expected crop rect and frame filter to be set")
	}
}

func TestForCropTranslatesToOrigin(t *testing.T) {
	src := testSource(t, 5, geometry.Size{Width: 1920, Height: 1080}, geometry.Identity())
	comp := fullComposition(t, src)

	inst := ForCrop(comp, src, geometry.Rect{X: 200, Y: 150, Width: 640, Height: 360})

	x, y := inst.Layers[0].Transform.Apply(200, 150)
	if x != 0 || y != 0 {
		t.Fatalf("expected rect origin to map to (0,0), got (%g,%g)", x, y)
	}
}

func TestCropFilterCutsBottomLeftRect(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	marker := color.RGBA{R: 255, A: 255}
	// model uzayında (0,0) köşesi = piksel (0,3)
	frame.Set(0, 3, marker)

	filter := CropFilter(geometry.Rect{X: 0, Y: 0, Width: 2, Height: 2})
	out := filter(frame)

	if got := out.Bounds().Size(); got != (image.Point{X: 2, Y: 2}) {
		t.Fatalf("expected 2x2 output, got %v", got)
	}
	r, _, _, _ := out.At(0, 1).RGBA()
	if r == 0 {
		t.Fatal("expected marker pixel inside cropped frame")
	}
	r, _, _, _ = out.At(1, 0).RGBA()
	if r != 0 {
		t.Fatal("expected empty pixel outside marker")
	}
}

func TestFadeRampsUseFixedWindows(t *testing.T) {
	window := avtime.RangeFromSeconds(3, 4)
	ramps := FadeRamps(window)

	if len(ramps) != 2 {
		t.Fatalf("expected 2 ramps, got %d", len(ramps))
	}

	in, out := ramps[0], ramps[1]
	if in.From != 0 || in.To != 1 {
		t.Fatalf("expected fade-in 0→1, got %g→%g", in.From, in.To)
	}
	if in.Range.Start.Seconds() != 3 || in.Range.Duration.Seconds() != 1 {
		t.Fatalf("expected fade-in at 3s for 1s, got %v", in.Range)
	}
	if out.From != 1 || out.To != 0 {
		t.Fatalf("expected fade-out 1→0, got %g→%g", out.From, out.To)
	}
	if out.Range.Start.Seconds() != 7 || out.Range.Duration.Seconds() != 1 {
		t.Fatalf("expected fade-out at 7s for 1s, got %v", out.Range)
	}
}

func TestForOverlayBuildsTree(t *testing.T) {
	src := testSource(t, 10, geometry.Size{Width: 1280, Height: 720}, geometry.Identity())
	comp := fullComposition(t, src)

	content := image.NewRGBA(image.Rect(0, 0, 64, 64))
	inst := ForOverlay(comp, src, OverlayLayer{
		Kind:     OverlayImage,
		Content:  content,
		Position: PositionCenter,
		Window:   avtime.RangeFromSeconds(2, 5),
	})

	if inst.Overlay == nil {
		t.Fatal("expected overlay tree")
	}
	if len(inst.Overlay.Overlays) != 1 {
		t.Fatalf("expected one overlay layer, got %d", len(inst.Overlay.Overlays))
	}
	layer := inst.Overlay.Overlays[0]
	if len(layer.Opacity) != 2 {
		t.Fatalf("expected fade ramps on layer, got %d", len(layer.Opacity))
	}
	if inst.Overlay.Base.Type != media.TypeVideo {
		t.Fatal("expected base layer to reference the video track")
	}
}

func TestOverlayFontSize(t *testing.T) {
	if got := OverlayFontSize(24, 1920); math.Abs(got-120) > 1e-9 {
		t.Fatalf("expected 24 + 96 = 120, got %g", got)
	}
	if got := OverlayFontSize(0, 200); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected 10, got %g", got)
	}
}
