package operation

import (
	"context"
	"errors"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/render"
)

func TestRotate180KeepsSize(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	result, err := Rotate{Angle: 180}.Compose(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := result.Instruction
	if inst.RenderSize != (geometry.Size{Width: 1920, Height: 1080}) {
		t.Fatalf("expected 1920x1080, got %v", inst.RenderSize)
	}
	want := geometry.Affine{A: -1, B: 0, C: 0, D: -1, TX: 1920, TY: 1080}
	if len(inst.Layers) != 1 || inst.Layers[0].Transform != want {
		t.Fatalf("expected %v, got %+v", want, inst.Layers)
	}
	if inst.FrameRate != render.DefaultFrameRate {
		t.Fatalf("expected frame rate %d, got %d", render.DefaultFrameRate, inst.FrameRate)
	}
	if got := result.Composition.Duration().Seconds(); got != 10 {
		t.Fatalf("expected 10s composition, got %gs", got)
	}
}

func TestRotate90SwapsSize(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	result, err := Rotate{Angle: 90}.Compose(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Instruction.RenderSize != (geometry.Size{Width: 1080, Height: 1920}) {
		t.Fatalf("expected swapped size, got %v", result.Instruction.RenderSize)
	}
}

func TestRotateFractionalAngleFallsToIdentity(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	result, err := Rotate{Angle: 90.5}.Compose(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Instruction.Layers[0].Transform.IsIdentity() {
		t.Fatalf("expected identity, got %v", result.Instruction.Layers[0].Transform)
	}
	if result.Instruction.RenderSize != (geometry.Size{Width: 1920, Height: 1080}) {
		t.Fatalf("expected unchanged size, got %v", result.Instruction.RenderSize)
	}
}

func TestCropRenderSizeMatchesRect(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	result, err := Crop{Rect: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}}.Compose(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inst := result.Instruction
	if inst.RenderSize != (geometry.Size{Width: 100, Height: 100}) {
		t.Fatalf("expected 100x100, got %v", inst.RenderSize)
	}
	if inst.Crop == nil || inst.Crop.Width != 100 {
		t.Fatalf("expected crop rect on instruction, got %+v", inst.Crop)
	}
	if inst.Filter == nil {
		t.Fatal("expected frame filter for crop")
	}
}

func TestCropRejectsDegenerateRect(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	_, err := Crop{Rect: geometry.Rect{Width: 0, Height: 100}}.Compose(context.Background(), src)
	if !errors.Is(err, ErrParameter) {
		t.Fatalf("expected parameter error, got %v", err)
	}
}

func TestSpeedScalesCompositionDuration(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	result, err := Speed{Rate: 2}.Compose(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Composition.Duration().Seconds(); got != 5 {
		t.Fatalf("expected 5s, got %gs", got)
	}
	if got := result.Instruction.Range.Duration.Seconds(); got != 5 {
		t.Fatalf("expected instruction over 5s, got %gs", got)
	}
}

func TestSpeedOneIsNoop(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	result, err := Speed{Rate: 1}.Compose(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Composition.Duration().Seconds(); got != 10 {
		t.Fatalf("expected 10s, got %gs", got)
	}
}

func TestSpeedRejectsNonPositiveRate(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	for _, rate := range []float64{0, -1.5} {
		if _, err := (Speed{Rate: rate}).Compose(context.Background(), src); !errors.Is(err, ErrParameter) {
			t.Fatalf("rate %g: expected parameter error, got %v", rate, err)
		}
	}
}
