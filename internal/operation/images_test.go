package operation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/imaging"
)

func TestGenerateImagesFromStride(t *testing.T) {
	dir := t.TempDir()
	src := loadedSource(t, "video.mp4", avMeta(2.5, 1920, 1080))
	decoder := &stubDecoder{}

	op := GenerateImages{StrideSeconds: 1, OutputDir: dir, BaseName: "kare", Format: "png"}
	written, err := op.Run(context.Background(), src, &export.FrameSampler{Decoder: decoder})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(written))
	}
	if got := secondsOf(decoder.times); !reflect.DeepEqual(got, []float64{0, 1, 2}) {
		t.Fatalf("expected stride starts [0 1 2], got %v", got)
	}
}

func TestGenerateImagesExplicitTimesWin(t *testing.T) {
	dir := t.TempDir()
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))
	decoder := &stubDecoder{}

	op := GenerateImages{
		Times:         []avtime.Time{avtime.FromSeconds(7.5, avtime.DefaultTimescale)},
		StrideSeconds: 1,
		OutputDir:     dir,
		BaseName:      "kare",
	}
	written, err := op.Run(context.Background(), src, &export.FrameSampler{Decoder: decoder})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("explicit times must win over stride, got %d frames", len(written))
	}
	if got := decoder.times[0].Seconds(); got != 7.5 {
		t.Fatalf("expected frame at 7.5s, got %gs", got)
	}
}

func TestGenerateImagesRequiresTimesOrStride(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	op := GenerateImages{OutputDir: t.TempDir(), BaseName: "kare"}
	_, err := op.Run(context.Background(), src, &export.FrameSampler{Decoder: &stubDecoder{}})
	if !errors.Is(err, ErrParameter) {
		t.Fatalf("expected parameter error, got %v", err)
	}
}

func TestGenerateImagesRejectsUnknownFormat(t *testing.T) {
	src := loadedSource(t, "video.mp4", avMeta(10, 1920, 1080))

	op := GenerateImages{StrideSeconds: 1, OutputDir: t.TempDir(), BaseName: "kare", Format: "docx"}
	_, err := op.Run(context.Background(), src, &export.FrameSampler{Decoder: &stubDecoder{}})
	if !errors.Is(err, ErrParameter) {
		t.Fatalf("expected parameter error, got %v", err)
	}
}

func TestGenerateImagesAppliesCropRect(t *testing.T) {
	dir := t.TempDir()
	src := loadedSource(t, "video.mp4", avMeta(1, 1920, 1080))

	op := GenerateImages{
		StrideSeconds: 1,
		Rect:          &geometry.Rect{X: 0, Y: 0, Width: 4, Height: 2},
		OutputDir:     dir,
		BaseName:      "kare",
	}
	written, err := op.Run(context.Background(), src, &export.FrameSampler{Decoder: &stubDecoder{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h, err := imaging.DecodeConfig(written[0]); err != nil || w != 4 || h != 2 {
		t.Fatalf("expected cropped 4x2 frame, got %dx%d (%v)", w, h, err)
	}
}

func TestImagesToVideoBuildsSlideshowJob(t *testing.T) {
	dir := t.TempDir()
	writeImageFile(t, filepath.Join(dir, "b.png"), 20, 10)
	writeImageFile(t, filepath.Join(dir, "a.jpg"), 32, 16)
	if err := os.WriteFile(filepath.Join(dir, "notlar.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	renderer := &stubRenderer{}
	op := ImagesToVideo{
		Dir:        dir,
		OutputPath: filepath.Join(t.TempDir(), "slayt.mp4"),
		FileType:   "mp4",
	}
	resolved, skip, err := op.Run(context.Background(), export.NewExporter(renderer, export.ConflictVersioned))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skip {
		t.Fatal("fresh output must not skip")
	}
	if resolved != op.OutputPath {
		t.Fatalf("expected %s, got %s", op.OutputPath, resolved)
	}

	jobs := renderer.recorded()
	if len(jobs) != 1 || !jobs[0].IsSlideshow() {
		t.Fatalf("expected one slideshow job, got %+v", jobs)
	}

	job := jobs[0]
	wantStills := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}
	if !reflect.DeepEqual(job.Stills, wantStills) {
		t.Fatalf("expected lexicographic stills %v, got %v", wantStills, job.Stills)
	}
	if job.FrameSize != (geometry.Size{Width: 32, Height: 16}) {
		t.Fatalf("frame size must come from first image, got %v", job.FrameSize)
	}
	if job.StillSeconds != DefaultImageSeconds {
		t.Fatalf("expected default duration %g, got %g", DefaultImageSeconds, job.StillSeconds)
	}
}

func TestImagesToVideoCustomImageDuration(t *testing.T) {
	dir := t.TempDir()
	writeImageFile(t, filepath.Join(dir, "a.png"), 8, 8)

	renderer := &stubRenderer{}
	op := ImagesToVideo{
		Dir:          dir,
		ImageSeconds: 2.5,
		OutputPath:   filepath.Join(t.TempDir(), "slayt.mp4"),
		FileType:     "mp4",
	}
	if _, _, err := op.Run(context.Background(), export.NewExporter(renderer, export.ConflictVersioned)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := renderer.recorded()[0].StillSeconds; got != 2.5 {
		t.Fatalf("expected 2.5s per image, got %g", got)
	}
}

func TestImagesToVideoEmptyDirectory(t *testing.T) {
	op := ImagesToVideo{Dir: t.TempDir(), OutputPath: "slayt.mp4", FileType: "mp4"}
	_, _, err := op.Run(context.Background(), export.NewExporter(&stubRenderer{}, ""))
	if !errors.Is(err, export.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestImagesToVideoUnreadableDirectory(t *testing.T) {
	op := ImagesToVideo{Dir: filepath.Join(t.TempDir(), "yok"), OutputPath: "slayt.mp4", FileType: "mp4"}
	_, _, err := op.Run(context.Background(), export.NewExporter(&stubRenderer{}, ""))
	if !errors.Is(err, export.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}
