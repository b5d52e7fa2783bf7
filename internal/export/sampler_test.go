package export

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/imaging"
)

type stubDecoder struct {
	calls  int
	failAt int
	err    error
}

func (d *stubDecoder) DecodeFrame(ctx context.Context, path string, at avtime.Time) (image.Image, error) {
	d.calls++
	if d.failAt > 0 && d.calls >= d.failAt {
		return nil, d.err
	}
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func sampleTimes(n int) []avtime.Time {
	out := make([]avtime.Time, n)
	for i := range out {
		out[i] = avtime.New(int64(i)*600, 600)
	}
	return out
}

func TestSampleWritesNumberedFrames(t *testing.T) {
	dir := t.TempDir()
	sampler := &FrameSampler{Decoder: &stubDecoder{}}

	written, err := sampler.Sample(context.Background(), SampleRequest{
		SourcePath: "girdi.mp4",
		Times:      sampleTimes(3),
		OutputDir:  dir,
		BaseName:   "kare",
		Format:     "png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(written))
	}

	want := filepath.Join(dir, "kare_002.png")
	if written[1] != want {
		t.Fatalf("expected %s, got %s", want, written[1])
	}
	if w, h, err := imaging.DecodeConfig(written[0]); err != nil || w != 8 || h != 8 {
		t.Fatalf("expected 8x8 frame on disk, got %dx%d (%v)", w, h, err)
	}
}

func TestSampleAppliesFrameFilter(t *testing.T) {
	dir := t.TempDir()
	sampler := &FrameSampler{Decoder: &stubDecoder{}}

	crop := func(frame image.Image) image.Image {
		return frame.(*image.RGBA).SubImage(image.Rect(0, 0, 4, 2))
	}

	written, err := sampler.Sample(context.Background(), SampleRequest{
		SourcePath: "girdi.mp4",
		Times:      sampleTimes(1),
		Filter:     crop,
		OutputDir:  dir,
		BaseName:   "kare",
		Format:     "png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h, err := imaging.DecodeConfig(written[0]); err != nil || w != 4 || h != 2 {
		t.Fatalf("expected filtered 4x2 frame, got %dx%d (%v)", w, h, err)
	}
}

func TestSampleStopsOnDecodeError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("kare okunamadi")
	sampler := &FrameSampler{Decoder: &stubDecoder{failAt: 2, err: boom}}

	written, err := sampler.Sample(context.Background(), SampleRequest{
		SourcePath: "girdi.mp4",
		Times:      sampleTimes(3),
		OutputDir:  dir,
		BaseName:   "kare",
		Format:     "png",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("expected 1 frame before failure, got %d", len(written))
	}
}

func TestSampleDefaultsToPNG(t *testing.T) {
	dir := t.TempDir()
	sampler := &FrameSampler{Decoder: &stubDecoder{}}

	written, err := sampler.Sample(context.Background(), SampleRequest{
		SourcePath: "girdi.mp4",
		Times:      sampleTimes(1),
		OutputDir:  dir,
		BaseName:   "kare",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Ext(written[0]) != ".png" {
		t.Fatalf("expected png default, got %s", written[0])
	}
}

func TestSampleNoTimesNoWork(t *testing.T) {
	sampler := &FrameSampler{Decoder: &stubDecoder{failAt: 1, err: errors.New("unused")}}
	written, err := sampler.Sample(context.Background(), SampleRequest{OutputDir: t.TempDir()})
	if err != nil || written != nil {
		t.Fatalf("expected no-op, got %v / %v", written, err)
	}
}
