package operation

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/imaging"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

type stubProber struct {
	metas map[string]media.Metadata
}

func (p *stubProber) Probe(ctx context.Context, path string) (media.Metadata, error) {
	meta, ok := p.metas[path]
	if !ok {
		return media.Metadata{}, fmt.Errorf("bilinmeyen dosya: %s", path)
	}
	return meta, nil
}

func avMeta(durationSec, width, height float64) media.Metadata {
	return media.Metadata{
		Duration: avtime.FromSeconds(durationSec, avtime.DefaultTimescale),
		Tracks: []media.Track{
			{Type: media.TypeVideo, Index: 0, Codec: "h264", Size: geometry.Size{Width: width, Height: height}, Transform: geometry.Identity()},
			{Type: media.TypeAudio, Index: 0, Codec: "aac"},
		},
	}
}

func audioMeta(durationSec float64) media.Metadata {
	return media.Metadata{
		Duration: avtime.FromSeconds(durationSec, avtime.DefaultTimescale),
		Tracks:   []media.Track{{Type: media.TypeAudio, Index: 0, Codec: "aac"}},
	}
}

func videoMeta(durationSec, width, height float64) media.Metadata {
	return media.Metadata{
		Duration: avtime.FromSeconds(durationSec, avtime.DefaultTimescale),
		Tracks: []media.Track{
			{Type: media.TypeVideo, Index: 0, Codec: "h264", Size: geometry.Size{Width: width, Height: height}, Transform: geometry.Identity()},
		},
	}
}

func loadedSource(t *testing.T, path string, meta media.Metadata) *media.Source {
	t.Helper()
	src := media.NewSource(path, &stubProber{metas: map[string]media.Metadata{path: meta}})
	if err := src.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return src
}

func writeImageFile(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := imaging.Encode(path, img, imaging.DetectFormat(path), 0); err != nil {
		t.Fatalf("image write failed: %v", err)
	}
}

// stubRenderer paralel segment işlerinde de güvenli basit sahte backend.
type stubRenderer struct {
	mu   sync.Mutex
	jobs []export.Job
	fail map[string]error
}

func (r *stubRenderer) Render(ctx context.Context, job export.Job) error {
	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()

	if err := r.fail[job.OutputPath]; err != nil {
		return err
	}
	return os.WriteFile(job.OutputPath, []byte("out"), 0644)
}

func (r *stubRenderer) recorded() []export.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]export.Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

type stubDecoder struct {
	mu    sync.Mutex
	times []avtime.Time
}

func (d *stubDecoder) DecodeFrame(ctx context.Context, path string, at avtime.Time) (image.Image, error) {
	d.mu.Lock()
	d.times = append(d.times, at)
	d.mu.Unlock()
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func secondsOf(times []avtime.Time) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = t.Seconds()
	}
	return out
}

func tempFilePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
