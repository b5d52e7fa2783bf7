package timeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

type stubProber struct {
	meta media.Metadata
}

func (s stubProber) Probe(ctx context.Context, path string) (media.Metadata, error) {
	return s.meta, nil
}

func loadedSource(t *testing.T, path string, durationSec float64, withAudio bool) *media.Source {
	t.Helper()

	tracks := []media.Track{
		{Type: media.TypeVideo, Index: 0, Codec: "h264", Size: geometry.Size{Width: 1280, Height: 720}, Transform: geometry.Identity()},
	}
	if withAudio {
		tracks = append(tracks, media.Track{Type: media.TypeAudio, Index: 0, Codec: "aac"})
	}

	src := media.NewSource(path, stubProber{meta: media.Metadata{
		Duration: avtime.FromSeconds(durationSec, 600),
		Tracks:   tracks,
	}})
	if err := src.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return src
}

func TestInsertFullCopiesBothTrackTypes(t *testing.T) {
	b := NewBuilder()
	src := loadedSource(t, "/v/a.mp4", 8, true)

	if err := b.InsertFull(src, avtime.Zero()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	comp := b.Build()
	if !comp.HasTrack(media.TypeVideo) || !comp.HasTrack(media.TypeAudio) {
		t.Fatal("expected video and audio tracks")
	}
	if got := comp.Duration().Seconds(); got != 8 {
		t.Fatalf("expected 8s composition, got %f", got)
	}

	seg := comp.Track(media.TypeVideo).Segments[0]
	if seg.SourceRange.Start.Value != 0 || seg.SourceRange.Duration.Seconds() != 8 {
		t.Fatalf("expected whole source range, got %v", seg.SourceRange)
	}
}

func TestMissingAudioIsSilentlySkipped(t *testing.T) {
	b := NewBuilder()
	src := loadedSource(t, "/v/mute.mp4", 5, false)

	if err := b.InsertFull(src, avtime.Zero()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	comp := b.Build()
	if comp.HasTrack(media.TypeAudio) {
		t.Fatal("expected no audio track for silent source")
	}
	if !comp.HasTrack(media.TypeVideo) {
		t.Fatal("expected video track")
	}
}

func TestMergeOffsetsAreCumulative(t *testing.T) {
	durations := []float64{3, 5, 2.5}
	b := NewBuilder()

	cursor := avtime.Zero()
	for i, d := range durations {
		src := loadedSource(t, "/v/clip.mp4", d, true)
		if err := b.InsertFull(src, cursor); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
		cursor = cursor.Add(src.Duration())
	}

	comp := b.Build()
	if got := comp.Duration().Seconds(); math.Abs(got-10.5) > 1e-9 {
		t.Fatalf("expected total 10.5s, got %f", got)
	}

	segs := comp.Track(media.TypeVideo).Segments
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	wantOffsets := []float64{0, 3, 8}
	for i, seg := range segs {
		if math.Abs(seg.At.Seconds()-wantOffsets[i]) > 1e-9 {
			t.Fatalf("segment %d: expected offset %fs, got %fs", i, wantOffsets[i], seg.At.Seconds())
		}
	}
}

func TestInsertScaledChangesTimelineDuration(t *testing.T) {
	src := loadedSource(t, "/v/a.mp4", 10, true)

	b := NewBuilder()
	full := avtime.NewRange(avtime.Zero(), src.Duration())
	if err := b.InsertScaled(src, full, avtime.Zero(), 1.0/2.0); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	comp := b.Build()
	if got := comp.Duration().Seconds(); got != 5 {
		t.Fatalf("expected 5s after 2x speed, got %f", got)
	}

	seg := comp.Track(media.TypeVideo).Segments[0]
	if !seg.IsScaled() {
		t.Fatal("expected segment to report scaling")
	}
	if tempo := seg.Tempo(); math.Abs(tempo-2.0) > 1e-9 {
		t.Fatalf("expected tempo 2.0, got %f", tempo)
	}
}

func TestInsertScaledFactorOneIsNoOp(t *testing.T) {
	src := loadedSource(t, "/v/a.mp4", 7, false)

	b := NewBuilder()
	full := avtime.NewRange(avtime.Zero(), src.Duration())
	if err := b.InsertScaled(src, full, avtime.Zero(), 1.0); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	comp := b.Build()
	if got := comp.Duration().Seconds(); got != 7 {
		t.Fatalf("expected unchanged 7s, got %f", got)
	}
	if comp.Track(media.TypeVideo).Segments[0].IsScaled() {
		t.Fatal("expected factor 1.0 to keep segment unscaled")
	}
}

func TestInsertScaledRejectsNonPositiveFactor(t *testing.T) {
	src := loadedSource(t, "/v/a.mp4", 7, false)
	b := NewBuilder()
	full := avtime.NewRange(avtime.Zero(), src.Duration())

	for _, factor := range []float64{0, -1} {
		err := b.InsertScaled(src, full, avtime.Zero(), factor)
		if !errors.Is(err, ErrComposition) {
			t.Fatalf("factor %g: expected ErrComposition, got %v", factor, err)
		}
	}
}

func TestOverlappingInsertFails(t *testing.T) {
	src := loadedSource(t, "/v/a.mp4", 4, false)
	b := NewBuilder()

	if err := b.InsertFull(src, avtime.Zero()); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := b.InsertFull(src, avtime.FromSeconds(2, 600))
	if !errors.Is(err, ErrComposition) {
		t.Fatalf("expected ErrComposition for overlap, got %v", err)
	}
}

func TestNegativeInsertionOffsetFails(t *testing.T) {
	src := loadedSource(t, "/v/a.mp4", 4, false)
	b := NewBuilder()

	err := b.InsertFull(src, avtime.New(-600, 600))
	if !errors.Is(err, ErrComposition) {
		t.Fatalf("expected ErrComposition for negative offset, got %v", err)
	}
}

func TestInsertTypeCopiesSingleType(t *testing.T) {
	src := loadedSource(t, "/v/a.mp4", 6, true)
	b := NewBuilder()

	full := avtime.NewRange(avtime.Zero(), src.Duration())
	if err := b.InsertType(src, media.TypeAudio, full, avtime.Zero()); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	comp := b.Build()
	if comp.HasTrack(media.TypeVideo) {
		t.Fatal("expected no video track")
	}
	if !comp.HasTrack(media.TypeAudio) {
		t.Fatal("expected audio track")
	}
}

func TestTrackRejectsWrongSegmentType(t *testing.T) {
	track := &Track{Type: media.TypeVideo}
	err := track.Insert(Segment{
		Source:      media.Track{Type: media.TypeAudio},
		SourceRange: avtime.RangeFromSeconds(0, 1),
		Duration:    avtime.FromSeconds(1, 600),
	})
	if !errors.Is(err, ErrComposition) {
		t.Fatalf("expected ErrComposition, got %v", err)
	}
}
