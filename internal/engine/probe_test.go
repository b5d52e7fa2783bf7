package engine

import (
	"strings"
	"testing"

	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

func TestParseProbeVideoWithAudio(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "10.000000"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080},
			{"codec_type": "audio", "codec_name": "aac"}
		]
	}`)

	meta, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := meta.Duration.Seconds(); got != 10 {
		t.Fatalf("expected 10s duration, got %g", got)
	}
	if len(meta.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(meta.Tracks))
	}

	video := meta.Tracks[0]
	if video.Type != media.TypeVideo || video.Codec != "h264" {
		t.Fatalf("unexpected video track: %+v", video)
	}
	if video.Size.Width != 1920 || video.Size.Height != 1080 {
		t.Fatalf("unexpected video size: %+v", video.Size)
	}
	if !video.Transform.IsIdentity() {
		t.Fatalf("unrotated stream must carry the identity transform, got %+v", video.Transform)
	}

	audio := meta.Tracks[1]
	if audio.Type != media.TypeAudio || audio.Codec != "aac" || audio.Index != 0 {
		t.Fatalf("unexpected audio track: %+v", audio)
	}
}

func TestParseProbeSideDataRotation(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "4.5"},
		"streams": [
			{"codec_type": "video", "codec_name": "hevc", "width": 1920, "height": 1080,
			 "side_data_list": [{"side_data_type": "Display Matrix", "rotation": -90}]}
		]
	}`)

	meta, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	tr := meta.Tracks[0].Transform
	if !geometry.OrientationOf(tr).IsPortrait() {
		t.Fatalf("displaymatrix -90 must map to a portrait transform, got %+v", tr)
	}

	want, _ := geometry.RotationTransform(90, geometry.Size{Width: 1920, Height: 1080})
	if tr != want {
		t.Fatalf("expected %+v, got %+v", want, tr)
	}
}

func TestParseProbeRotateTag(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "4.5"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720,
			 "tags": {"rotate": "90"}}
		]
	}`)

	meta, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !geometry.OrientationOf(meta.Tracks[0].Transform).IsPortrait() {
		t.Fatalf("rotate tag 90 must map to a portrait transform, got %+v", meta.Tracks[0].Transform)
	}
}

func TestParseProbeUpsideDown(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "1"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 640, "height": 480,
			 "side_data_list": [{"side_data_type": "Display Matrix", "rotation": 180}]}
		]
	}`)

	meta, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := geometry.OrientationOf(meta.Tracks[0].Transform); got != geometry.OrientationLandscapeLeft {
		t.Fatalf("180 degrees must map to landscape-left, got %s", got)
	}
}

func TestParseProbeDurationFromStreams(t *testing.T) {
	data := []byte(`{
		"format": {},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 320, "height": 240, "duration": "5.0"},
			{"codec_type": "audio", "codec_name": "mp3", "duration": "7.5"}
		]
	}`)

	meta, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := meta.Duration.Seconds(); got != 7.5 {
		t.Fatalf("expected the longest stream duration 7.5, got %g", got)
	}
}

func TestParseProbeSkipsDataStreams(t *testing.T) {
	data := []byte(`{
		"format": {"duration": "2"},
		"streams": [
			{"codec_type": "data", "codec_name": "bin_data"},
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "audio", "codec_name": "aac"}
		]
	}`)

	meta, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(meta.Tracks) != 2 {
		t.Fatalf("data streams must be skipped, got %d tracks", len(meta.Tracks))
	}
	if meta.Tracks[0].Index != 0 || meta.Tracks[1].Index != 1 {
		t.Fatalf("audio indices must count per type: %+v", meta.Tracks)
	}
}

func TestParseProbeNoStreams(t *testing.T) {
	if _, err := parseProbe([]byte(`{"format": {"duration": "3"}}`)); err == nil {
		t.Fatal("expected an error for a file with no streams")
	} else if !strings.Contains(err.Error(), "medya akışı bulunamadı") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseProbeGarbage(t *testing.T) {
	if _, err := parseProbe([]byte("bu json değil")); err == nil {
		t.Fatal("expected an error for malformed output")
	}
}

func TestStreamRotationSign(t *testing.T) {
	sideData := func(r float64) probeStream {
		return probeStream{SideDataList: []probeSideData{{SideDataType: "Display Matrix", Rotation: r}}}
	}

	if got := streamRotation(sideData(-90)); got != 90 {
		t.Fatalf("side data -90 must read as 90, got %g", got)
	}
	if got := streamRotation(sideData(90)); got != 270 {
		t.Fatalf("side data 90 must read as 270, got %g", got)
	}
	if got := streamRotation(probeStream{Tags: map[string]string{"rotate": "270"}}); got != 270 {
		t.Fatalf("rotate tag keeps its sign, got %g", got)
	}
	if got := streamRotation(probeStream{}); got != 0 {
		t.Fatalf("no rotation metadata must read as 0, got %g", got)
	}
}
