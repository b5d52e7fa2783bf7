package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

// probeOutput ffprobe'un -show_format -show_streams JSON çıktısının
// kullanılan kısmıdır.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecType    string            `json:"codec_type"`
	CodecName    string            `json:"codec_name"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Duration     string            `json:"duration"`
	Tags         map[string]string `json:"tags"`
	SideDataList []probeSideData   `json:"side_data_list"`
}

type probeSideData struct {
	SideDataType string  `json:"side_data_type"`
	Rotation     float64 `json:"rotation"`
}

// Probe dosyanın süre ve akış bilgisini ffprobe ile okur. Hatalar sarmalanmaz;
// media.Source.Load bunları yükleme hatası olarak işaretler.
func (e *Engine) Probe(ctx context.Context, path string) (media.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return media.Metadata{}, err
	}
	if _, err := e.findFFprobe(); err != nil {
		return media.Metadata{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return media.Metadata{}, fmt.Errorf("dosya bulunamadı: %s", path)
	}

	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return media.Metadata{}, fmt.Errorf("ffprobe hatası: %v", err)
	}
	return parseProbe([]byte(raw))
}

// parseProbe ffprobe JSON çıktısını medya metaverisine dönüştürür.
func parseProbe(data []byte) (media.Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return media.Metadata{}, fmt.Errorf("ffprobe çıktısı çözümlenemedi: %v", err)
	}
	if len(out.Streams) == 0 {
		return media.Metadata{}, fmt.Errorf("medya akışı bulunamadı")
	}

	meta := media.Metadata{Duration: probeDuration(out)}

	videoIdx, audioIdx := 0, 0
	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			size := geometry.Size{Width: float64(s.Width), Height: float64(s.Height)}
			meta.Tracks = append(meta.Tracks, media.Track{
				Type:      media.TypeVideo,
				Index:     videoIdx,
				Codec:     s.CodecName,
				Size:      size,
				Transform: displayTransform(streamRotation(s), size),
			})
			videoIdx++
		case "audio":
			meta.Tracks = append(meta.Tracks, media.Track{
				Type:  media.TypeAudio,
				Index: audioIdx,
				Codec: s.CodecName,
			})
			audioIdx++
		}
	}

	return meta, nil
}

// probeDuration süreyi önce kapsayıcıdan, yoksa en uzun akıştan okur.
func probeDuration(out probeOutput) avtime.Time {
	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil && d > 0 {
		return avtime.FromSeconds(d, avtime.DefaultTimescale)
	}

	longest := 0.0
	for _, s := range out.Streams {
		if d, err := strconv.ParseFloat(s.Duration, 64); err == nil && d > longest {
			longest = d
		}
	}
	if longest > 0 {
		return avtime.FromSeconds(longest, avtime.DefaultTimescale)
	}
	return avtime.Zero()
}

// streamRotation akışın görüntüleme açısını derece olarak döner. Yeni
// kaplar açıyı displaymatrix yan verisinde taşır (işaret ffmpeg'de terstir);
// eski kaplar rotate etiketini kullanır.
func streamRotation(s probeStream) float64 {
	for _, sd := range s.SideDataList {
		if sd.Rotation != 0 {
			return normalizeAngle(-sd.Rotation)
		}
	}
	if tag, ok := s.Tags["rotate"]; ok {
		if r, err := strconv.ParseFloat(tag, 64); err == nil {
			return normalizeAngle(r)
		}
	}
	return 0
}

func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// displayTransform açıyı görüntüleme dönüşümüne çevirir. Sıfır açı birim
// dönüşümdür; dik olmayan açılar RotationTransform'da birim dönüşüme düşer.
func displayTransform(angle float64, size geometry.Size) geometry.Affine {
	if angle == 0 {
		return geometry.Identity()
	}
	transform, _ := geometry.RotationTransform(angle, size)
	return transform
}
