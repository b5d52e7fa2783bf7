package engine

import (
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/render"
)

// filterStep tek bir video filtresinin adı ve argüman dizgisidir.
type filterStep struct {
	Name string
	Args string
}

// transposeSteps katman dönüşümünün lineer kısmını ffmpeg filtrelerine
// çevirir. Yalnızca dört kanonik çeyrek tur sınıfı tanınır; birim dönüşüm
// ve tanınmayan matrisler filtre üretmez.
func transposeSteps(t geometry.Affine) []filterStep {
	switch {
	case t.LinearEqual(geometry.Affine{A: 0, B: 1, C: -1, D: 0}):
		return []filterStep{{Name: "transpose", Args: "1"}}
	case t.LinearEqual(geometry.Affine{A: -1, B: 0, C: 0, D: -1}):
		return []filterStep{{Name: "hflip"}, {Name: "vflip"}}
	case t.LinearEqual(geometry.Affine{A: 0, B: -1, C: 1, D: 0}):
		return []filterStep{{Name: "transpose", Args: "2"}}
	default:
		return nil
	}
}

// cropArgs kırpma dikdörtgenini crop filtresi argümanına çevirir. Model
// uzayı sol-alt orijinlidir; ffmpeg üst-sol saydığından dikey eksen ih
// ifadesiyle çevrilir.
func cropArgs(rect geometry.Rect) string {
	return fmt.Sprintf("%s:%s:%s:ih-%s",
		formatFloat(rect.Width), formatFloat(rect.Height),
		formatFloat(rect.X), formatFloat(rect.Y+rect.Height))
}

// setptsArgs tempo çarpanını video zaman damgası ifadesine çevirir
// (tempo 2 = iki kat hızlı = yarı PTS).
func setptsArgs(tempo float64) string {
	return formatFloat(1/tempo) + "*PTS"
}

// atempoChain tempo çarpanını atempo filtre zincirine böler. Tek atempo
// [0.5, 2] aralığıyla sınırlıdır; aralık dışı çarpanlar sınır değerlerin
// çarpımı olarak zincirlenir.
func atempoChain(tempo float64) []float64 {
	if tempo <= 0 || tempo == 1 {
		return nil
	}

	var chain []float64
	rest := tempo
	for rest > 2 {
		chain = append(chain, 2)
		rest /= 2
	}
	for rest < 0.5 {
		chain = append(chain, 0.5)
		rest /= 0.5
	}
	return append(chain, rest)
}

// fadeArgs saydamlık rampasını fade filtre argümanına çevirir. Artan rampa
// görünme, azalan rampa kaybolmadır; alpha=1 yalnızca saydamlığı değiştirir.
func fadeArgs(r render.OpacityRamp) string {
	direction := "in"
	if r.From > r.To {
		direction = "out"
	}
	return fmt.Sprintf("t=%s:st=%s:d=%s:alpha=1",
		direction, formatFloat(r.Range.Start.Seconds()), formatFloat(r.Range.Duration.Seconds()))
}

// afadeArgs hacim rampasını afade filtre argümanına çevirir.
func afadeArgs(r render.VolumeRamp) string {
	direction := "in"
	if r.From > r.To {
		direction = "out"
	}
	return fmt.Sprintf("t=%s:st=%s:d=%s",
		direction, formatFloat(r.Range.Start.Seconds()), formatFloat(r.Range.Duration.Seconds()))
}

// adelayArgs segmentin çizelge başlangıcını milisaniyelik adelay argümanına
// çevirir; all=1 tüm kanalları birlikte kaydırır.
func adelayArgs(at avtime.Time) string {
	return fmt.Sprintf("%d:all=1", int64(at.Seconds()*1000+0.5))
}

// amixArgs n girişli karışım argümanını üretir. duration=first çıktıyı ana
// parçanın süresine sabitler; normalize=0 ana sesin kısılmasını önler.
func amixArgs(inputs int) string {
	return fmt.Sprintf("inputs=%d:duration=first:dropout_transition=0:normalize=0", inputs)
}

// overlayPosition yerleşimi overlay filtresi için x:y ifadesine çevirir.
func overlayPosition(p render.Position) string {
	switch p {
	case render.PositionTopLeft:
		return "0:0"
	case render.PositionTopRight:
		return "main_w-overlay_w:0"
	case render.PositionBottomLeft:
		return "0:main_h-overlay_h"
	case render.PositionBottomRight:
		return "main_w-overlay_w:main_h-overlay_h"
	default:
		return "(main_w-overlay_w)/2:(main_h-overlay_h)/2"
	}
}

// overlayEnable katmanın görünür olduğu aralığı döner. Kaybolma rampası
// pencere sonundan sonra bittiği için aralık son rampanın sonuna uzar.
func overlayEnable(layer render.OverlayLayer) string {
	start := layer.Window.Start
	end := layer.Window.End()
	for _, ramp := range layer.Opacity {
		if rampEnd := ramp.Range.End(); rampEnd.Cmp(end) > 0 {
			end = rampEnd
		}
	}
	return fmt.Sprintf("between(t,%s,%s)", formatFloat(start.Seconds()), formatFloat(end.Seconds()))
}

// evenSize boyutu libx264'ün gerektirdiği çift piksel değerlerine indirger.
func evenSize(s geometry.Size) (int, int) {
	w := int(s.Width)
	if w%2 != 0 {
		w--
	}
	h := int(s.Height)
	if h%2 != 0 {
		h--
	}
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

// concatListing hareketsiz görüntüler için concat demuxer listesi üretir.
// Son görüntü süresiz yinelenir; demuxer son duration satırını yoksaydığından
// kapanış karesi böyle sağlanır.
func concatListing(stills []string, seconds float64) string {
	var b strings.Builder
	for _, path := range stills {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(path))
		fmt.Fprintf(&b, "duration %s\n", formatFloat(seconds))
	}
	if len(stills) > 0 {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(stills[len(stills)-1]))
	}
	return b.String()
}

func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

// videoOutputArgs hedef kap ve kaliteye göre çıktı parametrelerini döner.
func videoOutputArgs(fileType string, quality int) ffmpeg.KwArgs {
	crf := videoCRF(quality)

	switch fileType {
	case "webm":
		webmCRF := crf + 6
		if webmCRF > 40 {
			webmCRF = 40
		}
		return ffmpeg.KwArgs{
			"c:v":    "libvpx-vp9",
			"crf":    webmCRF,
			"b:v":    "0",
			"row-mt": "1",
			"c:a":    "libopus",
			"b:a":    "128k",
		}
	case "avi":
		return ffmpeg.KwArgs{
			"c:v": "mpeg4",
			"q:v": videoQScale(quality),
			"c:a": "mp3",
			"b:a": "192k",
		}
	case "mp4", "m4v", "mov":
		return ffmpeg.KwArgs{
			"c:v":      "libx264",
			"crf":      crf,
			"preset":   "medium",
			"pix_fmt":  "yuv420p",
			"movflags": "+faststart",
			"c:a":      "aac",
			"b:a":      "128k",
		}
	default: // mkv ve diğer h264 uyumlu kapsayıcılar
		return ffmpeg.KwArgs{
			"c:v":     "libx264",
			"crf":     crf,
			"preset":  "medium",
			"pix_fmt": "yuv420p",
			"c:a":     "aac",
			"b:a":     "128k",
		}
	}
}

// audioOutputArgs hedef ses formatı ve kaliteye göre çıktı parametrelerini
// döner.
func audioOutputArgs(fileType string, quality int) ffmpeg.KwArgs {
	bitrate := audioBitrate(quality)

	switch fileType {
	case "mp3":
		return ffmpeg.KwArgs{"c:a": "libmp3lame", "b:a": bitrate}
	case "wav":
		return ffmpeg.KwArgs{"c:a": "pcm_s16le"} // kayıpsız
	case "ogg":
		return ffmpeg.KwArgs{"c:a": "libvorbis", "b:a": bitrate}
	case "flac":
		return ffmpeg.KwArgs{"c:a": "flac"} // kayıpsız
	case "aac", "m4a":
		return ffmpeg.KwArgs{"c:a": "aac", "b:a": bitrate}
	default:
		return ffmpeg.KwArgs{"b:a": bitrate}
	}
}

// isAudioFormat hedef format ses kabı mı kontrol eder.
func isAudioFormat(fileType string) bool {
	switch fileType {
	case "mp3", "wav", "ogg", "flac", "aac", "m4a":
		return true
	}
	return false
}

func videoCRF(quality int) int {
	if quality <= 0 {
		return 23
	}
	switch {
	case quality <= 25:
		return 30
	case quality <= 50:
		return 27
	case quality <= 75:
		return 24
	default:
		return 20
	}
}

func videoQScale(quality int) int {
	if quality <= 0 {
		return 5
	}
	switch {
	case quality <= 25:
		return 8
	case quality <= 50:
		return 6
	case quality <= 75:
		return 4
	default:
		return 2
	}
}

func audioBitrate(quality int) string {
	if quality <= 0 {
		return "192k"
	}
	switch {
	case quality <= 25:
		return "96k"
	case quality <= 50:
		return "128k"
	case quality <= 75:
		return "192k"
	default:
		return "320k"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
