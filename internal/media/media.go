package media

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
)

// Type bir parçanın medya türüdür.
type Type string

const (
	TypeVideo Type = "video"
	TypeAudio Type = "audio"
)

// Track bir kaynak dosyadaki tek bir akışı temsil eden taşınabilir tanıtıcıdır.
// Index akışın kendi türü içindeki sırasıdır (ffmpeg "v:0", "a:1" seçicileriyle
// aynı sayım).
type Track struct {
	Path  string
	Type  Type
	Index int
	Codec string

	// Yalnızca video akışları için doludur.
	Size      geometry.Size
	Transform geometry.Affine
}

// Metadata bir prober'ın tek seferde döndürdüğü kaynak bilgisidir.
type Metadata struct {
	Duration avtime.Time
	Tracks   []Track
}

// Prober bir medya dosyasının süre ve akış bilgisini okur.
// Üretimde ffprobe tabanlı engine implementasyonu kullanılır; testler
// sahte prober verir.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

// VideoExtensions ve AudioExtensions araç genelinde tanınan kapsayıcı
// uzantılarıdır (birleştirme taraması ve izleme modu bunları kullanır).
var (
	VideoExtensions = []string{".mp4", ".mov", ".m4v", ".avi", ".mkv", ".webm"}
	AudioExtensions = []string{".mp3", ".wav", ".m4a", ".aac", ".flac", ".ogg"}
)

// IsVideoPath dosya uzantısı bilinen bir video kabı mı kontrol eder.
func IsVideoPath(path string) bool {
	return hasExtension(path, VideoExtensions)
}

// IsAudioPath dosya uzantısı bilinen bir ses kabı mı kontrol eder.
func IsAudioPath(path string) bool {
	return hasExtension(path, AudioExtensions)
}

// IsMediaPath video veya ses kabı mı kontrol eder.
func IsMediaPath(path string) bool {
	return IsVideoPath(path) || IsAudioPath(path)
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
