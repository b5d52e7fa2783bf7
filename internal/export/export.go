package export

import (
	"context"
	"errors"
	"image"
	"path/filepath"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// ErrFilesystem çıktı dizini/dosyası ile ilgili sert hataların sınıfıdır.
var ErrFilesystem = errors.New("dosya sistemi hatası")

// Job render backend'ine verilen tek bir dışa aktarım işidir. Üç biçimi
// vardır: kompozisyon tabanlı (Composition dolu), doğrudan aralık
// (SourcePath + Clip dolu; trim ve split bu yolu kullanır, kompozisyon
// kurulmaz) ve hareketsiz görüntü dizisi (Stills dolu; images-to-video).
type Job struct {
	Composition *timeline.Composition
	Instruction *render.Instruction
	Mix         *render.AudioMix

	SourcePath string
	Clip       *avtime.Range

	Stills       []string
	StillSeconds float64
	FrameSize    geometry.Size

	OutputPath string
	FileType   string
	Quality    int
}

// IsClip işin doğrudan aralık biçiminde olup olmadığını söyler.
func (j Job) IsClip() bool {
	return j.Clip != nil && j.SourcePath != ""
}

// IsSlideshow işin görüntü dizisi biçiminde olup olmadığını söyler.
func (j Job) IsSlideshow() bool {
	return len(j.Stills) > 0
}

// Renderer bir Job'u çıktı dosyasına render eden backend yüzeyidir.
type Renderer interface {
	Render(ctx context.Context, job Job) error
}

// FrameDecoder kaynaktan belirli bir zamandaki kareyi çözen backend yüzeyidir.
type FrameDecoder interface {
	DecodeFrame(ctx context.Context, path string, at avtime.Time) (image.Image, error)
}

// Exporter çakışma politikasını uygulayıp işi renderer'a teslim eder.
type Exporter struct {
	Renderer Renderer
	Conflict string
}

func NewExporter(r Renderer, conflict string) *Exporter {
	return &Exporter{Renderer: r, Conflict: conflict}
}

// Export çıktı yolunu politikaya göre çözer, dizini hazırlar ve render eder.
// skip=true dönerse iş hiç çalıştırılmamıştır (dosya mevcut, policy=skip).
func (e *Exporter) Export(ctx context.Context, job Job) (resolvedPath string, skip bool, err error) {
	resolvedPath, skip, err = ResolveOutputConflict(job.OutputPath, e.Conflict)
	if err != nil {
		return "", false, err
	}
	if skip {
		return resolvedPath, true, nil
	}

	if err := EnsureDir(filepath.Dir(resolvedPath)); err != nil {
		return "", false, err
	}

	job.OutputPath = resolvedPath
	if err := e.Renderer.Render(ctx, job); err != nil {
		return "", false, err
	}
	return resolvedPath, false, nil
}
