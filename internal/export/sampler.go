package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/imaging"
	"github.com/mlihgenel/avtools-cli/internal/render"
)

// FrameSampler kaynaktan verilen zaman noktalarındaki kareleri çözer,
// varsa kare filtresini uygular ve görsel dosyaları olarak yazar.
type FrameSampler struct {
	Decoder FrameDecoder
}

// SampleRequest bir kare örnekleme çalışmasının girdileridir.
type SampleRequest struct {
	SourcePath string
	Times      []avtime.Time
	Filter     render.FrameFilter
	OutputDir  string
	BaseName   string
	Format     string
	Quality    int
}

// Sample kareleri sırayla yazar ve oluşan dosya yollarını döner. Hata
// durumunda o ana kadar yazılmış dosyalar diskte kalır; dönen liste
// yalnızca başarıyla yazılanları içerir.
func (s *FrameSampler) Sample(ctx context.Context, req SampleRequest) ([]string, error) {
	if len(req.Times) == 0 {
		return nil, nil
	}

	format := imaging.NormalizeFormat(req.Format)
	if format == "" {
		format = "png"
	}

	if err := EnsureDir(req.OutputDir); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(req.Times))
	for i, at := range req.Times {
		frame, err := s.Decoder.DecodeFrame(ctx, req.SourcePath, at)
		if err != nil {
			return written, err
		}
		if req.Filter != nil {
			frame = req.Filter(frame)
		}

		name := fmt.Sprintf("%s_%03d.%s", req.BaseName, i+1, format)
		path := filepath.Join(req.OutputDir, name)
		if err := imaging.Encode(path, frame, format, req.Quality); err != nil {
			return written, fmt.Errorf("%w: %v", ErrFilesystem, err)
		}
		written = append(written, path)
	}

	return written, nil
}
