package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/imaging"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
)

// DefaultImageSeconds görüntüden video kurarken görüntü başına varsayılan
// gösterim süresidir.
const DefaultImageSeconds = 1.0

// GenerateImages kaynaktan belirli anlarda kare görüntüleri üretir. Açık
// zaman listesi adım süresine her zaman baskındır; ikisi de verilmezse
// parametre hatasıdır.
type GenerateImages struct {
	Times         []avtime.Time
	StrideSeconds float64
	Rect          *geometry.Rect
	OutputDir     string
	BaseName      string
	Format        string
	Quality       int
}

func (op GenerateImages) Name() string { return "images" }

func (op GenerateImages) Run(ctx context.Context, src *media.Source, sampler *export.FrameSampler) ([]string, error) {
	times := op.Times
	if len(times) == 0 {
		if op.StrideSeconds <= 0 {
			return nil, fmt.Errorf("%w: --times veya --stride verilmeli", ErrParameter)
		}
		step := avtime.FromSeconds(op.StrideSeconds, avtime.DefaultTimescale)
		full := avtime.NewRange(avtime.Zero(), src.Duration())
		for _, r := range full.Stride(step) {
			times = append(times, r.Start)
		}
	}

	format := imaging.NormalizeFormat(op.Format)
	if format == "" {
		format = "png"
	}
	if !imaging.IsWritableFormat(format) {
		return nil, fmt.Errorf("%w: desteklenmeyen görsel formatı: %s (desteklenen: %s)",
			ErrParameter, op.Format, strings.Join(imaging.WritableFormats(), ", "))
	}

	var filter render.FrameFilter
	if op.Rect != nil {
		if !op.Rect.IsValid() {
			return nil, fmt.Errorf("%w: geçersiz kırpma dikdörtgeni: %+v", ErrParameter, *op.Rect)
		}
		filter = render.CropFilter(*op.Rect)
	}

	return sampler.Sample(ctx, export.SampleRequest{
		SourcePath: src.Path(),
		Times:      times,
		Filter:     filter,
		OutputDir:  op.OutputDir,
		BaseName:   op.BaseName,
		Format:     format,
		Quality:    op.Quality,
	})
}

// stillExtensions görüntüden video kurarken kabul edilen kaynak uzantılarıdır.
var stillExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// ImagesToVideo bir dizindeki hareketsiz görüntülerden video kurar. Dizin
// sözlük sırasıyla taranır; ilk görüntünün piksel boyutları çıktının kare
// boyutu olur. Boş veya okunamayan dizin sert hatadır.
type ImagesToVideo struct {
	Dir          string
	ImageSeconds float64
	OutputPath   string
	FileType     string
	Quality      int
}

func (op ImagesToVideo) Name() string { return "video-from-images" }

func (op ImagesToVideo) Run(ctx context.Context, exp *export.Exporter) (string, bool, error) {
	entries, err := os.ReadDir(op.Dir)
	if err != nil {
		return "", false, fmt.Errorf("%w: dizin okunamadı: %v", export.ErrFilesystem, err)
	}

	var stills []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if stillExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			stills = append(stills, filepath.Join(op.Dir, e.Name()))
		}
	}
	if len(stills) == 0 {
		return "", false, fmt.Errorf("%w: dizinde görüntü dosyası yok: %s", export.ErrFilesystem, op.Dir)
	}

	w, h, err := imaging.DecodeConfig(stills[0])
	if err != nil {
		return "", false, fmt.Errorf("%w: ilk görüntü okunamadı: %v", export.ErrFilesystem, err)
	}

	seconds := op.ImageSeconds
	if seconds <= 0 {
		seconds = DefaultImageSeconds
	}

	return exp.Export(ctx, export.Job{
		Stills:       stills,
		StillSeconds: seconds,
		FrameSize:    geometry.Size{Width: float64(w), Height: float64(h)},
		OutputPath:   op.OutputPath,
		FileType:     op.FileType,
		Quality:      op.Quality,
	})
}
