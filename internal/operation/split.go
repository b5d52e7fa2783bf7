package operation

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

// Split kaynağı sabit uzunluklu segmentlere böler ve her segmenti ayrı bir
// dosyaya paralel dışa aktarır. Segment dosya adları tam saniye cinsinden
// başlangıç zamanıyla numaralanır. Bir segmentin hatası kardeşlerini
// durdurmaz; sonuç özeti segment başına toplanır.
type Split struct {
	SegmentSeconds float64
	OutputDir      string
	BaseName       string
	FileType       string
	Quality        int
}

func (op Split) Name() string { return "split" }

func (op Split) Run(ctx context.Context, src *media.Source, exp *export.Exporter, pool *export.Pool) ([]export.SegmentResult, export.Summary, error) {
	if op.SegmentSeconds <= 0 {
		return nil, export.Summary{}, fmt.Errorf("%w: segment süresi pozitif olmalı: %g", ErrParameter, op.SegmentSeconds)
	}

	step := avtime.FromSeconds(op.SegmentSeconds, avtime.DefaultTimescale)
	full := avtime.NewRange(avtime.Zero(), src.Duration())
	ranges := full.Stride(step)
	if len(ranges) == 0 {
		return nil, export.Summary{}, fmt.Errorf("%w: bölünecek aralık yok", ErrParameter)
	}

	if err := export.EnsureDir(op.OutputDir); err != nil {
		return nil, export.Summary{}, err
	}

	jobs := make([]export.SegmentJob, 0, len(ranges))
	for i, r := range ranges {
		name := fmt.Sprintf("%s_%03d.%s", op.BaseName, int(r.Start.Seconds()), op.FileType)
		path := filepath.Join(op.OutputDir, name)

		resolved, skip, err := export.ResolveOutputConflict(path, exp.Conflict)
		if err != nil {
			return nil, export.Summary{}, err
		}

		job := export.SegmentJob{Index: i, InputPath: src.Path(), Range: r, OutputPath: resolved}
		if skip {
			job.SkipReason = "çıktı dosyası mevcut"
		}
		jobs = append(jobs, job)
	}

	started := time.Now()
	results := pool.Execute(ctx, jobs, func(ctx context.Context, job export.SegmentJob) error {
		clip := job.Range
		return exp.Renderer.Render(ctx, export.Job{
			SourcePath: src.Path(),
			Clip:       &clip,
			OutputPath: job.OutputPath,
			FileType:   op.FileType,
			Quality:    op.Quality,
		})
	})
	summary := export.Summarize(results, time.Since(started))

	if summary.Failed > 0 {
		return results, summary, fmt.Errorf("%d/%d segment dışa aktarılamadı: %w", summary.Failed, summary.Total, firstError(results))
	}
	return results, summary, nil
}

func firstError(results []export.SegmentResult) error {
	lowest := -1
	var err error
	for _, r := range results {
		if r.Error == nil {
			continue
		}
		if lowest < 0 || r.Job.Index < lowest {
			lowest = r.Job.Index
			err = r.Error
		}
	}
	if err == nil {
		err = fmt.Errorf("bilinmeyen segment hatası")
	}
	return err
}
