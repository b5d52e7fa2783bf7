package operation

import (
	"context"
	"fmt"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// Trim kaynaktan tek bir aralığı dışa aktarım için işaretler. Tam
// kompozisyon kurulmaz; aralık backend'e doğrudan verilir. Kaynak sonunu
// aşan aralık sona kırpılır.
type Trim struct {
	Range avtime.Range
}

func (op Trim) Name() string { return "trim" }

func (op Trim) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	if op.Range.Start.Value < 0 {
		return nil, fmt.Errorf("%w: başlangıç negatif olamaz", ErrParameter)
	}
	if !op.Range.IsValid() || op.Range.Duration.IsZero() {
		return nil, fmt.Errorf("%w: geçersiz kesme aralığı", ErrParameter)
	}
	if op.Range.Start.Cmp(src.Duration()) >= 0 {
		return nil, fmt.Errorf("%w: başlangıç (%s) kaynak süresinin dışında", ErrParameter, op.Range.Start)
	}

	clip := op.Range
	if clip.End().Cmp(src.Duration()) > 0 {
		clip.Duration = src.Duration().Sub(clip.Start)
	}

	return &ComposeResult{
		Clip: &Clip{SourcePath: src.Path(), Range: clip},
	}, nil
}

// ExtractVideo yalnızca video akışını içeren bir kompozisyon kurar;
// yönelim düzeltmeli talimat eşlik eder.
type ExtractVideo struct{}

func (op ExtractVideo) Name() string { return "extract-video" }

func (op ExtractVideo) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	b := timeline.NewBuilder()
	full := avtime.NewRange(avtime.Zero(), src.Duration())
	if err := b.InsertType(src, media.TypeVideo, full, avtime.Zero()); err != nil {
		return nil, err
	}

	comp := b.Build()
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForComposition(comp, src),
	}, nil
}

// ExtractAudio yalnızca ses akışını içeren bir kompozisyon kurar; ses için
// dönüşüm uygulanmadığından talimat üretilmez.
type ExtractAudio struct{}

func (op ExtractAudio) Name() string { return "extract-audio" }

func (op ExtractAudio) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	b := timeline.NewBuilder()
	full := avtime.NewRange(avtime.Zero(), src.Duration())
	if err := b.InsertType(src, media.TypeAudio, full, avtime.Zero()); err != nil {
		return nil, err
	}

	return &ComposeResult{Composition: b.Build()}, nil
}
