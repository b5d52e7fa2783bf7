package operation

import (
	"context"
	"fmt"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// Rotate videoyu verilen açıyla döndürür. Yalnızca çeyrek dönüşler boyut
// ve dönüşüm üretir; diğer tüm açılar birim dönüşüme düşer.
type Rotate struct {
	Angle float64
}

func (op Rotate) Name() string { return "rotate" }

func (op Rotate) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	comp, err := fullComposition(src)
	if err != nil {
		return nil, err
	}
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForRotation(comp, src, op.Angle),
	}, nil
}

// Crop videoyu verilen dikdörtgene kırpar. Dikdörtgen sol-alt orijinli
// model uzayında verilir; render boyutu dikdörtgenin boyutu olur.
type Crop struct {
	Rect geometry.Rect
}

func (op Crop) Name() string { return "crop" }

func (op Crop) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	if !op.Rect.IsValid() {
		return nil, fmt.Errorf("%w: geçersiz kırpma dikdörtgeni: %+v", ErrParameter, op.Rect)
	}

	comp, err := fullComposition(src)
	if err != nil {
		return nil, err
	}
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForCrop(comp, src, op.Rect),
	}, nil
}

// Speed oynatma hızını değiştirir: çizelge süresi süre × (1/hız) olur.
// Hız 1'den büyükse çıktı kısalır, küçükse uzar.
type Speed struct {
	Rate float64
}

func (op Speed) Name() string { return "speed" }

func (op Speed) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	if op.Rate <= 0 {
		return nil, fmt.Errorf("%w: hız çarpanı pozitif olmalı: %g", ErrParameter, op.Rate)
	}

	b := timeline.NewBuilder()
	full := avtime.NewRange(avtime.Zero(), src.Duration())
	if err := b.InsertScaled(src, full, avtime.Zero(), 1/op.Rate); err != nil {
		return nil, err
	}

	comp := b.Build()
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForComposition(comp, src),
	}, nil
}
