package operation

import (
	"context"
	"fmt"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/imaging"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// OverlayImage videonun üzerine bir görseli bindirir. Görsel bir kez çözülür;
// pencere başında görünür, sonunda kaybolur.
type OverlayImage struct {
	ImagePath string
	Start     avtime.Time
	Duration  avtime.Time
	Position  render.Position
}

func (op OverlayImage) Name() string { return "overlay-image" }

func (op OverlayImage) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	comp, err := fullComposition(src)
	if err != nil {
		return nil, err
	}

	window, err := overlayWindow(op.Start, op.Duration, comp.Duration())
	if err != nil {
		return nil, err
	}

	pos, err := resolvePosition(op.Position)
	if err != nil {
		return nil, err
	}

	content, err := imaging.Decode(op.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: bindirme görseli açılamadı: %v", ErrParameter, err)
	}

	layer := render.OverlayLayer{
		Kind:     render.OverlayImage,
		Content:  content,
		Position: pos,
		Window:   window,
	}
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForOverlay(comp, src, layer),
	}, nil
}

// OverlayText videonun üzerine metin bindirir. Metin bir kez rasterize
// edilir; punto, taban değere render genişliğine oranlı pay eklenerek
// hesaplanır.
type OverlayText struct {
	Text     string
	Color    string
	FontSize float64
	Start    avtime.Time
	Duration avtime.Time
	Position render.Position
}

func (op OverlayText) Name() string { return "overlay-text" }

func (op OverlayText) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	comp, err := fullComposition(src)
	if err != nil {
		return nil, err
	}

	window, err := overlayWindow(op.Start, op.Duration, comp.Duration())
	if err != nil {
		return nil, err
	}

	pos, err := resolvePosition(op.Position)
	if err != nil {
		return nil, err
	}

	col, err := imaging.ParseHexColor(op.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParameter, err)
	}

	base := op.FontSize
	if base <= 0 {
		base = DefaultBaseFontSize
	}

	inst := render.ForComposition(comp, src)
	size := render.OverlayFontSize(base, inst.RenderSize.Width)

	content, err := imaging.RasterizeText(op.Text, col, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParameter, err)
	}

	layer := render.OverlayLayer{
		Kind:     render.OverlayText,
		Content:  content,
		Position: pos,
		Window:   window,
	}
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForOverlay(comp, src, layer),
	}, nil
}

// OverlaySound ana kaynağın üzerine ikinci bir ses akışı bindirir. Bindirme
// ayrı bir ses parçasına eklenir; hacim zarfı simetrik aç/kapa rampasıdır.
type OverlaySound struct {
	Overlay *media.Source
	Start   avtime.Time
}

func (op OverlaySound) Name() string { return "overlay-sound" }

func (op OverlaySound) Compose(ctx context.Context, src *media.Source) (*ComposeResult, error) {
	if op.Overlay == nil || !op.Overlay.Loaded() {
		return nil, fmt.Errorf("%w: bindirme sesi yüklenmedi", ErrParameter)
	}
	if op.Start.Value < 0 {
		return nil, fmt.Errorf("%w: bindirme başlangıcı negatif olamaz", ErrParameter)
	}

	overlayTrack, ok := op.Overlay.FirstTrack(media.TypeAudio)
	if !ok {
		return nil, fmt.Errorf("%w: bindirme dosyasında ses akışı yok: %s", ErrParameter, op.Overlay.Path())
	}

	comp, err := fullComposition(src)
	if err != nil {
		return nil, err
	}

	// Talimat bindirme parçası eklenmeden kurulur: video uzunluğu ana
	// kaynağın süresidir, bindirme kuyruğu görüntüyü uzatmaz.
	inst := render.ForComposition(comp, src)

	overlayRange := avtime.NewRange(avtime.Zero(), op.Overlay.Duration())
	err = comp.AddTrack(media.TypeAudio).Insert(timeline.Segment{
		Source:      overlayTrack,
		SourceRange: overlayRange,
		At:          op.Start,
		Duration:    overlayRange.Duration,
	})
	if err != nil {
		return nil, err
	}

	window := avtime.NewRange(op.Start, op.Overlay.Duration())
	mix := render.MixForSoundOverlay(overlayTrack, window, src.Duration())

	return &ComposeResult{
		Composition: comp,
		Instruction: inst,
		Mix:         mix,
	}, nil
}

func resolvePosition(pos render.Position) (render.Position, error) {
	if pos == "" {
		return render.PositionCenter, nil
	}
	if !render.ValidPosition(pos) {
		return "", fmt.Errorf("%w: bilinmeyen yerleşim: %s", ErrParameter, pos)
	}
	return pos, nil
}
