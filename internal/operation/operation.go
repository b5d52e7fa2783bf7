package operation

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// ErrParameter eksik veya çelişen operasyon parametrelerinin hata sınıfıdır.
var ErrParameter = errors.New("geçersiz parametre")

// DefaultBaseFontSize metin bindirmede taban puntodur; render genişliğine
// oranlı pay üstüne eklenir.
const DefaultBaseFontSize = 24.0

// ComposeResult bir operasyonun değişmez çıktısıdır: kurulan kompozisyon,
// varsa render talimatı ve ses karışımı. Clip doluysa tam kompozisyon
// kurulmamıştır; tek aralık doğrudan dışa aktarılır (trim).
type ComposeResult struct {
	Composition *timeline.Composition
	Instruction *render.Instruction
	Mix         *render.AudioMix
	Clip        *Clip
}

// Clip kompozisyon kurulmadan dışa aktarılacak tek kaynak aralığıdır.
type Clip struct {
	SourcePath string
	Range      avtime.Range
}

// Composer tek bir yüklenmiş kaynaktan kompozisyon üreten operasyonların
// ortak yüzüdür. Kapalı bir kümedir; CLI tüm varyantları statik sayar.
type Composer interface {
	Name() string
	Compose(ctx context.Context, src *media.Source) (*ComposeResult, error)
}

// fullComposition kaynağın tamamını sıfır ofsetle içeren kompozisyonu kurar.
func fullComposition(src *media.Source) (*timeline.Composition, error) {
	b := timeline.NewBuilder()
	if err := b.InsertFull(src, avtime.Zero()); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// overlayWindow bindirme penceresini doğrular ve kompozisyon süresine
// oturtur. Süre sıfırsa pencere kompozisyon sonuna kadar uzar; sonu aşan
// pencere sona kırpılır.
func overlayWindow(start, duration, total avtime.Time) (avtime.Range, error) {
	if start.Value < 0 {
		return avtime.Range{}, fmt.Errorf("%w: bindirme başlangıcı negatif olamaz", ErrParameter)
	}
	if start.Cmp(total) >= 0 {
		return avtime.Range{}, fmt.Errorf("%w: bindirme başlangıcı süreyi aşıyor: %s", ErrParameter, start)
	}
	if duration.IsZero() {
		duration = total.Sub(start)
	}
	if duration.Value < 0 {
		return avtime.Range{}, fmt.Errorf("%w: bindirme süresi negatif olamaz", ErrParameter)
	}

	window := avtime.NewRange(start, duration)
	if window.End().Cmp(total) > 0 {
		window.Duration = total.Sub(start)
	}
	return window, nil
}
