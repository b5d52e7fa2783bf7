package timeline

import (
	"fmt"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

// Builder bir kompozisyonu kaynak parçalardan adım adım kurar. Her türün
// ilk kaynak akışı kullanılır; türü hiç olmayan kaynaklar o tür için
// sessizce atlanır (ses parçası olmayan video → kompozisyonda ses yok).
type Builder struct {
	comp *Composition
}

// NewBuilder boş bir kompozisyonla kurucu oluşturur.
func NewBuilder() *Builder {
	return &Builder{comp: New()}
}

// Insert kaynağın verilen aralığını her medya türü için hedef zamana ekler.
func (b *Builder) Insert(src *media.Source, sourceRange avtime.Range, at avtime.Time) error {
	return b.insert(src, sourceRange, at, sourceRange.Duration)
}

// InsertScaled kaynağın aralığını hedef zamana, çizelge süresi verilen
// çarpanla ölçeklenmiş olarak ekler. Hız değişimi için çarpan 1/hız'dır:
// hız > 1 süreyi kısaltır, hız < 1 uzatır.
func (b *Builder) InsertScaled(src *media.Source, sourceRange avtime.Range, at avtime.Time, factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("%w: geçersiz zaman ölçeği çarpanı: %g", ErrComposition, factor)
	}
	return b.insert(src, sourceRange, at, sourceRange.Duration.ScaledBy(factor))
}

// InsertType yalnızca verilen türdeki akışı ekler (video/ses ayıklama).
func (b *Builder) InsertType(src *media.Source, t media.Type, sourceRange avtime.Range, at avtime.Time) error {
	track, ok := src.FirstTrack(t)
	if !ok {
		return nil
	}
	return b.comp.EnsureTrack(t).Insert(Segment{
		Source:      track,
		SourceRange: sourceRange,
		At:          at,
		Duration:    sourceRange.Duration,
	})
}

// InsertFull kaynağın tamamını hedef zamana ekler.
func (b *Builder) InsertFull(src *media.Source, at avtime.Time) error {
	return b.Insert(src, avtime.NewRange(avtime.Zero(), src.Duration()), at)
}

func (b *Builder) insert(src *media.Source, sourceRange avtime.Range, at avtime.Time, duration avtime.Time) error {
	for _, t := range []media.Type{media.TypeVideo, media.TypeAudio} {
		track, ok := src.FirstTrack(t)
		if !ok {
			continue
		}
		err := b.comp.EnsureTrack(t).Insert(Segment{
			Source:      track,
			SourceRange: sourceRange,
			At:          at,
			Duration:    duration,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Build kurulan kompozisyonu döner. Dönen kompozisyon artık kurucuya ait
// değildir ve değiştirilmemelidir.
func (b *Builder) Build() *Composition {
	return b.comp
}
