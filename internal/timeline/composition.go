package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

// ErrComposition zaman çizelgesi kurulurken oluşan hataların ortak türüdür.
// Ekleme hataları sessizce yutulmaz; yarım kalmış bir kompozisyon üretmek
// yerine işlem iptal edilir.
var ErrComposition = errors.New("kompozisyon hatası")

// Segment bir kaynak akışın belirli bir aralığının zaman çizelgesine
// yerleştirilmiş halidir. Duration, SourceRange.Duration'dan farklıysa
// segment zamana ölçeklenmiş demektir (hız değişimi).
type Segment struct {
	Source      media.Track
	SourceRange avtime.Range
	At          avtime.Time
	Duration    avtime.Time
}

// Range segmentin zaman çizelgesindeki aralığını döner.
func (s Segment) Range() avtime.Range {
	return avtime.Range{Start: s.At, Duration: s.Duration}
}

// IsScaled segmentin zamana ölçeklenip ölçeklenmediğini kontrol eder.
func (s Segment) IsScaled() bool {
	return s.Duration.Cmp(s.SourceRange.Duration) != 0
}

// Tempo kaynak süresinin çizelge süresine oranını döner; hız değişiminde
// ffmpeg atempo çarpanıyla aynı değerdir (2.0 = iki kat hızlı).
func (s Segment) Tempo() float64 {
	timeline := s.Duration.Seconds()
	if timeline == 0 {
		return 1
	}
	return s.SourceRange.Duration.Seconds() / timeline
}

// Track kompozisyonda tek türden segmentlerin sıralı listesidir.
// Segmentler hedef zamanda asla çakışmaz.
type Track struct {
	Type     media.Type
	Segments []Segment
}

// Insert segmenti parçaya ekler. Geçersiz aralıklar ve hedef zamanda
// çakışma kompozisyon hatası döner.
func (t *Track) Insert(seg Segment) error {
	if !seg.SourceRange.IsValid() || seg.Duration.Value < 0 {
		return fmt.Errorf("%w: negatif süreli segment", ErrComposition)
	}
	if seg.At.Value < 0 {
		return fmt.Errorf("%w: negatif ekleme noktası", ErrComposition)
	}
	if seg.Source.Type != t.Type {
		return fmt.Errorf("%w: %s parçasına %s segmenti eklenemez", ErrComposition, t.Type, seg.Source.Type)
	}

	for _, existing := range t.Segments {
		if existing.Range().Overlaps(seg.Range()) {
			return fmt.Errorf("%w: segment %s mevcut segmentle çakışıyor", ErrComposition, seg.Range().Start)
		}
	}

	t.Segments = append(t.Segments, seg)
	sort.SliceStable(t.Segments, func(i, j int) bool {
		return t.Segments[i].At.Cmp(t.Segments[j].At) < 0
	})
	return nil
}

// Duration parçanın son segmentinin bittiği zamanı döner.
func (t *Track) Duration() avtime.Time {
	end := avtime.Zero()
	for _, seg := range t.Segments {
		if segEnd := seg.Range().End(); segEnd.Cmp(end) > 0 {
			end = segEnd
		}
	}
	return end
}

// Composition bellekte kurulan çok parçalı zaman çizelgesidir.
// Exporter'a verildikten sonra değiştirilmemelidir.
type Composition struct {
	tracks []*Track
}

// New boş bir kompozisyon oluşturur.
func New() *Composition {
	return &Composition{}
}

// AddTrack verilen türde yeni bir parça ekler ve döner.
func (c *Composition) AddTrack(t media.Type) *Track {
	track := &Track{Type: t}
	c.tracks = append(c.tracks, track)
	return track
}

// Track verilen türdeki ilk parçayı döner; yoksa nil. "Ses yok" birinci
// sınıf bir durumdur, hata değil.
func (c *Composition) Track(t media.Type) *Track {
	for _, track := range c.tracks {
		if track.Type == t {
			return track
		}
	}
	return nil
}

// EnsureTrack verilen türdeki ilk parçayı döner, yoksa oluşturur.
func (c *Composition) EnsureTrack(t media.Type) *Track {
	if track := c.Track(t); track != nil {
		return track
	}
	return c.AddTrack(t)
}

// HasTrack verilen türde parça var mı kontrol eder.
func (c *Composition) HasTrack(t media.Type) bool {
	return c.Track(t) != nil
}

// Tracks parça listesinin kopyasını döner.
func (c *Composition) Tracks() []*Track {
	out := make([]*Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// TracksOf verilen türdeki tüm parçaları döner.
func (c *Composition) TracksOf(t media.Type) []*Track {
	var out []*Track
	for _, track := range c.tracks {
		if track.Type == t {
			out = append(out, track)
		}
	}
	return out
}

// Duration kompozisyonun toplam süresini (en uzun parçanın sonu) döner.
func (c *Composition) Duration() avtime.Time {
	end := avtime.Zero()
	for _, track := range c.tracks {
		if trackEnd := track.Duration(); trackEnd.Cmp(end) > 0 {
			end = trackEnd
		}
	}
	return end
}
