package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
)

// ErrLoad kaynak metaverisi alınamadığında dönen hata türüdür.
var ErrLoad = errors.New("medya metaverisi yüklenemedi")

// Source tek bir medya dosyasını ve yüklenen metaverisini temsil eder.
// Load başarıyla dönene kadar tüm türetilmiş alanlar sıfırdır; yüklendikten
// sonra salt okunurdur.
type Source struct {
	path   string
	prober Prober

	loaded    bool
	duration  avtime.Time
	size      geometry.Size
	transform geometry.Affine
	tracks    map[Type][]Track
}

// NewSource verilen dosya için henüz yüklenmemiş bir kaynak oluşturur.
func NewSource(path string, prober Prober) *Source {
	return &Source{path: path, prober: prober}
}

// Load metaveriyi prober üzerinden tam olarak bir kez yükler. Süre her zaman
// doldurulur; doğal boyut ve görüntüleme dönüşümü ilk video akışından gelir,
// video akışı yoksa sıfır kalır. İkinci çağrı işlem yapmaz.
func (s *Source) Load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	meta, err := s.prober.Probe(ctx, s.path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrLoad, err)
	}
	if meta.Duration.Value <= 0 {
		return fmt.Errorf("%w: süre bilgisi yok: %s", ErrLoad, s.path)
	}

	s.duration = meta.Duration
	s.tracks = make(map[Type][]Track)
	for _, tr := range meta.Tracks {
		tr.Path = s.path
		s.tracks[tr.Type] = append(s.tracks[tr.Type], tr)
	}

	if videos := s.tracks[TypeVideo]; len(videos) > 0 {
		s.size = videos[0].Size
		s.transform = videos[0].Transform
	}

	s.loaded = true
	return nil
}

// Loaded yüklemenin tamamlanıp tamamlanmadığını döner.
func (s *Source) Loaded() bool {
	return s.loaded
}

// Path kaynak dosyanın yolunu döner.
func (s *Source) Path() string {
	return s.path
}

// Duration kaynağın toplam süresini döner.
func (s *Source) Duration() avtime.Time {
	return s.duration
}

// NaturalSize ilk video akışının kodlanmış boyutunu döner (dönüşüm uygulanmadan).
func (s *Source) NaturalSize() geometry.Size {
	return s.size
}

// DisplayTransform ilk video akışının görüntüleme dönüşümünü döner.
func (s *Source) DisplayTransform() geometry.Affine {
	return s.transform
}

// Orientation görüntüleme dönüşümünden türetilen yönelimi döner.
func (s *Source) Orientation() geometry.Orientation {
	return geometry.OrientationOf(s.transform)
}

// TracksOf verilen türdeki akışların kopyasını döner. Tür hiç yoksa boş
// dilim döner, asla hata değil; çağıranlar akış varlığını varsaymamalıdır.
func (s *Source) TracksOf(t Type) []Track {
	tracks := s.tracks[t]
	if len(tracks) == 0 {
		return nil
	}
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

// HasTrack verilen türde en az bir akış var mı kontrol eder.
func (s *Source) HasTrack(t Type) bool {
	return len(s.tracks[t]) > 0
}

// FirstTrack verilen türdeki ilk akışı döner; yoksa ok=false.
func (s *Source) FirstTrack(t Type) (Track, bool) {
	tracks := s.tracks[t]
	if len(tracks) == 0 {
		return Track{}, false
	}
	return tracks[0], true
}
