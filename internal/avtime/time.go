package avtime

import (
	"fmt"
	"math"
)

// DefaultTimescale CLI'dan gelen saniye değerlerinin çevrildiği sabit zaman ölçeği.
// Uzun zaman çizelgelerinde float yuvarlama hatası birikmesin diye tüm süre
// aritmetiği rasyonel (pay/ölçek) olarak yapılır.
const DefaultTimescale int32 = 600

// Time rasyonel bir zaman noktası veya süredir: Value/Timescale saniye.
type Time struct {
	Value     int64
	Timescale int32
}

// New verilen pay ve ölçekle bir Time oluşturur.
func New(value int64, timescale int32) Time {
	if timescale <= 0 {
		timescale = DefaultTimescale
	}
	return Time{Value: value, Timescale: timescale}
}

// Zero sıfır zamanı (varsayılan ölçekte) döner.
func Zero() Time {
	return Time{Value: 0, Timescale: DefaultTimescale}
}

// FromSeconds saniye cinsinden float değeri verilen ölçekte rasyonel zamana çevirir.
func FromSeconds(seconds float64, timescale int32) Time {
	if timescale <= 0 {
		timescale = DefaultTimescale
	}
	return Time{Value: int64(math.Round(seconds * float64(timescale))), Timescale: timescale}
}

// Seconds zamanı saniye cinsinden float olarak döner.
func (t Time) Seconds() float64 {
	if t.Timescale == 0 {
		return 0
	}
	return float64(t.Value) / float64(t.Timescale)
}

// IsZero pay sıfır mı kontrol eder.
func (t Time) IsZero() bool {
	return t.Value == 0
}

// Rescale zamanı başka bir ölçeğe yuvarlayarak taşır.
func (t Time) Rescale(timescale int32) Time {
	if timescale <= 0 || t.Timescale == timescale {
		return t
	}
	if t.Timescale == 0 {
		return Time{Value: 0, Timescale: timescale}
	}
	value := int64(math.Round(float64(t.Value) * float64(timescale) / float64(t.Timescale)))
	return Time{Value: value, Timescale: timescale}
}

// Add iki zamanı toplar; sonuç t'nin ölçeğindedir.
func (t Time) Add(o Time) Time {
	o = o.Rescale(t.Timescale)
	return Time{Value: t.Value + o.Value, Timescale: t.Timescale}
}

// Sub o'yu t'den çıkarır; sonuç t'nin ölçeğindedir.
func (t Time) Sub(o Time) Time {
	o = o.Rescale(t.Timescale)
	return Time{Value: t.Value - o.Value, Timescale: t.Timescale}
}

// Cmp iki zamanı karşılaştırır: -1 küçük, 0 eşit, 1 büyük.
func (t Time) Cmp(o Time) int {
	// Çapraz çarpımla ölçekten bağımsız karşılaştırma
	left := t.Value * int64(o.Timescale)
	right := o.Value * int64(t.Timescale)
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// ScaledBy zamanı verilen çarpanla ölçekler (hız değişimi için: süre × 1/hız).
func (t Time) ScaledBy(factor float64) Time {
	return Time{Value: int64(math.Round(float64(t.Value) * factor)), Timescale: t.Timescale}
}

// String "değer/ölçek (saniye)" biçiminde okunabilir gösterim döner.
func (t Time) String() string {
	return fmt.Sprintf("%d/%d (%.3fs)", t.Value, t.Timescale, t.Seconds())
}

// Range bir başlangıç zamanı ve süreden oluşan zaman aralığıdır.
// Duration negatif olamaz.
type Range struct {
	Start    Time
	Duration Time
}

// NewRange başlangıç ve süreden aralık oluşturur.
func NewRange(start, duration Time) Range {
	return Range{Start: start, Duration: duration}
}

// RangeFromSeconds saniye değerlerinden varsayılan ölçekte aralık oluşturur.
func RangeFromSeconds(startSec, durationSec float64) Range {
	return Range{
		Start:    FromSeconds(startSec, DefaultTimescale),
		Duration: FromSeconds(durationSec, DefaultTimescale),
	}
}

// End aralığın bitiş zamanını döner.
func (r Range) End() Time {
	return r.Start.Add(r.Duration)
}

// IsValid sürenin negatif olmadığını kontrol eder.
func (r Range) IsValid() bool {
	return r.Duration.Value >= 0
}

// Overlaps iki aralığın kesişip kesişmediğini kontrol eder.
// Uç uca değen aralıklar (birinin sonu diğerinin başı) kesişme sayılmaz.
func (r Range) Overlaps(o Range) bool {
	if r.Duration.Value == 0 || o.Duration.Value == 0 {
		return false
	}
	return r.Start.Cmp(o.End()) < 0 && o.Start.Cmp(r.End()) < 0
}

// SplitAtMid aralığı orta noktasından iki bitişik yarıya böler.
// Yarımların süresi toplamı her zaman orijinal süreye eşittir.
func (r Range) SplitAtMid() (Range, Range) {
	half := r.Duration.Value / 2
	first := Range{
		Start:    r.Start,
		Duration: Time{Value: half, Timescale: r.Duration.Timescale},
	}
	second := Range{
		Start:    r.Start.Add(first.Duration),
		Duration: Time{Value: r.Duration.Value - half, Timescale: r.Duration.Timescale},
	}
	return first, second
}

// Stride aralığı verilen adım süresiyle ardışık alt aralıklara böler.
// ceil(D/d) adet aralık üretir; sonuncusu dışında hepsi tam d uzunluğundadır,
// aralıklar boşluksuz ve çakışmasız olarak [start, start+D) bölgesini kaplar.
func (r Range) Stride(by Time) []Range {
	step := by.Rescale(r.Duration.Timescale)
	if step.Value <= 0 || r.Duration.Value <= 0 {
		return nil
	}

	var out []Range
	for offset := int64(0); offset < r.Duration.Value; offset += step.Value {
		length := step.Value
		if remain := r.Duration.Value - offset; remain < length {
			length = remain
		}
		out = append(out, Range{
			Start:    r.Start.Add(Time{Value: offset, Timescale: r.Duration.Timescale}),
			Duration: Time{Value: length, Timescale: r.Duration.Timescale},
		})
	}
	return out
}
