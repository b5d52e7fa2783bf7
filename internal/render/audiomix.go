package render

import (
	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/media"
)

// VolumeRamp bir zaman aralığında doğrusal ses seviyesi geçişidir.
type VolumeRamp struct {
	Range avtime.Range
	From  float64
	To    float64
}

// TrackVolume tek bir ses parçasının hacim zarfıdır. Rampalar zamanda
// ayrıktır ve doğrusal interpolasyonla uygulanır.
type TrackVolume struct {
	Track media.Track
	Ramps []VolumeRamp
}

// AudioMix kompozisyondaki ses parçalarına uygulanan hacim zarflarıdır.
type AudioMix struct {
	Volumes []TrackVolume
}

// MixForSoundOverlay ses bindirme için simetrik zarfı üretir: bindirme
// aralığı orta noktasından bölünür, ilk yarıda 0→1, ikinci yarıda 1→0.
// Bindirme ana kompozisyondan uzunsa bölme noktası ana sürenin ortasına
// çekilir. Ayarlanabilir değildir.
func MixForSoundOverlay(track media.Track, window avtime.Range, total avtime.Time) *AudioMix {
	envelope := window
	if window.Duration.Cmp(total) > 0 {
		envelope = avtime.NewRange(window.Start, total)
	}

	rise, fall := envelope.SplitAtMid()
	return &AudioMix{
		Volumes: []TrackVolume{
			{
				Track: track,
				Ramps: []VolumeRamp{
					{Range: rise, From: 0, To: 1},
					{Range: fall, From: 1, To: 0},
				},
			},
		},
	}
}
