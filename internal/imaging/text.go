package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultTextColor bindirme metninin varsayılan rengidir: opak beyaz.
var DefaultTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

var (
	fontOnce   sync.Once
	fontParsed *opentype.Font
	fontErr    error
)

func overlayFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontParsed, fontErr
}

// ParseHexColor "#RRGGBBAA" veya "#RRGGBB" biçiminde renk çözer.
// Boş girdi varsayılan rengi (opak beyaz) döner.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTextColor, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("geçersiz renk: %s (beklenen #RRGGBB veya #RRGGBBAA)", s)
	}

	parse := func(part string) (uint8, error) {
		var v uint8
		if _, err := fmt.Sscanf(part, "%02x", &v); err != nil {
			return 0, fmt.Errorf("geçersiz renk: %s", s)
		}
		return v, nil
	}

	r, err := parse(hex[0:2])
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(hex[2:4])
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(hex[4:6])
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(hex) == 8 {
		a, err = parse(hex[6:8])
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// RasterizeText metni verilen punto ve renkle saydam zemin üzerine bir kez
// çizer. Dönen görsel bindirme katmanı içeriği olarak kullanılır; kare
// başına yeniden çizim yapılmaz.
func RasterizeText(text string, col color.NRGBA, fontSize float64) (image.Image, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("boş bindirme metni")
	}
	if fontSize <= 0 {
		return nil, fmt.Errorf("geçersiz punto: %g", fontSize)
	}

	parsed, err := overlayFont()
	if err != nil {
		return nil, fmt.Errorf("gömülü font yüklenemedi: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font yüzü oluşturulamadı: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	if width < 1 {
		width = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(text)

	return canvas, nil
}
