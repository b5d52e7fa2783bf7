package imaging

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// writeFormats kare çıktısı için desteklenen görsel formatları
var writeFormats = []string{"png", "jpg", "webp", "bmp", "tif"}

// NormalizeFormat format adını küçük harfe indirger ve yaygın takma adları çözer.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(format, ".")))
	switch f {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return f
	}
}

// DetectFormat dosya uzantısından formatı belirler.
func DetectFormat(path string) string {
	return NormalizeFormat(filepath.Ext(path))
}

// IsWritableFormat kare çıktısı olarak yazılabilir bir format mı kontrol eder.
func IsWritableFormat(format string) bool {
	f := NormalizeFormat(format)
	for _, w := range writeFormats {
		if w == f {
			return true
		}
	}
	return false
}

// WritableFormats desteklenen çıktı formatlarının listesini döner.
func WritableFormats() []string {
	out := make([]string, len(writeFormats))
	copy(out, writeFormats)
	return out
}

// Decode dosyayı uzantısına göre çözer.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer f.Close()

	var img image.Image
	switch DetectFormat(path) {
	case "png":
		img, err = png.Decode(f)
	case "jpg":
		img, err = jpeg.Decode(f)
	case "gif":
		img, err = gif.Decode(f)
	case "bmp":
		img, err = bmp.Decode(f)
	case "tif":
		img, err = tiff.Decode(f)
	case "webp":
		img, err = webp.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}

	if err != nil {
		return nil, fmt.Errorf("görsel decode hatası (%s): %w", path, err)
	}
	return img, nil
}

// DecodeConfig dosyanın piksel boyutlarını tüm görseli çözmeden okur.
func DecodeConfig(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer f.Close()

	var cfg image.Config
	switch DetectFormat(path) {
	case "png":
		cfg, err = png.DecodeConfig(f)
	case "jpg":
		cfg, err = jpeg.DecodeConfig(f)
	case "gif":
		cfg, err = gif.DecodeConfig(f)
	case "bmp":
		cfg, err = bmp.DecodeConfig(f)
	case "tif":
		cfg, err = tiff.DecodeConfig(f)
	case "webp":
		cfg, err = webp.DecodeConfig(f)
	default:
		cfg, _, err = image.DecodeConfig(f)
	}

	if err != nil {
		return 0, 0, fmt.Errorf("görsel boyutu okunamadı (%s): %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Encode görseli verilen formatta dosyaya yazar. quality yalnızca jpg için
// anlamlıdır (1-100, 0 = varsayılan).
func Encode(path string, img image.Image, format string, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("çıktı dosyası oluşturulamadı: %w", err)
	}
	defer f.Close()

	switch NormalizeFormat(format) {
	case "png":
		err = png.Encode(f, img)
	case "jpg":
		q := 85
		if quality > 0 && quality <= 100 {
			q = quality
		}
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: q})
	case "bmp":
		err = bmp.Encode(f, img)
	case "tif":
		err = tiff.Encode(f, img, nil)
	case "webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		return fmt.Errorf("desteklenmeyen çıktı formatı: %s", format)
	}

	if err != nil {
		return fmt.Errorf("görsel encode hatası (%s): %w", format, err)
	}
	return nil
}

// FitWithin görseli en-boy oranını koruyarak verilen sınırların içine
// sığacak şekilde küçültür; zaten sığıyorsa dokunmaz.
func FitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}

	scaleW := float64(maxWidth) / float64(b.Dx())
	scaleH := float64(maxHeight) / float64(b.Dy())
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
