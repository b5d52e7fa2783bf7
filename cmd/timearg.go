package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
)

// parseTimeArg "SS", "MM:SS" veya "HH:MM:SS" biçimindeki değeri rasyonel
// zamana çevirir. Virgül ondalık ayracı olarak kabul edilir.
func parseTimeArg(raw string) (avtime.Time, error) {
	seconds, err := parseClockSeconds(raw)
	if err != nil {
		return avtime.Time{}, err
	}
	return avtime.FromSeconds(seconds, avtime.DefaultTimescale), nil
}

func parseClockSeconds(raw string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if normalized == "" {
		return 0, fmt.Errorf("boş zaman değeri")
	}

	if strings.Contains(normalized, ":") {
		parts := strings.Split(normalized, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return 0, fmt.Errorf("zaman formatı hatalı: %s", raw)
		}

		parsed := make([]float64, len(parts))
		for i, part := range parts {
			p := strings.TrimSpace(part)
			if p == "" {
				return 0, fmt.Errorf("zaman formatı hatalı: %s", raw)
			}
			v, err := strconv.ParseFloat(p, 64)
			if err != nil || v < 0 {
				return 0, fmt.Errorf("zaman formatı hatalı: %s", raw)
			}
			parsed[i] = v
		}

		if len(parsed) == 2 {
			if parsed[1] >= 60 {
				return 0, fmt.Errorf("saniye 60'tan küçük olmalı: %s", raw)
			}
			return parsed[0]*60 + parsed[1], nil
		}

		if parsed[1] >= 60 || parsed[2] >= 60 {
			return 0, fmt.Errorf("dakika/saniye 60'tan küçük olmalı: %s", raw)
		}
		return parsed[0]*3600 + parsed[1]*60 + parsed[2], nil
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("geçersiz zaman değeri: %s", raw)
	}
	return v, nil
}

// parseTimesArg virgülle ayrılmış zaman listesini çözümler ("1.5,8,1:10").
// Boş liste nil döner, hata değil; zorunluluk kararı çağırana aittir.
func parseTimesArg(raw string) ([]avtime.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var times []avtime.Time
	for _, field := range strings.Split(trimmed, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		t, err := parseTimeArg(field)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

// parseRectArg "x y w h" biçimindeki dikdörtgeni çözümler. Orijin sol-alt
// köşedir; üst-sol dönüşümü backend içinde yapılır.
func parseRectArg(raw string) (geometry.Rect, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 4 {
		return geometry.Rect{}, fmt.Errorf("dikdörtgen \"x y w h\" biçiminde olmalı: %q", raw)
	}

	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.ReplaceAll(f, ",", "."), 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("geçersiz dikdörtgen değeri: %s", f)
		}
		vals[i] = v
	}

	return geometry.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
