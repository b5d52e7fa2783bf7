package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConflictOverwrite = "overwrite"
	ConflictSkip      = "skip"
	ConflictVersioned = "versioned"
)

// NormalizeConflictPolicy geçersiz değerlerde boş string, boş değerde
// varsayılan policy döner.
func NormalizeConflictPolicy(policy string) string {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case ConflictOverwrite:
		return ConflictOverwrite
	case ConflictSkip:
		return ConflictSkip
	case ConflictVersioned, "":
		return ConflictVersioned
	default:
		return ""
	}
}

// ResolveOutputConflict hedef dosya adı çakışmasını verilen policy'ye göre
// çözer. skip=true dönerse ilgili iş atlanmalıdır.
func ResolveOutputConflict(path, policy string) (resolvedPath string, skip bool, err error) {
	normalized := NormalizeConflictPolicy(policy)
	if normalized == "" {
		return "", false, fmt.Errorf("gecersiz on-conflict politikasi: %s", policy)
	}

	_, statErr := os.Stat(path)
	if statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrFilesystem, statErr)
	}

	switch normalized {
	case ConflictOverwrite:
		return path, false, nil
	case ConflictSkip:
		return path, true, nil
	default:
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(path, ext)
		for i := 1; i < 100000; i++ {
			candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
			if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
				return candidate, false, nil
			} else if err != nil {
				return "", false, fmt.Errorf("%w: %v", ErrFilesystem, err)
			}
		}
		return "", false, fmt.Errorf("uygun versioned dosya adi bulunamadi")
	}
}

// EnsureDir çıktı dizinini yoksa oluşturur. Oluşturma hatası sert hatadır.
func EnsureDir(dir string) error {
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: çıktı dizini oluşturulamadı: %v", ErrFilesystem, err)
	}
	return nil
}
