package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const projectConfigFileName = ".avtools.json"

// ProjectConfig proje bazlı CLI varsayılanlarını tutar.
type ProjectConfig struct {
	DefaultOutput string
	Workers       int
	Quality       int
	OnConflict    string
	Retry         int
	RetryDelay    time.Duration
	ReportFormat  string
}

// projectConfigFile .avtools.json dosyasının ham biçimidir; retry_delay
// Go süre yazımıyla ("1s", "500ms") verilir.
type projectConfigFile struct {
	DefaultOutput string `json:"default_output"`
	Workers       int    `json:"workers"`
	Quality       int    `json:"quality"`
	OnConflict    string `json:"on_conflict"`
	Retry         int    `json:"retry"`
	RetryDelay    string `json:"retry_delay"`
	ReportFormat  string `json:"report_format"`
}

// LoadProjectConfig currentDir'den yukarı doğru .avtools.json arar.
// Dosya yoksa (nil, "", nil) döner.
func LoadProjectConfig(currentDir string) (*ProjectConfig, string, error) {
	path, err := findProjectConfigPath(currentDir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", nil
	}

	cfg, err := parseProjectConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func findProjectConfigPath(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", errors.New("gecersiz calisma dizini")
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, projectConfigFileName)
		info, statErr := os.Stat(candidate)
		if statErr == nil && !info.IsDir() {
			return candidate, nil
		}
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return "", statErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

func parseProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw projectConfigFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: gecersiz json: %v", path, err)
	}

	cfg := &ProjectConfig{
		DefaultOutput: raw.DefaultOutput,
		Workers:       raw.Workers,
		Quality:       raw.Quality,
		OnConflict:    strings.ToLower(strings.TrimSpace(raw.OnConflict)),
		Retry:         raw.Retry,
		ReportFormat:  strings.ToLower(strings.TrimSpace(raw.ReportFormat)),
	}

	if raw.RetryDelay != "" {
		d, err := time.ParseDuration(raw.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("%s: gecersiz sure degeri: %s", path, raw.RetryDelay)
		}
		cfg.RetryDelay = d
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers 0 veya daha buyuk olmali")
	}
	if cfg.Quality < 0 || cfg.Quality > 100 {
		return nil, fmt.Errorf("quality 0-100 araliginda olmali")
	}
	if cfg.Retry < 0 {
		return nil, fmt.Errorf("retry 0 veya daha buyuk olmali")
	}
	if cfg.RetryDelay < 0 {
		return nil, fmt.Errorf("retry_delay negatif olamaz")
	}

	return cfg, nil
}
