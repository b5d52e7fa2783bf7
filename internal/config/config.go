package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EnvConfigDir ayarlandığında yapılandırma ev dizini yerine bu dizinde tutulur.
const EnvConfigDir = "AVTOOLS_CONFIG_DIR"

// AppConfig kullanıcı genelindeki kalıcı ayarlardır. İnteraktif moddaki
// karşılama ve Ayarlar ekranları bu dosyayı günceller; Workers, Quality ve
// OnConflict elle düzenlenebilir ve bayrak verilmediğinde son çare
// varsayılan olarak okunur.
type AppConfig struct {
	FirstRunCompleted bool   `json:"first_run_completed"`
	DefaultOutputDir  string `json:"default_output_dir,omitempty"`
	Workers           int    `json:"workers,omitempty"`
	Quality           int    `json:"quality,omitempty"`
	OnConflict        string `json:"on_conflict,omitempty"`
}

// configDir yapılandırma dizinini döner (~/.avtools)
func configDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".avtools"), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig yapılandırmayı okur. Dosya yoksa veya bozuksa sıfır değerli
// yapılandırma döner; yapılandırma hatası CLI akışını durdurmaz.
func LoadConfig() (*AppConfig, error) {
	var cfg AppConfig

	path, pathErr := configPath()
	if pathErr != nil {
		return &cfg, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil || json.Unmarshal(data, &cfg) != nil {
		return &AppConfig{}, nil
	}
	return &cfg, nil
}

// SaveConfig yapılandırmayı diske yazar; dizin yoksa oluşturulur.
func SaveConfig(cfg *AppConfig) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// mutate yapılandırmayı okuyup değiştirip geri yazar.
func mutate(apply func(*AppConfig)) error {
	cfg, _ := LoadConfig()
	apply(cfg)
	return SaveConfig(cfg)
}

// IsFirstRun karşılama akışı henüz tamamlanmadıysa true döner.
func IsFirstRun() bool {
	cfg, _ := LoadConfig()
	return !cfg.FirstRunCompleted
}

// MarkFirstRunDone karşılama akışının tamamlandığını kaydeder.
func MarkFirstRunDone() error {
	return mutate(func(c *AppConfig) { c.FirstRunCompleted = true })
}

// GetDefaultOutputDir interaktif modda seçilen varsayılan çıktı dizinini döner.
func GetDefaultOutputDir() string {
	cfg, _ := LoadConfig()
	return cfg.DefaultOutputDir
}

// SetDefaultOutputDir varsayılan çıktı dizinini kalıcı olarak kaydeder.
func SetDefaultOutputDir(dir string) error {
	return mutate(func(c *AppConfig) { c.DefaultOutputDir = dir })
}
