package cmd

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/config"
)

const (
	envOutput     = "AVTOOLS_OUTPUT"
	envWorkers    = "AVTOOLS_WORKERS"
	envQuality    = "AVTOOLS_QUALITY"
	envConflict   = "AVTOOLS_ON_CONFLICT"
	envRetry      = "AVTOOLS_RETRY"
	envRetryDelay = "AVTOOLS_RETRY_DELAY"
	envReport     = "AVTOOLS_REPORT"
)

// activeAppConfig interaktif moddaki Ayarlar ekranının yazdığı kullanıcı
// geneli yapılandırmadır; kök komut çalışmadan önce yüklenir.
var activeAppConfig *config.AppConfig

func loadAppConfig() {
	cfg, err := config.LoadConfig()
	if err != nil {
		return
	}
	activeAppConfig = cfg
}

// flagUntouched bayrak komut satırında açıkça verilmediyse true döner.
func flagUntouched(cmd *cobra.Command, name string) bool {
	return !cmd.Flags().Changed(name)
}

// envStr ortam değişkenini kırpılmış döner; değer boşsa ok false olur.
func envStr(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

// projectStr proje yapılandırmasından alan okur; yapılandırma yoksa veya
// alan boşsa ok false olur.
func projectStr(field func(*config.ProjectConfig) string) (string, bool) {
	if activeProjectConfig == nil {
		return "", false
	}
	v := strings.TrimSpace(field(activeProjectConfig))
	return v, v != ""
}

// applyRootDefaults kök bayrakların varsayılanlarını uygular. Öncelik
// sırası: bayrak, ortam değişkeni, proje yapılandırması, kullanıcı
// yapılandırması. Komut satırında açıkça verilen bayrak her zaman kazanır.
func applyRootDefaults(cmd *cobra.Command) error {
	if flagUntouched(cmd, "output") {
		if v, ok := envStr(envOutput); ok {
			outputDir = v
		} else if v, ok := projectStr(func(c *config.ProjectConfig) string { return c.DefaultOutput }); ok {
			outputDir = v
		} else if activeAppConfig != nil && strings.TrimSpace(activeAppConfig.DefaultOutputDir) != "" {
			outputDir = strings.TrimSpace(activeAppConfig.DefaultOutputDir)
		}
	}

	if flagUntouched(cmd, "workers") {
		if v, ok := readEnvInt(envWorkers); ok && v > 0 {
			workers = v
		} else if activeProjectConfig != nil && activeProjectConfig.Workers > 0 {
			workers = activeProjectConfig.Workers
		} else if activeAppConfig != nil && activeAppConfig.Workers > 0 {
			workers = activeAppConfig.Workers
		}
	}

	return nil
}

func applyQualityDefault(cmd *cobra.Command, flagName string, value *int) {
	if !flagUntouched(cmd, flagName) {
		return
	}
	if v, ok := readEnvInt(envQuality); ok && v >= 0 {
		*value = v
		return
	}
	if activeProjectConfig != nil && activeProjectConfig.Quality > 0 {
		*value = activeProjectConfig.Quality
		return
	}
	if activeAppConfig != nil && activeAppConfig.Quality > 0 {
		*value = activeAppConfig.Quality
	}
}

func applyOnConflictDefault(cmd *cobra.Command, flagName string, value *string) {
	if !flagUntouched(cmd, flagName) {
		return
	}
	if v, ok := envStr(envConflict); ok {
		*value = strings.ToLower(v)
		return
	}
	if v, ok := projectStr(func(c *config.ProjectConfig) string { return c.OnConflict }); ok {
		*value = strings.ToLower(v)
		return
	}
	if activeAppConfig != nil && strings.TrimSpace(activeAppConfig.OnConflict) != "" {
		*value = strings.ToLower(strings.TrimSpace(activeAppConfig.OnConflict))
	}
}

func applyRetryDefaults(cmd *cobra.Command, retryFlag string, retryValue *int, delayFlag string, delayValue *time.Duration) {
	if flagUntouched(cmd, retryFlag) {
		if v, ok := readEnvInt(envRetry); ok && v >= 0 {
			*retryValue = v
		} else if activeProjectConfig != nil && activeProjectConfig.Retry > 0 {
			*retryValue = activeProjectConfig.Retry
		}
	}

	if flagUntouched(cmd, delayFlag) {
		if v, ok := readEnvDuration(envRetryDelay); ok {
			*delayValue = v
		} else if activeProjectConfig != nil && activeProjectConfig.RetryDelay > 0 {
			*delayValue = activeProjectConfig.RetryDelay
		}
	}
}

func applyReportDefault(cmd *cobra.Command, flagName string, value *string) {
	if !flagUntouched(cmd, flagName) {
		return
	}
	if v, ok := envStr(envReport); ok {
		*value = strings.ToLower(v)
		return
	}
	if v, ok := projectStr(func(c *config.ProjectConfig) string { return c.ReportFormat }); ok {
		*value = strings.ToLower(v)
	}
}

func readEnvInt(name string) (int, bool) {
	raw, ok := envStr(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readEnvDuration(name string) (time.Duration, bool) {
	raw, ok := envStr(name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
