package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/config"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

var (
	verbose   bool
	outputDir string
	workers   int

	// activeProjectConfig kök komut çalışmadan önce .avtools.json'dan
	// yüklenir; bulunamazsa nil kalır ve yalnızca env + bayrak geçerlidir.
	activeProjectConfig *config.ProjectConfig

	appVersion = "dev"
	appCommit  = ""
	appDate    = ""
)

// SetVersionInfo build-time sürüm bilgisini ayarlar
func SetVersionInfo(version, commit, date string) {
	if strings.TrimSpace(version) != "" {
		appVersion = version
	}
	appCommit = strings.TrimSpace(commit)
	if appCommit == "" || appCommit == "none" {
		appCommit = "bilinmiyor"
	}
	appDate = strings.TrimSpace(date)
	if appDate == "" || appDate == "unknown" {
		appDate = time.Now().Format("2006-01-02 15:04:05")
	}
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf(
		"AVTools CLI v%s\nCommit: %s\nTarih:  %s\nGo:     %s\nOS:     %s/%s\n",
		appVersion, appCommit, appDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

var rootCmd = &cobra.Command{
	Use:   "avtools-cli",
	Short: "AVTools CLI - komut satiri medya duzenleyici",
	Long: `AVTools CLI — Video ve ses dosyalarınızı komut satırından düzenleyin.

Döndürme, kırpma, kesme, hızlandırma, bölme, birleştirme, görüntü/metin/ses
bindirme, akış çıkarma ve kare yakalama işlemlerini yerel ffmpeg backend'i
ile gerçekleştirir. Tüm işlemler kaynak dosyayı değiştirmez; sonuç her zaman
yeni bir çıktı dosyasına yazılır.

Argümansız çalıştırıldığında interaktif menü açılır:
  İşlem Uygula, Medya Bilgisi, Sistem Kontrolü, Ayarlar

Örnekler:
  avtools-cli rotate video.mp4 --angle 90
  avtools-cli trim video.mp4 --start 5 --end 12.5
  avtools-cli crop video.mp4 --rect "0 0 640 360"
  avtools-cli split video.mp4 --segment-duration 60 --workers 4
  avtools-cli merge ./klipler --name tatil
  avtools-cli overlay-text video.mp4 --text "Merhaba" --start 2 --duration 3
  avtools-cli images video.mp4 --stride 10 --to png
  avtools-cli watch ./gelen --op extract-audio
  avtools-cli info video.mp4
  avtools-cli doctor`,
	Version: appVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadAppConfig()
		loadProjectConfig()
		return applyRootDefaults(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Argümansız çalıştırıldığında interaktif mod başlat
		return RunInteractive()
	},
}

// loadProjectConfig çalışma dizininden yukarı doğru .avtools.json arar.
// Bozuk yapılandırma komutu durdurmaz; uyarı basılır ve varsayılanlarla
// devam edilir.
func loadProjectConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	cfg, path, err := config.LoadProjectConfig(cwd)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("Proje yapılandırması okunamadı: %v", err))
		return
	}
	if cfg == nil {
		return
	}

	activeProjectConfig = cfg
	if verbose {
		ui.PrintInfo(fmt.Sprintf("Proje yapılandırması: %s", path))
	}
}

// Execute CLI'ı çalıştırır
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Detaylı çıktı modu")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Çıktı dizini (varsayılan: kaynak dizin)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Paralel worker sayısı (split ve watch modunda)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", OutputFormatText, "Çıktı biçimi: text, json")

	SetVersionInfo(appVersion, appCommit, appDate)

	// Hata mesajlarını özelleştir
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Hata: %s\n\n", err.Error())
		cmd.Usage()
		return err
	})
}
