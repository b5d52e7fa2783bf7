package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/render"
)

var (
	overlayImageFile     string
	overlayImageStart    string
	overlayImageDuration string
	overlayImagePosition string
	overlayImageName     string
	overlayImageQuality  int
	overlayImageConflict string
)

var overlayImageCmd = &cobra.Command{
	Use:   "overlay-image <girdi>",
	Short: "Videonun üzerine görsel bindirir",
	Long: `Videonun üzerine verilen görseli bindirir. Görsel pencere başında
yumuşak geçişle görünür, sonunda kaybolur. --duration verilmezse bindirme
video sonuna kadar sürer.

Yerleşim değerleri: center, top-left, top-right, bottom-left, bottom-right

Örnekler:
  avtools-cli overlay-image video.mp4 --image logo.png
  avtools-cli overlay-image video.mp4 --image logo.png --start 2 --duration 5
  avtools-cli overlay-image video.mp4 --image logo.png --position top-right`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if err := requireInput(input); err != nil {
			return err
		}
		if err := requireInput(overlayImageFile); err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}

		applyQualityDefault(cmd, "quality", &overlayImageQuality)
		applyOnConflictDefault(cmd, "on-conflict", &overlayImageConflict)

		start, duration, err := overlayWindowFlags(overlayImageStart, overlayImageDuration)
		if err != nil {
			return err
		}

		op := operation.OverlayImage{
			ImagePath: overlayImageFile,
			Start:     start,
			Duration:  duration,
			Position:  render.Position(overlayImagePosition),
		}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     overlayImageName,
			suffix:   "_overlay",
			fileType: containerOf(input),
			quality:  overlayImageQuality,
			conflict: overlayImageConflict,
			done:     "Görsel bindirme tamamlandı!",
		})
	},
}

// overlayWindowFlags bindirme komutlarının ortak başlangıç/süre bayraklarını
// çözümler. Boş süre sıfır döner; pencere sonu operasyon katmanında
// kompozisyon süresine oturtulur.
func overlayWindowFlags(startRaw, durationRaw string) (start, duration avtime.Time, err error) {
	start, err = parseTimeArg(startRaw)
	if err != nil {
		return avtime.Time{}, avtime.Time{}, paramErr(err)
	}

	duration = avtime.Zero()
	if durationRaw != "" {
		duration, err = parseTimeArg(durationRaw)
		if err != nil {
			return avtime.Time{}, avtime.Time{}, paramErr(err)
		}
	}
	return start, duration, nil
}

func init() {
	overlayImageCmd.Flags().StringVarP(&overlayImageFile, "image", "i", "", "Bindirilecek görsel dosyası")
	overlayImageCmd.Flags().StringVarP(&overlayImageStart, "start", "s", "0", "Bindirme başlangıcı (saniye, MM:SS veya HH:MM:SS)")
	overlayImageCmd.Flags().StringVarP(&overlayImageDuration, "duration", "d", "", "Bindirme süresi (boşsa video sonuna kadar)")
	overlayImageCmd.Flags().StringVarP(&overlayImagePosition, "position", "p", string(render.PositionCenter), "Yerleşim: center, top-left, top-right, bottom-left, bottom-right")
	overlayImageCmd.Flags().StringVarP(&overlayImageName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	overlayImageCmd.Flags().IntVarP(&overlayImageQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	overlayImageCmd.Flags().StringVar(&overlayImageConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	overlayImageCmd.MarkFlagRequired("image")

	rootCmd.AddCommand(overlayImageCmd)
}
