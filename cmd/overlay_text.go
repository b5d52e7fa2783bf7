package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/render"
)

var (
	overlayTextValue    string
	overlayTextStart    string
	overlayTextDuration string
	overlayTextColor    string
	overlayTextFontSize float64
	overlayTextPosition string
	overlayTextName     string
	overlayTextQuality  int
	overlayTextConflict string
)

var overlayTextCmd = &cobra.Command{
	Use:   "overlay-text <girdi>",
	Short: "Videonun üzerine metin bindirir",
	Long: `Videonun üzerine verilen metni bindirir. Metin bir kez görsele
dönüştürülür; punto, taban değere video genişliğiyle orantılı pay eklenerek
hesaplanır. Renk #RRGGBB veya #RRGGBBAA biçimindedir, varsayılan beyazdır.

Örnekler:
  avtools-cli overlay-text video.mp4 --text "Merhaba"
  avtools-cli overlay-text video.mp4 --text "Bölüm 1" --start 0 --duration 3
  avtools-cli overlay-text video.mp4 --text "Son" --color "#FF0000" --font-size 48
  avtools-cli overlay-text video.mp4 --text "alt yazı" --position bottom-left`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if err := requireInput(input); err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}

		applyQualityDefault(cmd, "quality", &overlayTextQuality)
		applyOnConflictDefault(cmd, "on-conflict", &overlayTextConflict)

		start, duration, err := overlayWindowFlags(overlayTextStart, overlayTextDuration)
		if err != nil {
			return err
		}

		op := operation.OverlayText{
			Text:     overlayTextValue,
			Color:    overlayTextColor,
			FontSize: overlayTextFontSize,
			Start:    start,
			Duration: duration,
			Position: render.Position(overlayTextPosition),
		}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     overlayTextName,
			suffix:   "_text",
			fileType: containerOf(input),
			quality:  overlayTextQuality,
			conflict: overlayTextConflict,
			done:     "Metin bindirme tamamlandı!",
		})
	},
}

func init() {
	overlayTextCmd.Flags().StringVarP(&overlayTextValue, "text", "t", "", "Bindirilecek metin")
	overlayTextCmd.Flags().StringVarP(&overlayTextStart, "start", "s", "0", "Bindirme başlangıcı (saniye, MM:SS veya HH:MM:SS)")
	overlayTextCmd.Flags().StringVarP(&overlayTextDuration, "duration", "d", "", "Bindirme süresi (boşsa video sonuna kadar)")
	overlayTextCmd.Flags().StringVarP(&overlayTextColor, "color", "c", "", "Metin rengi (#RRGGBB veya #RRGGBBAA, varsayılan beyaz)")
	overlayTextCmd.Flags().Float64Var(&overlayTextFontSize, "font-size", 0, "Taban punto (varsayılan 24)")
	overlayTextCmd.Flags().StringVarP(&overlayTextPosition, "position", "p", string(render.PositionCenter), "Yerleşim: center, top-left, top-right, bottom-left, bottom-right")
	overlayTextCmd.Flags().StringVarP(&overlayTextName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	overlayTextCmd.Flags().IntVarP(&overlayTextQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	overlayTextCmd.Flags().StringVar(&overlayTextConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	overlayTextCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(overlayTextCmd)
}
