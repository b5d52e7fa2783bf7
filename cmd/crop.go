package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	cropRect     string
	cropName     string
	cropQuality  int
	cropConflict string
)

var cropCmd = &cobra.Command{
	Use:   "crop <girdi>",
	Short: "Videoyu verilen dikdörtgene kırpar",
	Long: `Videoyu verilen dikdörtgene kırpar. Dikdörtgen "x y genişlik yükseklik"
biçiminde, sol-alt köşe orijinli verilir; çıktı boyutu dikdörtgenin
boyutudur.

Örnekler:
  avtools-cli crop video.mp4 --rect "0 0 640 360"
  avtools-cli crop video.mp4 --rect "100 50 1280 720" --name kesit
  avtools-cli crop video.mp4 --rect "0 0 1080 1080" --quality 90`,
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

		applyQualityDefault(cmd, "quality", &cropQuality)
		applyOnConflictDefault(cmd, "on-conflict", &cropConflict)

		rect, err := parseRectArg(cropRect)
		if err != nil {
			return paramErr(err)
		}

		op := operation.Crop{Rect: rect}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     cropName,
			suffix:   "_cropped",
			fileType: containerOf(input),
			quality:  cropQuality,
			conflict: cropConflict,
			done:     "Kırpma tamamlandı!",
		})
	},
}

func init() {
	cropCmd.Flags().StringVarP(&cropRect, "rect", "r", "", "Kırpma dikdörtgeni: \"x y w h\" (sol-alt orijin)")
	cropCmd.Flags().StringVarP(&cropName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	cropCmd.Flags().IntVarP(&cropQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	cropCmd.Flags().StringVar(&cropConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	cropCmd.MarkFlagRequired("rect")

	rootCmd.AddCommand(cropCmd)
}
