package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	extractVideoName     string
	extractVideoQuality  int
	extractVideoConflict string
)

var extractVideoCmd = &cobra.Command{
	Use:   "extract-video <girdi>",
	Short: "Yalnızca görüntü akışını içeren bir video üretir",
	Long: `Girdinin ses akışlarını atar ve yalnızca görüntü akışını içeren sessiz
bir video üretir. Yönelim düzeltmesi korunur.

Örnekler:
  avtools-cli extract-video video.mp4
  avtools-cli extract-video video.mp4 --name sessiz --on-conflict skip`,
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

		applyQualityDefault(cmd, "quality", &extractVideoQuality)
		applyOnConflictDefault(cmd, "on-conflict", &extractVideoConflict)

		op := operation.ExtractVideo{}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     extractVideoName,
			suffix:   "_video",
			fileType: containerOf(input),
			quality:  extractVideoQuality,
			conflict: extractVideoConflict,
			done:     "Görüntü çıkarma tamamlandı!",
		})
	},
}

func init() {
	extractVideoCmd.Flags().StringVarP(&extractVideoName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	extractVideoCmd.Flags().IntVarP(&extractVideoQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	extractVideoCmd.Flags().StringVar(&extractVideoConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")

	rootCmd.AddCommand(extractVideoCmd)
}
