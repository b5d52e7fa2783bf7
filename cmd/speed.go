package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	speedRate     float64
	speedName     string
	speedQuality  int
	speedConflict string
)

var speedCmd = &cobra.Command{
	Use:   "speed <girdi>",
	Short: "Oynatma hızını değiştirir",
	Long: `Oynatma hızını verilen çarpanla değiştirir. 1'den büyük çarpan videoyu
hızlandırır (çıktı kısalır), 1'den küçük çarpan yavaşlatır. Ses perdesi
korunarak aynı oranda ölçeklenir.

Örnekler:
  avtools-cli speed video.mp4 --rate 2
  avtools-cli speed video.mp4 --rate 0.5 --name agir_cekim
  avtools-cli speed video.mp4 --rate 1.5 --quality 85`,
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

		applyQualityDefault(cmd, "quality", &speedQuality)
		applyOnConflictDefault(cmd, "on-conflict", &speedConflict)

		op := operation.Speed{Rate: speedRate}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     speedName,
			suffix:   "_speed",
			fileType: containerOf(input),
			quality:  speedQuality,
			conflict: speedConflict,
			done:     "Hız değişimi tamamlandı!",
		})
	},
}

func init() {
	speedCmd.Flags().Float64VarP(&speedRate, "rate", "r", 0, "Hız çarpanı (pozitif; 2 = iki kat hızlı)")
	speedCmd.Flags().StringVarP(&speedName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	speedCmd.Flags().IntVarP(&speedQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	speedCmd.Flags().StringVar(&speedConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	speedCmd.MarkFlagRequired("rate")

	rootCmd.AddCommand(speedCmd)
}
