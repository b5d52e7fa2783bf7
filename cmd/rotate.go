package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	rotateAngle    float64
	rotateName     string
	rotateQuality  int
	rotateConflict string
)

var rotateCmd = &cobra.Command{
	Use:   "rotate <girdi>",
	Short: "Videoyu verilen açıyla döndürür",
	Long: `Videoyu verilen açıyla döndürür. Yalnızca 90 derecenin katları görüntüyü
değiştirir; diğer açılar birim dönüşüme düşer ve video olduğu gibi kalır.
Negatif açılar saat yönünün tersidir.

Örnekler:
  avtools-cli rotate video.mp4 --angle 90
  avtools-cli rotate video.mp4 --angle -90 --name duzeltilmis
  avtools-cli rotate video.mp4 --angle 180 --quality 80 --on-conflict overwrite`,
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

		applyQualityDefault(cmd, "quality", &rotateQuality)
		applyOnConflictDefault(cmd, "on-conflict", &rotateConflict)

		op := operation.Rotate{Angle: rotateAngle}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     rotateName,
			suffix:   "_rotated",
			fileType: containerOf(input),
			quality:  rotateQuality,
			conflict: rotateConflict,
			done:     "Döndürme tamamlandı!",
		})
	},
}

func init() {
	rotateCmd.Flags().Float64VarP(&rotateAngle, "angle", "a", 0, "Dönüş açısı (derece, 90'ın katları)")
	rotateCmd.Flags().StringVarP(&rotateName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	rotateCmd.Flags().IntVarP(&rotateQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	rotateCmd.Flags().StringVar(&rotateConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	rotateCmd.MarkFlagRequired("angle")

	rootCmd.AddCommand(rotateCmd)
}
