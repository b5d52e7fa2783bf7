package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	mergeName     string
	mergeTo       string
	mergeQuality  int
	mergeConflict string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <dizin>",
	Short: "Dizindeki medya dosyalarını art arda birleştirir",
	Long: `Verilen dizindeki medya dosyalarını dosya adı sırasıyla tek bir videoda
art arda birleştirir. Alt dizinler taranmaz. Çıktı, dizinin yanına
"<dizin>_merged" adıyla yazılır; --name ile değiştirilebilir.

Örnekler:
  avtools-cli merge ./klipler
  avtools-cli merge ./klipler --name tatil_filmi
  avtools-cli merge ./klipler --to mkv --quality 90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := requireDir(dir); err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}

		applyQualityDefault(cmd, "quality", &mergeQuality)
		applyOnConflictDefault(cmd, "on-conflict", &mergeConflict)

		ctx := cmd.Context()
		op := operation.Merge{Dir: dir, Prober: eng}
		res, err := op.Compose(ctx)
		if err != nil {
			return err
		}

		return exportResult(ctx, eng, res, dir, exportSettings{
			name:     mergeName,
			suffix:   "_merged",
			fileType: mergeTo,
			quality:  mergeQuality,
			conflict: mergeConflict,
			done:     "Birleştirme tamamlandı!",
		})
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	mergeCmd.Flags().StringVarP(&mergeTo, "to", "t", "mp4", "Çıktı kabı (mp4, mov, mkv, webm, avi)")
	mergeCmd.Flags().IntVarP(&mergeQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	mergeCmd.Flags().StringVar(&mergeConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")

	rootCmd.AddCommand(mergeCmd)
}
