package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

var (
	videoFromImagesDuration float64
	videoFromImagesName     string
	videoFromImagesTo       string
	videoFromImagesQuality  int
	videoFromImagesConflict string
)

var videoFromImagesCmd = &cobra.Command{
	Use:   "video-from-images <dizin>",
	Short: "Dizindeki görüntülerden video kurar",
	Long: `Verilen dizindeki png/jpg görüntülerini dosya adı sırasıyla art arda
gösteren bir video kurar. İlk görüntünün boyutları videonun kare boyutu
olur; her görüntü varsayılan olarak 1 saniye gösterilir.

Örnekler:
  avtools-cli video-from-images ./kareler
  avtools-cli video-from-images ./kareler --image-duration 2.5
  avtools-cli video-from-images ./kareler --name sunum --to mkv`,
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

		applyQualityDefault(cmd, "quality", &videoFromImagesQuality)
		applyOnConflictDefault(cmd, "on-conflict", &videoFromImagesConflict)

		settings := exportSettings{
			name:     videoFromImagesName,
			suffix:   "_slideshow",
			fileType: videoFromImagesTo,
		}

		op := operation.ImagesToVideo{
			Dir:          dir,
			ImageSeconds: videoFromImagesDuration,
			OutputPath:   outputPathFor(dir, settings),
			FileType:     videoFromImagesTo,
			Quality:      videoFromImagesQuality,
		}

		exp := export.NewExporter(eng, videoFromImagesConflict)

		ui.PrintRender(dir, op.OutputPath)
		started := time.Now()

		resolved, skip, err := op.Run(cmd.Context(), exp)
		if err != nil {
			return err
		}
		if skip {
			ui.PrintWarning(fmt.Sprintf("Çıktı dosyası mevcut, atlandı: %s", resolved))
			return nil
		}

		ui.PrintSuccess(fmt.Sprintf("Video kuruldu → %s", resolved))
		ui.PrintDuration(time.Since(started))
		return nil
	},
}

func init() {
	videoFromImagesCmd.Flags().Float64VarP(&videoFromImagesDuration, "image-duration", "d", operation.DefaultImageSeconds, "Görüntü başına gösterim süresi (saniye)")
	videoFromImagesCmd.Flags().StringVarP(&videoFromImagesName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	videoFromImagesCmd.Flags().StringVarP(&videoFromImagesTo, "to", "t", "mp4", "Çıktı kabı (mp4, mov, mkv, webm, avi)")
	videoFromImagesCmd.Flags().IntVarP(&videoFromImagesQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	videoFromImagesCmd.Flags().StringVar(&videoFromImagesConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")

	rootCmd.AddCommand(videoFromImagesCmd)
}
