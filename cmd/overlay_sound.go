package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	overlaySoundFile     string
	overlaySoundStart    string
	overlaySoundName     string
	overlaySoundQuality  int
	overlaySoundConflict string
)

var overlaySoundCmd = &cobra.Command{
	Use:   "overlay-sound <girdi>",
	Short: "Videonun sesine ikinci bir ses bindirir",
	Long: `Videonun ses kanalının üzerine verilen ses dosyasını bindirir. Bindirme
sesi yumuşak aç/kapa zarfıyla karıştırılır; video süresi değişmez, videoyu
aşan bindirme kuyruğu kırpılır.

Örnekler:
  avtools-cli overlay-sound video.mp4 --audio muzik.mp3
  avtools-cli overlay-sound video.mp4 --audio efekt.wav --start 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if err := requireInput(input); err != nil {
			return err
		}
		if err := requireInput(overlaySoundFile); err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}

		applyQualityDefault(cmd, "quality", &overlaySoundQuality)
		applyOnConflictDefault(cmd, "on-conflict", &overlaySoundConflict)

		start, err := parseTimeArg(overlaySoundStart)
		if err != nil {
			return paramErr(err)
		}

		ctx := cmd.Context()
		overlay := media.NewSource(overlaySoundFile, eng)
		if err := overlay.Load(ctx); err != nil {
			return err
		}

		op := operation.OverlaySound{Overlay: overlay, Start: start}
		return runComposer(ctx, eng, op, input, exportSettings{
			name:     overlaySoundName,
			suffix:   "_mix",
			fileType: containerOf(input),
			quality:  overlaySoundQuality,
			conflict: overlaySoundConflict,
			done:     "Ses bindirme tamamlandı!",
		})
	},
}

func init() {
	overlaySoundCmd.Flags().StringVarP(&overlaySoundFile, "audio", "a", "", "Bindirilecek ses dosyası")
	overlaySoundCmd.Flags().StringVarP(&overlaySoundStart, "start", "s", "0", "Bindirme başlangıcı (saniye, MM:SS veya HH:MM:SS)")
	overlaySoundCmd.Flags().StringVarP(&overlaySoundName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	overlaySoundCmd.Flags().IntVarP(&overlaySoundQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	overlaySoundCmd.Flags().StringVar(&overlaySoundConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	overlaySoundCmd.MarkFlagRequired("audio")

	rootCmd.AddCommand(overlaySoundCmd)
}
