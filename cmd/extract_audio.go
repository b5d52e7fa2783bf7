package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	extractAudioTo       string
	extractAudioName     string
	extractAudioQuality  int
	extractAudioConflict string
)

// Desteklenen ses çıktı formatları
var extractAudioFormats = []string{"mp3", "wav", "ogg", "flac", "aac", "m4a"}

var extractAudioCmd = &cobra.Command{
	Use:   "extract-audio <girdi>",
	Short: "Videodan ses kanalını ayrı dosya olarak çıkarır",
	Long: `Video dosyasından ses kanalını ayrı bir ses dosyası olarak çıkarır.

Örnekler:
  avtools-cli extract-audio video.mp4
  avtools-cli extract-audio video.mp4 --to wav
  avtools-cli extract-audio video.mp4 --to flac --name muzik
  avtools-cli extract-audio video.mp4 --quality 90 --on-conflict overwrite`,
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

		applyQualityDefault(cmd, "quality", &extractAudioQuality)
		applyOnConflictDefault(cmd, "on-conflict", &extractAudioConflict)

		targetFormat := strings.ToLower(strings.TrimSpace(extractAudioTo))
		if targetFormat == "" {
			targetFormat = "mp3"
		}
		if !isValidExtractAudioFormat(targetFormat) {
			return paramErr(fmt.Errorf("desteklenmeyen ses formatı: %s (desteklenen: %s)",
				targetFormat, strings.Join(extractAudioFormats, ", ")))
		}

		op := operation.ExtractAudio{}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     extractAudioName,
			suffix:   "_audio",
			fileType: targetFormat,
			quality:  extractAudioQuality,
			conflict: extractAudioConflict,
			done:     "Ses çıkarma tamamlandı!",
		})
	},
}

func init() {
	extractAudioCmd.Flags().StringVarP(&extractAudioTo, "to", "t", "mp3", "Hedef ses formatı (mp3, wav, ogg, flac, aac, m4a)")
	extractAudioCmd.Flags().StringVarP(&extractAudioName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	extractAudioCmd.Flags().IntVarP(&extractAudioQuality, "quality", "q", 0, "Ses kalitesi (1-100)")
	extractAudioCmd.Flags().StringVar(&extractAudioConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")

	rootCmd.AddCommand(extractAudioCmd)
}

func isValidExtractAudioFormat(format string) bool {
	for _, f := range extractAudioFormats {
		if f == format {
			return true
		}
	}
	return false
}
