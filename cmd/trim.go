package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

var (
	trimStart    string
	trimEnd      string
	trimDuration string
	trimName     string
	trimQuality  int
	trimConflict string
)

var trimCmd = &cobra.Command{
	Use:   "trim <girdi>",
	Short: "Videodan bir aralığı keser",
	Long: `Videodan verilen aralığı yeni bir dosyaya keser. Aralık --start ile
birlikte --end veya --duration bayraklarından biriyle verilir; ikisi aynı
anda verilemez. Zamanlar saniye, MM:SS veya HH:MM:SS biçiminde yazılabilir.
Kaynak sonunu aşan aralık sona kırpılır.

Örnekler:
  avtools-cli trim video.mp4 --start 5 --end 12.5
  avtools-cli trim video.mp4 --start 1:30 --duration 45
  avtools-cli trim video.mp4 --start 0 --end 0:30 --name acilis`,
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

		applyQualityDefault(cmd, "quality", &trimQuality)
		applyOnConflictDefault(cmd, "on-conflict", &trimConflict)

		r, err := trimRangeFromFlags()
		if err != nil {
			return err
		}

		op := operation.Trim{Range: r}
		return runComposer(cmd.Context(), eng, op, input, exportSettings{
			name:     trimName,
			suffix:   "_trim",
			fileType: containerOf(input),
			quality:  trimQuality,
			conflict: trimConflict,
			done:     "Kesme tamamlandı!",
		})
	},
}

func trimRangeFromFlags() (avtime.Range, error) {
	hasEnd := strings.TrimSpace(trimEnd) != ""
	hasDuration := strings.TrimSpace(trimDuration) != ""
	if hasEnd && hasDuration {
		return avtime.Range{}, paramErr(fmt.Errorf("--end ve --duration birlikte verilemez"))
	}
	if !hasEnd && !hasDuration {
		return avtime.Range{}, paramErr(fmt.Errorf("--end veya --duration verilmeli"))
	}

	start, err := parseTimeArg(trimStart)
	if err != nil {
		return avtime.Range{}, paramErr(err)
	}

	if hasDuration {
		duration, err := parseTimeArg(trimDuration)
		if err != nil {
			return avtime.Range{}, paramErr(err)
		}
		return avtime.NewRange(start, duration), nil
	}

	end, err := parseTimeArg(trimEnd)
	if err != nil {
		return avtime.Range{}, paramErr(err)
	}
	if end.Cmp(start) <= 0 {
		return avtime.Range{}, paramErr(fmt.Errorf("bitiş başlangıçtan büyük olmalı"))
	}
	return avtime.NewRange(start, end.Sub(start)), nil
}

func init() {
	trimCmd.Flags().StringVarP(&trimStart, "start", "s", "0", "Başlangıç zamanı (saniye, MM:SS veya HH:MM:SS)")
	trimCmd.Flags().StringVarP(&trimEnd, "end", "e", "", "Bitiş zamanı")
	trimCmd.Flags().StringVarP(&trimDuration, "duration", "d", "", "Aralık süresi (--end yerine)")
	trimCmd.Flags().StringVarP(&trimName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	trimCmd.Flags().IntVarP(&trimQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	trimCmd.Flags().StringVar(&trimConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")

	rootCmd.AddCommand(trimCmd)
}
