package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

var (
	splitSegmentDuration float64
	splitName            string
	splitQuality         int
	splitConflict        string
	splitReport          string
)

var splitCmd = &cobra.Command{
	Use:   "split <girdi>",
	Short: "Videoyu sabit uzunluklu segmentlere böler",
	Long: `Videoyu verilen saniye uzunluğunda ardışık segmentlere böler ve her
segmenti paralel olarak ayrı bir dosyaya aktarır. Son segment artan süre
kadardır. Segment dosyaları başlangıç saniyesiyle numaralanır
(video_000.mp4, video_060.mp4, ...). Bir segmentin hatası kardeşlerini
durdurmaz; sonuçlar segment başına özetlenir.

Örnekler:
  avtools-cli split video.mp4 --segment-duration 60
  avtools-cli split video.mp4 --segment-duration 30 --workers 8
  avtools-cli split video.mp4 --segment-duration 10 --name parca --report json`,
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

		applyQualityDefault(cmd, "quality", &splitQuality)
		applyOnConflictDefault(cmd, "on-conflict", &splitConflict)
		applyReportDefault(cmd, "report", &splitReport)

		reportFormat := export.NormalizeReportFormat(splitReport)
		if reportFormat == "" {
			return paramErr(fmt.Errorf("gecersiz report formati: %s", splitReport))
		}

		ctx := cmd.Context()
		src := media.NewSource(input, eng)
		if err := src.Load(ctx); err != nil {
			return err
		}

		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if strings.TrimSpace(splitName) != "" {
			base = strings.TrimSpace(splitName)
		}
		dir := strings.TrimSpace(outputDir)
		if dir == "" {
			dir = filepath.Dir(input)
		}

		op := operation.Split{
			SegmentSeconds: splitSegmentDuration,
			OutputDir:      dir,
			BaseName:       base,
			FileType:       containerOf(input),
			Quality:        splitQuality,
		}

		exp := export.NewExporter(eng, splitConflict)
		pool := export.NewPool(workers)

		pb := ui.NewProgressBar(0, "Bölünüyor")
		pool.OnProgress = func(completed, total int) {
			pb.Total = total
			pb.Update(completed)
		}

		fmt.Println()
		startedAt := time.Now()
		results, summary, runErr := op.Run(ctx, src, exp, pool)
		endedAt := time.Now()

		ui.PrintBatchSummary(summary.Total, summary.Succeeded, summary.Skipped, summary.Failed, summary.Duration)

		if len(summary.Errors) > 0 {
			ui.PrintError("Başarısız segmentler:")
			for _, e := range summary.Errors {
				fmt.Printf("  %s %s: %s\n", ui.IconError, e.OutputPath, e.Error)
			}
			fmt.Println()
		}

		reportText, reportErr := export.RenderReport(reportFormat, summary, results, startedAt, endedAt)
		if reportErr != nil {
			ui.PrintError(fmt.Sprintf("Rapor üretilemedi: %s", reportErr.Error()))
		} else if strings.TrimSpace(reportText) != "" {
			fmt.Println(reportText)
		}

		return runErr
	},
}

func init() {
	splitCmd.Flags().Float64VarP(&splitSegmentDuration, "segment-duration", "s", 0, "Segment uzunluğu (saniye)")
	splitCmd.Flags().StringVarP(&splitName, "name", "n", "", "Segment dosya adlarının tabanı (uzantısız)")
	splitCmd.Flags().IntVarP(&splitQuality, "quality", "q", 0, "Çıktı kalitesi (1-100)")
	splitCmd.Flags().StringVar(&splitConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	splitCmd.Flags().StringVar(&splitReport, "report", export.ReportOff, "Rapor formatı: off, txt, json")
	splitCmd.MarkFlagRequired("segment-duration")

	rootCmd.AddCommand(splitCmd)
}
