package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/engine"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/ui"
	avwatch "github.com/mlihgenel/avtools-cli/internal/watch"
)

var (
	watchOp         string
	watchAngle      float64
	watchRect       string
	watchRate       float64
	watchTo         string
	watchExt        string
	watchRecursive  bool
	watchQuality    int
	watchOnConflict string
	watchRetry      int
	watchRetryDelay time.Duration
	watchInterval   time.Duration
	watchSettle     time.Duration
	watchReport     string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dizin>",
	Short: "Klasörü izleyip yeni medya dosyalarına işlem uygula",
	Long: `Belirtilen klasörü izler ve yeni/degisen dosyalar stabilize olunca
seçilen işlemi otomatik uygular. Dosya sistemi olayları desteklenmiyorsa
polling'e düşer.

Desteklenen işlemler: rotate, crop, speed, extract-video, extract-audio

Örnekler:
  avtools-cli watch ./gelen --op rotate --angle 90
  avtools-cli watch ./gelen --op extract-audio --to mp3 --recursive
  avtools-cli watch ./kayitlar --op speed --rate 2 --ext mp4 --on-conflict versioned
  avtools-cli watch ./gelen --op extract-video --retry 2 --retry-delay 1s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceDir := args[0]

		if err := requireDir(sourceDir); err != nil {
			return err
		}

		applyQualityDefault(cmd, "quality", &watchQuality)
		applyOnConflictDefault(cmd, "on-conflict", &watchOnConflict)
		applyRetryDefaults(cmd, "retry", &watchRetry, "retry-delay", &watchRetryDelay)
		applyReportDefault(cmd, "report", &watchReport)

		conflictPolicy := export.NormalizeConflictPolicy(watchOnConflict)
		if conflictPolicy == "" {
			return paramErr(fmt.Errorf("gecersiz on-conflict politikasi: %s", watchOnConflict))
		}
		reportFormat := export.NormalizeReportFormat(watchReport)
		if reportFormat == "" {
			return paramErr(fmt.Errorf("gecersiz report formati: %s", watchReport))
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		op, suffix, fileType, err := watchOperation(cmd)
		if err != nil {
			return err
		}

		w, werr := avwatch.NewAdaptiveWatcher(sourceDir, watchExt, watchRecursive, watchSettle)
		if werr != nil {
			ui.PrintWarning(fmt.Sprintf("Olay tabanlı izleme kurulamadı, polling kullanılacak: %s", werr.Error()))
		}
		if err := w.Bootstrap(); err != nil {
			return fmt.Errorf("%w: izleme başlatılamadı: %v", export.ErrFilesystem, err)
		}

		pool := export.NewPool(workers)
		pool.SetRetry(watchRetry, watchRetryDelay)

		ui.PrintInfo(fmt.Sprintf("İzleme başladı: %s (mod: %s, işlem: %s)", sourceDir, w.Mode(), op.Name()))
		ui.PrintInfo("Durdurmak için Ctrl+C kullanın.")

		var events <-chan struct{}
		if ew, ok := w.(*avwatch.EventWatcher); ok {
			events = ew.Events()
			defer ew.Close()
		}

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ticker.C:
			case <-events:
			case <-sigCh:
				ui.PrintInfo("İzleme durduruldu.")
				return nil
			}

			files, err := w.Poll(time.Now())
			if err != nil {
				ui.PrintWarning(fmt.Sprintf("İzleme hatası: %s", err.Error()))
				continue
			}
			if len(files) == 0 {
				continue
			}

			runWatchBatch(cmd.Context(), eng, pool, op, files, suffix, fileType, conflictPolicy, reportFormat)
		}
	},
}

// runWatchBatch stabilize olmuş dosyaları tek bir batch olarak işler.
// Batch hataları izlemeyi durdurmaz; özet basılır ve döngü devam eder.
func runWatchBatch(ctx context.Context, eng *engine.Engine, pool *export.Pool, op operation.Composer, files []string, suffix, fileType, conflictPolicy, reportFormat string) {
	ui.PrintInfo(fmt.Sprintf("%d yeni dosya bulundu.", len(files)))

	jobs := make([]export.SegmentJob, 0, len(files))
	reserved := make(map[string]struct{}, len(files))
	for i, f := range files {
		ft := fileType
		if ft == "" {
			ft = containerOf(f)
		}
		base := outputPathFor(f, exportSettings{suffix: suffix, fileType: ft})
		resolved, skipReason, rerr := resolveWatchOutputPath(base, conflictPolicy, reserved)
		if rerr != nil {
			ui.PrintWarning(fmt.Sprintf("Çıktı yolu çözülemedi: %s", rerr.Error()))
			continue
		}
		jobs = append(jobs, export.SegmentJob{
			Index:      i,
			InputPath:  f,
			OutputPath: resolved,
			SkipReason: skipReason,
		})
	}
	if len(jobs) == 0 {
		return
	}

	run := func(ctx context.Context, job export.SegmentJob) error {
		src := media.NewSource(job.InputPath, eng)
		if err := src.Load(ctx); err != nil {
			return err
		}
		res, err := op.Compose(ctx, src)
		if err != nil {
			return err
		}

		ft := fileType
		if ft == "" {
			ft = containerOf(job.InputPath)
		}
		out := export.Job{
			OutputPath: job.OutputPath,
			FileType:   ft,
			Quality:    watchQuality,
		}
		if res.Clip != nil {
			out.SourcePath = res.Clip.SourcePath
			out.Clip = &res.Clip.Range
		} else {
			out.Composition = res.Composition
			out.Instruction = res.Instruction
			out.Mix = res.Mix
		}

		if err := export.EnsureDir(filepath.Dir(job.OutputPath)); err != nil {
			return err
		}
		return eng.Render(ctx, out)
	}

	startedAt := time.Now()
	results := pool.Execute(ctx, jobs, run)
	endedAt := time.Now()

	summary := export.Summarize(results, endedAt.Sub(startedAt))
	ui.PrintBatchSummary(summary.Total, summary.Succeeded, summary.Skipped, summary.Failed, summary.Duration)

	if len(summary.Errors) > 0 {
		ui.PrintWarning("Başarısız işler:")
		for _, e := range summary.Errors {
			fmt.Printf("  %s %s: %s (deneme: %d)\n", ui.IconError, e.OutputPath, e.Error, e.Attempts)
		}
		fmt.Println()
	}

	if reportFormat != export.ReportOff {
		text, rerr := export.RenderReport(reportFormat, summary, results, startedAt, endedAt)
		if rerr != nil {
			ui.PrintWarning(fmt.Sprintf("Rapor üretilemedi: %s", rerr.Error()))
		} else if text != "" {
			fmt.Println(text)
		}
	}
}

// watchOperation --op değerinden sabit parametreli işlemi kurar. Dönen
// fileType boşsa her dosya kendi kapsayıcısında kalır.
func watchOperation(cmd *cobra.Command) (op operation.Composer, suffix, fileType string, err error) {
	switch strings.ToLower(strings.TrimSpace(watchOp)) {
	case "rotate":
		if !cmd.Flags().Changed("angle") {
			return nil, "", "", paramErr(fmt.Errorf("rotate işlemi için --angle gerekli"))
		}
		return operation.Rotate{Angle: watchAngle}, "_rotated", "", nil
	case "crop":
		if watchRect == "" {
			return nil, "", "", paramErr(fmt.Errorf("crop işlemi için --rect gerekli"))
		}
		rect, perr := parseRectArg(watchRect)
		if perr != nil {
			return nil, "", "", paramErr(perr)
		}
		return operation.Crop{Rect: rect}, "_cropped", "", nil
	case "speed":
		if !cmd.Flags().Changed("rate") {
			return nil, "", "", paramErr(fmt.Errorf("speed işlemi için --rate gerekli"))
		}
		return operation.Speed{Rate: watchRate}, "_speed", "", nil
	case "extract-video":
		return operation.ExtractVideo{}, "_video", "", nil
	case "extract-audio":
		format := strings.ToLower(strings.TrimSpace(watchTo))
		if format == "" {
			format = "mp3"
		}
		if !isValidExtractAudioFormat(format) {
			return nil, "", "", paramErr(fmt.Errorf("desteklenmeyen ses formatı: %s (desteklenen: %s)", format, strings.Join(extractAudioFormats, ", ")))
		}
		return operation.ExtractAudio{}, "_audio", format, nil
	case "":
		return nil, "", "", paramErr(fmt.Errorf("işlem belirtilmedi, --op kullanın"))
	default:
		return nil, "", "", paramErr(fmt.Errorf("bilinmeyen işlem: %s (rotate, crop, speed, extract-video, extract-audio)", watchOp))
	}
}

// resolveWatchOutputPath çakışma politikasını uygular ve aynı batch içinde
// iki işin aynı hedefe yazmasını engeller. skipReason doluysa iş atlanır.
func resolveWatchOutputPath(path, policy string, reserved map[string]struct{}) (string, string, error) {
	resolved, skip, err := export.ResolveOutputConflict(path, policy)
	if err != nil {
		return "", "", err
	}
	if skip {
		reserved[resolved] = struct{}{}
		return resolved, "output_exists", nil
	}

	if _, taken := reserved[resolved]; taken {
		ext := filepath.Ext(path)
		stem := strings.TrimSuffix(path, ext)
		found := false
		for i := 1; i < 100000; i++ {
			candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
			if _, statErr := os.Stat(candidate); !errors.Is(statErr, os.ErrNotExist) {
				continue
			}
			if _, t := reserved[candidate]; t {
				continue
			}
			resolved = candidate
			found = true
			break
		}
		if !found {
			return "", "", fmt.Errorf("uygun versioned dosya adi bulunamadi")
		}
	}

	reserved[resolved] = struct{}{}
	return resolved, "", nil
}

func init() {
	watchCmd.Flags().StringVar(&watchOp, "op", "", "Uygulanacak işlem (zorunlu): rotate, crop, speed, extract-video, extract-audio")
	watchCmd.Flags().Float64Var(&watchAngle, "angle", 0, "Döndürme açısı (rotate için, derece)")
	watchCmd.Flags().StringVar(&watchRect, "rect", "", "Kırpma dikdörtgeni (crop için): \"x y genişlik yükseklik\"")
	watchCmd.Flags().Float64Var(&watchRate, "rate", 0, "Hız çarpanı (speed için)")
	watchCmd.Flags().StringVar(&watchTo, "to", "", "Ses formatı (extract-audio için, varsayılan: mp3)")
	watchCmd.Flags().StringVar(&watchExt, "ext", "", "Sadece bu uzantıyı izle (boşsa tüm medya dosyaları)")
	watchCmd.Flags().BoolVarP(&watchRecursive, "recursive", "r", false, "Alt dizinleri de izle")
	watchCmd.Flags().IntVarP(&watchQuality, "quality", "q", 0, "Kalite seviyesi (1-100)")
	watchCmd.Flags().StringVar(&watchOnConflict, "on-conflict", export.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	watchCmd.Flags().IntVar(&watchRetry, "retry", 0, "Başarısız işler için otomatik tekrar sayısı")
	watchCmd.Flags().DurationVar(&watchRetryDelay, "retry-delay", 500*time.Millisecond, "Retry denemeleri arası bekleme (örn: 500ms, 2s)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "Klasör tarama aralığı")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 1500*time.Millisecond, "Dosyanın stabil sayılması için bekleme süresi")
	watchCmd.Flags().StringVar(&watchReport, "report", export.ReportOff, "Batch sonrası rapor: off, txt, json")

	watchCmd.MarkFlagRequired("op")

	rootCmd.AddCommand(watchCmd)
}
