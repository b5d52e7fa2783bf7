package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlihgenel/avtools-cli/internal/engine"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

// exportSettings bir operasyon komutunun çıktı ayarlarıdır.
type exportSettings struct {
	name     string // uzantısız özel dosya adı (--name)
	suffix   string // özel ad yoksa taban ada eklenen son ek
	fileType string // çıktı kabı, nokta olmadan
	quality  int
	conflict string
	done     string // başarı mesajı
}

// newEngine ffmpeg backend'ini kurar ve araçların varlığını doğrular.
func newEngine() (*engine.Engine, error) {
	eng := engine.NewEngine(verbose)
	if !eng.Available() {
		return nil, fmt.Errorf("medya işlemleri için ffmpeg ve ffprobe gerekli (avtools-cli doctor ile kontrol edin)")
	}
	return eng, nil
}

// paramErr CLI'dan gelen geçersiz değeri parametre hata sınıfına bağlar.
func paramErr(err error) error {
	return fmt.Errorf("%w: %v", operation.ErrParameter, err)
}

// requireInput girdi dosyasının varlığını doğrular.
func requireInput(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: dosya bulunamadi: %s", media.ErrLoad, path)
	}
	return nil
}

// requireDir girdi dizininin varlığını doğrular.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: dizin bulunamadi: %s", export.ErrFilesystem, path)
	}
	return nil
}

// containerOf girdinin uzantısını çıktı kabı olarak döner; uzantısız
// girdiler mp4'e düşer.
func containerOf(input string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input)), ".")
	if ext == "" {
		return "mp4"
	}
	return ext
}

// outputPathFor girdi dosyasından çıktı yolunu kurar. --output verilmişse
// oraya, verilmemişse girdinin dizinine yazılır.
func outputPathFor(input string, s exportSettings) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if strings.TrimSpace(s.name) != "" {
		base = strings.TrimSpace(s.name)
	} else {
		base += s.suffix
	}

	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+"."+s.fileType)
}

// runComposer tek kaynaklı bir operasyonu uçtan uca çalıştırır: kaynağı
// yükler, kompozisyonu kurar ve sonucu dışa aktarır.
func runComposer(ctx context.Context, eng *engine.Engine, op operation.Composer, input string, s exportSettings) error {
	src := media.NewSource(input, eng)
	if err := src.Load(ctx); err != nil {
		return err
	}

	res, err := op.Compose(ctx, src)
	if err != nil {
		return err
	}

	return exportResult(ctx, eng, res, input, s)
}

// exportResult kompozisyon sonucunu dışa aktarım işine çevirip çalıştırır.
func exportResult(ctx context.Context, eng *engine.Engine, res *operation.ComposeResult, input string, s exportSettings) error {
	job := export.Job{
		Composition: res.Composition,
		Instruction: res.Instruction,
		Mix:         res.Mix,
		OutputPath:  outputPathFor(input, s),
		FileType:    s.fileType,
		Quality:     s.quality,
	}
	if res.Clip != nil {
		job = export.Job{
			SourcePath: res.Clip.SourcePath,
			Clip:       &res.Clip.Range,
			OutputPath: job.OutputPath,
			FileType:   s.fileType,
			Quality:    s.quality,
		}
	}

	exp := export.NewExporter(eng, s.conflict)

	ui.PrintRender(input, job.OutputPath)
	started := time.Now()

	resolved, skip, err := exp.Export(ctx, job)
	if err != nil {
		return err
	}
	if skip {
		ui.PrintWarning(fmt.Sprintf("Çıktı dosyası mevcut, atlandı: %s", resolved))
		return nil
	}

	done := s.done
	if done == "" {
		done = "İşlem tamamlandı!"
	}
	ui.PrintSuccess(fmt.Sprintf("%s → %s", done, resolved))
	ui.PrintDuration(time.Since(started))
	return nil
}
