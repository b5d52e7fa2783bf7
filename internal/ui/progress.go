package ui

import (
	"fmt"
	"strings"
	"time"
)

// Color ANSI renk kodları
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
)

// Icons kullanıcı dostu ikonlar
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️ "
	IconInfo    = "ℹ️ "
	IconRender  = "🔄"
	IconFile    = "📄"
	IconAudio   = "🎵"
	IconImage   = "🖼️ "
	IconVideo   = "🎬"
	IconBatch   = "📦"
	IconDone    = "🎉"
	IconTime    = "⏱️ "
	IconFolder  = "📁"
)

// paint metni verilen renkle sarar
func paint(color, msg string) string {
	return color + msg + Reset
}

// PrintBanner uygulama başlığını yazdırır
func PrintBanner() {
	lines := []string{
		"AVTools CLI  v1.0.0",
		"Komut satırı medya düzenleyici",
	}
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString("\n" + Cyan + Bold)
	b.WriteString("  ╔" + strings.Repeat("═", width+6) + "╗\n")
	for _, l := range lines {
		pad := width - len([]rune(l))
		b.WriteString("  ║   " + l + strings.Repeat(" ", pad+3) + "║\n")
	}
	b.WriteString("  ╚" + strings.Repeat("═", width+6) + "╝")
	b.WriteString(Reset)
	fmt.Println(b.String())
}

// PrintSuccess başarılı mesaj
func PrintSuccess(msg string) {
	fmt.Printf("%s %s\n", IconSuccess, paint(Green, msg))
}

// PrintError hata mesajı
func PrintError(msg string) {
	fmt.Printf("%s %s\n", IconError, paint(Red, msg))
}

// PrintWarning uyarı mesajı
func PrintWarning(msg string) {
	fmt.Printf("%s %s\n", IconWarning, paint(Yellow, msg))
}

// PrintInfo bilgi mesajı
func PrintInfo(msg string) {
	fmt.Printf("%s %s\n", IconInfo, paint(Blue, msg))
}

// PrintRender işlenen dosyayı ve çıktısını yazdırır
func PrintRender(input, output string) {
	fmt.Printf("%s  %s → %s\n", IconRender, paint(Dim, input), paint(Green, output))
}

// PrintDuration süre bilgisi
func PrintDuration(d time.Duration) {
	fmt.Printf("%s  Süre: %s\n", IconTime, paint(Cyan, formatDuration(d)))
}

// ProgressBar ilerleme çubuğu gösterir
type ProgressBar struct {
	Total   int
	Current int
	Width   int
	Label   string
}

// NewProgressBar yeni bir progress bar oluşturur
func NewProgressBar(total int, label string) *ProgressBar {
	return &ProgressBar{
		Total: total,
		Width: 40,
		Label: label,
	}
}

// Update ilerlemeyi günceller ve çubuğu aynı satıra yeniden çizer
func (pb *ProgressBar) Update(current int) {
	pb.Current = current
	if pb.Total <= 0 {
		return
	}

	ratio := float64(current) / float64(pb.Total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(float64(pb.Width) * ratio)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.Width-filled)
	fmt.Printf("\r  %s [%s] %s (%d/%d)",
		paint(Bold, pb.Label),
		paint(Green, bar),
		paint(Cyan, fmt.Sprintf("%.0f%%", ratio*100)),
		current, pb.Total)

	if current >= pb.Total {
		fmt.Println()
	}
}

// tableRule tablo kenar çizgisi üretir (ör. "┌─┬─┐")
func tableRule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return "  " + left + strings.Join(parts, mid) + right
}

// PrintTable basit bir ASCII tablo yazdırır
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	renderRow := func(cells []string, bold bool) string {
		var b strings.Builder
		b.WriteString("  │")
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if bold {
				b.WriteString(fmt.Sprintf(" %s │", paint(Bold, fmt.Sprintf("%-*s", widths[i], cell))))
			} else {
				b.WriteString(fmt.Sprintf(" %-*s │", widths[i], cell))
			}
		}
		return b.String()
	}

	fmt.Println(tableRule(widths, "┌", "┬", "┐"))
	fmt.Println(renderRow(headers, true))
	fmt.Println(tableRule(widths, "├", "┼", "┤"))
	for _, row := range rows {
		fmt.Println(renderRow(row, false))
	}
	fmt.Println(tableRule(widths, "└", "┴", "┘"))
}

// PrintBatchSummary toplu iş özetini yazdırır
func PrintBatchSummary(total, succeeded, skipped, failed int, duration time.Duration) {
	line := func(label, color string, value string) {
		pad := 10 - len([]rune(label))
		if pad < 1 {
			pad = 1
		}
		fmt.Printf("  %s%s%s\n", label, strings.Repeat(" ", pad), paint(color, value))
	}

	fmt.Println()
	fmt.Printf("  %s %s\n", IconDone, paint(Bold, "Toplu İşlem Tamamlandı"))
	fmt.Println("  " + strings.Repeat("─", 40))
	line("Toplam:", Cyan, fmt.Sprintf("%d dosya", total))
	line("Başarılı:", Green, fmt.Sprintf("%d dosya", succeeded))
	if skipped > 0 {
		line("Atlanan:", Yellow, fmt.Sprintf("%d dosya", skipped))
	}
	if failed > 0 {
		line("Başarısız:", Red, fmt.Sprintf("%d dosya", failed))
	}
	line("Süre:", Yellow, formatDuration(duration))
	fmt.Println()
}

// formatDuration süreyi okunabilir formata çevirir
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Microseconds()))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Milliseconds()))
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// FormatIcon uzantının medya türüne göre ikon döner
func FormatIcon(format string) string {
	switch format {
	case "mp3", "wav", "ogg", "flac", "aac", "m4a", "wma", "opus":
		return IconAudio
	case "png", "jpg", "jpeg", "webp", "bmp", "gif", "tif", "tiff":
		return IconImage
	case "mp4", "mov", "mkv", "avi", "webm", "m4v", "wmv", "flv":
		return IconVideo
	default:
		return IconFile
	}
}
