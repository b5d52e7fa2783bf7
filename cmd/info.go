package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

// mediaInfo info komutunun hem metin hem JSON çıktısını besleyen özettir.
type mediaInfo struct {
	FileName    string  `json:"file_name"`
	Path        string  `json:"path"`
	Category    string  `json:"category"`
	SizeBytes   int64   `json:"size_bytes"`
	SizeText    string  `json:"size_text"`
	DurationSec float64 `json:"duration_seconds"`
	Duration    string  `json:"duration"`
	Resolution  string  `json:"resolution,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	VideoCodec  string  `json:"video_codec,omitempty"`
	AudioCodec  string  `json:"audio_codec,omitempty"`
	VideoTracks int     `json:"video_tracks"`
	AudioTracks int     `json:"audio_tracks"`
}

var infoCmd = &cobra.Command{
	Use:   "info <dosya>",
	Short: "Medya dosyası hakkında detaylı bilgi göster",
	Long: `Bir medya dosyasının süre, çözünürlük, yönelim, codec ve akış bilgilerini
gösterir.

Örnekler:
  avtools-cli info video.mp4
  avtools-cli info muzik.mp3
  avtools-cli info video.mp4 --output-format json`,
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

		if _, err := resolveOutputFormat(); err != nil {
			return paramErr(err)
		}

		src := media.NewSource(input, eng)
		if err := src.Load(cmd.Context()); err != nil {
			return err
		}

		info := buildMediaInfo(src)

		if isJSONOutput() {
			return printJSON(info)
		}

		printMediaInfo(info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func buildMediaInfo(src *media.Source) mediaInfo {
	info := mediaInfo{
		FileName:    filepath.Base(src.Path()),
		Path:        src.Path(),
		Category:    "audio",
		DurationSec: src.Duration().Seconds(),
		Duration:    formatClock(src.Duration().Seconds()),
		VideoTracks: len(src.TracksOf(media.TypeVideo)),
		AudioTracks: len(src.TracksOf(media.TypeAudio)),
	}

	if fi, err := os.Stat(src.Path()); err == nil {
		info.SizeBytes = fi.Size()
		info.SizeText = humanSize(fi.Size())
	}

	if video, ok := src.FirstTrack(media.TypeVideo); ok {
		info.Category = "video"
		info.Resolution = fmt.Sprintf("%.0fx%.0f", video.Size.Width, video.Size.Height)
		info.Orientation = src.Orientation().String()
		info.VideoCodec = video.Codec
	}
	if audio, ok := src.FirstTrack(media.TypeAudio); ok {
		info.AudioCodec = audio.Codec
	}

	return info
}

func printMediaInfo(info mediaInfo) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E2E8F0")).
		Width(16)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748B"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#334155")).
		Padding(1, 2).
		MarginTop(1)

	var lines []string

	icon := ui.IconAudio
	if info.Category == "video" {
		icon = ui.IconVideo
	}
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s  %s", icon, info.FileName)))
	lines = append(lines, dimStyle.Render(strings.Repeat("─", 40)))

	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Kategori", categoryLabel(info.Category)))
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Boyut", info.SizeText))
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Süre", info.Duration))

	if info.Resolution != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Çözünürlük", info.Resolution))
	}
	if info.Orientation != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Yönelim", info.Orientation))
	}
	if info.VideoCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Video Codec", info.VideoCodec))
	}
	if info.AudioCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Ses Codec", info.AudioCodec))
	}
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Akışlar",
		fmt.Sprintf("%d video, %d ses", info.VideoTracks, info.AudioTracks)))

	fmt.Println(boxStyle.Render(strings.Join(lines, "\n")))
}

func formatInfoLine(labelStyle, valueStyle lipgloss.Style, label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func categoryLabel(category string) string {
	switch category {
	case "video":
		return "Video"
	case "audio":
		return "Ses"
	default:
		return "Diğer"
	}
}

// humanSize bayt sayısını okunabilir birime çevirir.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// formatClock saniyeyi saat biçimine çevirir ("1:05", "1:02:03").
func formatClock(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	frac := seconds - float64(total)
	if frac >= 0.005 {
		return fmt.Sprintf("%d:%02d.%02d", m, s, int(frac*100+0.5))
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
