package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/engine"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
)

// ========================================
// Parametre seçim ekranları
// ========================================

func (m interactiveModel) viewParamSelect() string {
	var b strings.Builder

	title := ""
	switch m.state {
	case stateAngleSelect:
		title = " ◆ Döndürme Açısı "
	case stateRateSelect:
		title = " ◆ Oynatma Hızı "
	case stateAudioFormatSelect:
		title = " ◆ Ses Formatı "
	}

	b.WriteString("\n")
	b.WriteString(m.paramBreadcrumb())
	b.WriteString(menuTitleStyle.Render(title))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		icon := ""
		if i < len(m.choiceIcons) {
			icon = m.choiceIcons[i]
		}
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s  %s", icon, choice)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s  %s", icon, choice)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Başlat  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// viewTextInput tek satırlık sayı/zaman girişi ekranı
func (m interactiveModel) viewTextInput(title, value, hint string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.paramBreadcrumb())
	b.WriteString(menuTitleStyle.Render(fmt.Sprintf(" ◆ %s ", title)))
	b.WriteString("\n\n")

	cursor := " "
	if m.showCursor {
		cursor = "▌"
	}

	inputStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(secondaryColor).
		PaddingLeft(2)
	b.WriteString(inputStyle.Render(fmt.Sprintf("> %s%s", value, cursor)))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  " + hint))
	b.WriteString("\n")

	if m.paramErrMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  ⚠ " + m.paramErrMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Sayı/zaman gir  •  Backspace Sil  •  Enter Devam  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// paramBreadcrumb seçili işlem ve dosyayı üst satırda gösterir
func (m interactiveModel) paramBreadcrumb() string {
	if m.selectedOp >= len(interactiveOps) || m.selectedFile == "" {
		return ""
	}
	op := interactiveOps[m.selectedOp]
	crumb := fmt.Sprintf("  %s %s  ›  🎬 %s", op.Icon,
		lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(op.Name),
		filepath.Base(m.selectedFile))
	return breadcrumbStyle.Render(crumb) + "\n\n"
}

// ========================================
// Metin girişi
// ========================================

// currentTextInputField aktif ekranın giriş alanını döner
func (m *interactiveModel) currentTextInputField() *string {
	switch m.state {
	case stateStartInput:
		return &m.startInput
	case stateDurationInput:
		return &m.durationInput
	case stateSegmentInput:
		return &m.segmentInput
	default:
		return nil
	}
}

// appendTextInput rakam, ':' ve ondalık ayraç dışındaki girişleri yok sayar
func (m *interactiveModel) appendTextInput(key string) {
	field := m.currentTextInputField()
	if field == nil {
		return
	}
	if len([]rune(key)) != 1 {
		return
	}

	r := []rune(key)[0]
	if r == ',' {
		r = '.'
	}
	if (r < '0' || r > '9') && r != ':' && r != '.' {
		return
	}

	*field += string(r)
	m.paramErrMsg = ""
}

func (m *interactiveModel) popTextInput() {
	field := m.currentTextInputField()
	if field == nil || *field == "" {
		return
	}
	runes := []rune(*field)
	*field = string(runes[:len(runes)-1])
	m.paramErrMsg = ""
}

// ========================================
// İşlem çalıştırıcılar
// ========================================

// doApply seçili tek çıktılı işlemi arka planda çalıştırır
func (m interactiveModel) doApply() tea.Cmd {
	input := m.selectedFile
	opKey := interactiveOps[m.selectedOp].Key
	angle := m.angleChoice
	rate := m.rateChoice
	audioFormat := m.audioFormat
	startRaw := m.startInput
	durationRaw := m.durationInput
	outDir := m.defaultOutput

	return func() tea.Msg {
		started := time.Now()

		output, err := applyInteractiveOp(context.Background(), input, opKey,
			angle, rate, audioFormat, startRaw, durationRaw, outDir)

		return applyDoneMsg{
			err:      err,
			duration: time.Since(started),
			output:   output,
		}
	}
}

// applyInteractiveOp kaynak yükler, kompozisyonu kurar ve sessizce dışa
// aktarır. Terminal TUI modunda olduğu için ui yazıcıları kullanılmaz.
func applyInteractiveOp(ctx context.Context, input, opKey string, angle, rate float64, audioFormat, startRaw, durationRaw, outDir string) (string, error) {
	eng := engine.NewEngine(false)
	if !eng.Available() {
		return "", fmt.Errorf("ffmpeg ve ffprobe kurulu olmalı")
	}

	src := media.NewSource(input, eng)
	if err := src.Load(ctx); err != nil {
		return "", err
	}

	var op operation.Composer
	suffix := ""
	fileType := containerOf(input)

	switch opKey {
	case "rotate":
		op = operation.Rotate{Angle: angle}
		suffix = "_rotated"
	case "speed":
		op = operation.Speed{Rate: rate}
		suffix = "_speed"
	case "trim":
		start, err := parseTimeArg(startRaw)
		if err != nil {
			return "", paramErr(err)
		}
		duration, err := parseTimeArg(durationRaw)
		if err != nil {
			return "", paramErr(err)
		}
		op = operation.Trim{Range: avtime.NewRange(start, duration)}
		suffix = "_trim"
	case "extract-audio":
		op = operation.ExtractAudio{}
		suffix = "_audio"
		fileType = audioFormat
	case "extract-video":
		op = operation.ExtractVideo{}
		suffix = "_video"
	default:
		return "", fmt.Errorf("bilinmeyen işlem: %s", opKey)
	}

	res, err := op.Compose(ctx, src)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := strings.TrimSpace(outDir)
	if dir == "" {
		dir = filepath.Dir(input)
	}
	outputPath := filepath.Join(dir, base+suffix+"."+fileType)

	job := export.Job{
		Composition: res.Composition,
		Instruction: res.Instruction,
		Mix:         res.Mix,
		OutputPath:  outputPath,
		FileType:    fileType,
	}
	if res.Clip != nil {
		job = export.Job{
			SourcePath: res.Clip.SourcePath,
			Clip:       &res.Clip.Range,
			OutputPath: outputPath,
			FileType:   fileType,
		}
	}

	exp := export.NewExporter(eng, export.ConflictVersioned)
	resolved, _, err := exp.Export(ctx, job)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// doSplit videoyu segmentlere böler ve özetle döner
func (m interactiveModel) doSplit() tea.Cmd {
	input := m.selectedFile
	segmentRaw := m.segmentInput
	outDir := m.defaultOutput

	return func() tea.Msg {
		started := time.Now()

		output, err := splitInteractive(context.Background(), input, segmentRaw, outDir)

		return applyDoneMsg{
			err:      err,
			duration: time.Since(started),
			output:   output,
		}
	}
}

func splitInteractive(ctx context.Context, input, segmentRaw, outDir string) (string, error) {
	secs, err := parseClockSeconds(segmentRaw)
	if err != nil {
		return "", paramErr(err)
	}

	eng := engine.NewEngine(false)
	if !eng.Available() {
		return "", fmt.Errorf("ffmpeg ve ffprobe kurulu olmalı")
	}

	src := media.NewSource(input, eng)
	if err := src.Load(ctx); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := strings.TrimSpace(outDir)
	if dir == "" {
		dir = filepath.Dir(input)
	}

	op := operation.Split{
		SegmentSeconds: secs,
		OutputDir:      dir,
		BaseName:       base,
		FileType:       containerOf(input),
	}

	exp := export.NewExporter(eng, export.ConflictVersioned)
	pool := export.NewPool(workers)

	_, summary, runErr := op.Run(ctx, src, exp, pool)
	if runErr != nil {
		return "", runErr
	}
	if summary.Failed > 0 {
		return "", fmt.Errorf("%d segment başarısız oldu", summary.Failed)
	}

	return fmt.Sprintf("%s (%d segment)", dir, summary.Succeeded), nil
}

// doProbeInfo medya dosyasını inceler ve bilgi satırlarını döner
func (m interactiveModel) doProbeInfo() tea.Cmd {
	input := m.selectedFile

	return func() tea.Msg {
		eng := engine.NewEngine(false)
		if !eng.Available() {
			return infoDoneMsg{err: fmt.Errorf("ffmpeg ve ffprobe kurulu olmalı")}
		}

		src := media.NewSource(input, eng)
		if err := src.Load(context.Background()); err != nil {
			return infoDoneMsg{err: err}
		}

		return infoDoneMsg{lines: mediaInfoLines(buildMediaInfo(src))}
	}
}

// mediaInfoLines probe özetini TUI kutusu için satırlara döker
func mediaInfoLines(info mediaInfo) []string {
	labelStyle := lipgloss.NewStyle().Foreground(dimTextColor).Width(14)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(textColor)

	line := func(label, value string) string {
		return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
	}

	lines := []string{
		line("Kategori", categoryLabel(info.Category)),
		line("Boyut", info.SizeText),
		line("Süre", info.Duration),
	}
	if info.Resolution != "" {
		lines = append(lines, line("Çözünürlük", info.Resolution))
	}
	if info.Orientation != "" {
		lines = append(lines, line("Yönelim", info.Orientation))
	}
	if info.VideoCodec != "" {
		lines = append(lines, line("Video Codec", info.VideoCodec))
	}
	if info.AudioCodec != "" {
		lines = append(lines, line("Ses Codec", info.AudioCodec))
	}
	lines = append(lines, line("Akışlar",
		fmt.Sprintf("%d video, %d ses", info.VideoTracks, info.AudioTracks)))

	return lines
}
