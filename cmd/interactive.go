package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/avtools-cli/internal/config"
	"github.com/mlihgenel/avtools-cli/internal/engine"
	"github.com/mlihgenel/avtools-cli/internal/installer"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

// ========================================
// Renk Paleti ve Stiller
// ========================================

var (
	// Ana renk paleti
	primaryColor   = lipgloss.Color("#7C3AED") // Mor
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#10B981") // Yeşil
	warningColor   = lipgloss.Color("#F59E0B") // Sarı
	dangerColor    = lipgloss.Color("#EF4444") // Kırmızı
	textColor      = lipgloss.Color("#E2E8F0") // Açık gri
	dimTextColor   = lipgloss.Color("#64748B") // Koyu gri

	// Gradient renkleri (banner için)
	gradientColors = []lipgloss.Color{
		"#818CF8", "#A78BFA", "#C084FC", "#E879F9", "#F472B6",
	}

	// Stiller
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2).
			MarginBottom(1)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(secondaryColor).
				PaddingLeft(2)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingLeft(4)

	descStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3).
			MarginTop(1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			PaddingLeft(2)

	selectedFileStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				PaddingLeft(2)

	folderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// ========================================
// İşlem tanımları
// ========================================

type interactiveOp struct {
	Key  string
	Name string
	Icon string
	Desc string
}

var interactiveOps = []interactiveOp{
	{Key: "rotate", Name: "Döndür", Icon: "🔄", Desc: "Videoyu 90, 180 veya 270 derece döndür"},
	{Key: "trim", Name: "Kes", Icon: "✂️ ", Desc: "Videodan zaman aralığı çıkar, orijinali koru"},
	{Key: "speed", Name: "Hız Değiştir", Icon: "⚡", Desc: "Oynatma hızını değiştir, ses perdesi korunur"},
	{Key: "split", Name: "Parçalara Böl", Icon: "📦", Desc: "Videoyu eşit uzunlukta segmentlere böl"},
	{Key: "extract-audio", Name: "Ses Çıkar", Icon: "🎵", Desc: "Videonun ses izini ayrı dosyaya al"},
	{Key: "extract-video", Name: "Görüntü Çıkar", Icon: "🎬", Desc: "Videonun sesini at, görüntü izini koru"},
}

// topLevelSections ana menü bölümleri; testler de bu listeyi kullanır.
var topLevelSections = []string{
	"İşlem Uygula",
	"Medya Bilgisi",
	"Sistem Kontrolü",
	"Ayarlar",
	"Çıkış",
}

// ========================================
// State Machine
// ========================================

type screenState int

const (
	stateWelcomeIntro screenState = iota
	stateWelcomeDeps
	stateWelcomeInstalling
	stateMainMenu
	stateSelectOperation
	stateFileBrowser
	stateAngleSelect
	stateRateSelect
	stateAudioFormatSelect
	stateStartInput
	stateDurationInput
	stateSegmentInput
	stateRunning
	stateDone
	stateInfoBrowser
	stateInfoView
	stateDependencies
	stateSettings
	stateSettingsBrowser
	stateMissingDep
	stateMissingDepInstalling
)

// ========================================
// Model
// ========================================

type interactiveModel struct {
	state  screenState
	cursor int

	// Menü
	choices     []string
	choiceIcons []string
	choiceDescs []string

	// Seçili işlem ve dosya
	selectedOp   int
	selectedFile string

	// Parametre girişleri
	angleChoice   float64
	rateChoice    float64
	audioFormat   string
	startInput    string
	durationInput string
	segmentInput  string
	paramErrMsg   string

	// Dosya tarayıcı
	browserDir    string
	browserItems  []browserEntry
	defaultOutput string

	// Sonuçlar
	resultMsg string
	resultErr bool
	duration  time.Duration

	// Medya bilgisi ekranı
	infoLines []string

	// Spinner
	spinnerIdx  int
	spinnerTick int

	// Pencere
	width  int
	height int

	// Çıkış
	quitting bool

	// Sistem durumu
	dependencies []engine.Tool

	// Karşılama ekranı
	isFirstRun         bool
	welcomeCharIdx     int
	showCursor         bool
	installingToolName string
	installResult      string

	// İşlem öncesi bağımlılık kontrolü
	pendingRunCmd  tea.Cmd
	missingDepName string

	// Ayarlar
	settingsBrowserDir   string
	settingsBrowserItems []browserEntry
}

type browserEntry struct {
	name  string
	path  string
	isDir bool
}

// Mesajlar
type applyDoneMsg struct {
	err      error
	duration time.Duration
	output   string
}

type infoDoneMsg struct {
	err   error
	lines []string
}

type installDoneMsg struct {
	err error
}

type tickMsg time.Time

func newInteractiveModel(deps []engine.Tool, firstRun bool) interactiveModel {
	homeDir := getHomeDir()

	initialState := stateMainMenu
	if firstRun {
		initialState = stateWelcomeIntro
	}

	// Varsayılan çıktı dizinini config'den oku
	defaultOut := config.GetDefaultOutputDir()
	if defaultOut == "" {
		defaultOut = homeDir
	}

	m := interactiveModel{
		state:         initialState,
		cursor:        0,
		browserDir:    defaultOut,
		defaultOutput: defaultOut,
		width:         80,
		height:        24,
		dependencies:  deps,
		isFirstRun:    firstRun,
		showCursor:    true,
		audioFormat:   "mp3",
		startInput:    "0",
		durationInput: "10",
		segmentInput:  "60",
	}
	m.setMainMenuChoices()
	return m
}

func (m *interactiveModel) setMainMenuChoices() {
	m.choices = append([]string(nil), topLevelSections...)
	m.choiceIcons = []string{"🎬", "🔍", "🔧", "⚙️", "👋"}
	m.choiceDescs = []string{
		"Seçilen videoya döndürme, kesme, hız gibi işlemler uygula",
		"Bir medya dosyasının süre, çözünürlük ve codec bilgisini gör",
		"Harici araçların (FFmpeg, FFprobe) durumu",
		"Varsayılan çıktı dizini ve tercihler",
		"Uygulamadan çık",
	}
}

// ========================================
// bubbletea Interface
// ========================================

func (m interactiveModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Spinner animasyonu
		if m.state == stateRunning || m.state == stateWelcomeInstalling || m.state == stateMissingDepInstalling {
			m.spinnerTick++
			m.spinnerIdx = m.spinnerTick % len(spinnerFrames)
			if m.spinnerTick%5 == 0 {
				m.showCursor = !m.showCursor
			}
		}

		// Karşılama ekranı typing animasyonu
		if m.state == stateWelcomeIntro {
			total := welcomeDescLen()
			if m.welcomeCharIdx < total {
				m.welcomeCharIdx += 2
				if m.welcomeCharIdx > total {
					m.welcomeCharIdx = total
				}
			}
			if m.spinnerTick%5 == 0 {
				m.showCursor = !m.showCursor
			}
			m.spinnerTick++
		}

		// Metin giriş ekranlarında cursor yanıp sönme
		if m.isTextInputState() || m.state == stateWelcomeDeps {
			m.spinnerTick++
			if m.spinnerTick%5 == 0 {
				m.showCursor = !m.showCursor
			}
		}

		return m, tickCmd()

	case applyDoneMsg:
		m.state = stateDone
		if msg.err != nil {
			m.resultMsg = msg.err.Error()
			m.resultErr = true
		} else {
			m.resultMsg = msg.output
			m.resultErr = false
		}
		m.duration = msg.duration
		return m, nil

	case infoDoneMsg:
		if msg.err != nil {
			m.state = stateDone
			m.resultMsg = msg.err.Error()
			m.resultErr = true
			return m, nil
		}
		m.infoLines = msg.lines
		m.state = stateInfoView
		return m, nil

	case installDoneMsg:
		// Bağımlılıkları yeniden kontrol et
		m.dependencies = engine.NewEngine(false).CheckTools()

		if m.state == stateMissingDepInstalling {
			if msg.err != nil {
				m.resultMsg = fmt.Sprintf("%s kurulamadı: %s", m.missingDepName, msg.err.Error())
				m.resultErr = true
				m.state = stateDone
				return m, nil
			}
			// Kurulum başarılı, bekleyen işleme devam et
			m.state = stateRunning
			return m, m.pendingRunCmd
		}

		// Welcome ekranından geliyoruz
		if msg.err != nil {
			m.installResult = fmt.Sprintf("❌ Kurulum hatası: %s", msg.err.Error())
		} else {
			m.installResult = "✅ Kurulum tamamlandı!"
		}
		config.MarkFirstRunDone()
		m.state = stateWelcomeDeps
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		// Karşılama ekranında "q" çıkmaya yönlendirmesin
		if m.state == stateWelcomeIntro || m.state == stateWelcomeDeps || m.state == stateWelcomeInstalling {
			switch msg.String() {
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				return m.handleEnter()
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				max := m.getMaxCursor()
				if m.cursor < max {
					m.cursor++
				}
			}
			return m, nil
		}

		// Metin giriş ekranları karakterleri yakalar
		if m.isTextInputState() {
			switch msg.String() {
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				return m.goBack(), nil
			case "enter":
				return m.handleEnter()
			case "backspace":
				m.popTextInput()
				return m, nil
			default:
				m.appendTextInput(msg.String())
				return m, nil
			}
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.state == stateMainMenu {
				m.quitting = true
				return m, tea.Quit
			}
			return m.goToMainMenu(), nil

		case "esc":
			return m.goBack(), nil

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			max := m.getMaxCursor()
			if m.cursor < max {
				m.cursor++
			}

		case "enter":
			return m.handleEnter()
		}
	}

	return m, nil
}

func (m interactiveModel) isTextInputState() bool {
	switch m.state {
	case stateStartInput, stateDurationInput, stateSegmentInput:
		return true
	default:
		return false
	}
}

func (m interactiveModel) getMaxCursor() int {
	switch m.state {
	case stateFileBrowser, stateInfoBrowser:
		return len(m.browserItems) - 1
	case stateWelcomeIntro:
		return 0
	case stateWelcomeDeps:
		return 1
	case stateSettings:
		return 1
	case stateMissingDep:
		return 1
	case stateSettingsBrowser:
		return len(m.settingsBrowserItems) // +1 "Bu dizini seç" butonu
	case stateSelectOperation:
		return len(interactiveOps) - 1
	default:
		return len(m.choices) - 1
	}
}

func (m interactiveModel) View() string {
	if m.quitting {
		return gradientText("  👋 Görüşürüz!", gradientColors) + "\n\n"
	}

	switch m.state {
	case stateWelcomeIntro:
		return m.viewWelcomeIntro()
	case stateWelcomeDeps:
		return m.viewWelcomeDeps()
	case stateWelcomeInstalling:
		return m.viewWelcomeInstalling()
	case stateMainMenu:
		return m.viewMainMenu()
	case stateSelectOperation:
		return m.viewSelectOperation()
	case stateFileBrowser:
		return m.viewFileBrowser("Dosya Seçin")
	case stateInfoBrowser:
		return m.viewFileBrowser("Bilgisi Gösterilecek Dosyayı Seçin")
	case stateAngleSelect, stateRateSelect, stateAudioFormatSelect:
		return m.viewParamSelect()
	case stateStartInput:
		return m.viewTextInput("Başlangıç Zamanı", m.startInput, "Saniye veya SS:DD biçiminde girin (örn: 12.5 veya 1:30)")
	case stateDurationInput:
		return m.viewTextInput("Kesit Süresi", m.durationInput, "Saniye veya SS:DD biçiminde girin (örn: 10 veya 0:45)")
	case stateSegmentInput:
		return m.viewTextInput("Segment Süresi", m.segmentInput, "Her segmentin saniye uzunluğu (örn: 60)")
	case stateRunning:
		return m.viewRunning()
	case stateDone:
		return m.viewDone()
	case stateInfoView:
		return m.viewInfo()
	case stateDependencies:
		return m.viewDependencies()
	case stateSettings:
		return m.viewSettings()
	case stateSettingsBrowser:
		return m.viewSettingsBrowser()
	case stateMissingDep:
		return m.viewMissingDep()
	case stateMissingDepInstalling:
		return m.viewMissingDepInstalling()
	default:
		return ""
	}
}

// ========================================
// Ekranlar
// ========================================

func (m interactiveModel) viewMainMenu() string {
	var b strings.Builder

	// Karşılama ekranındaki gradient ASCII art
	b.WriteString(renderWelcomeArt())

	// Versiyon bilgisi
	versionLine := fmt.Sprintf("         v%s  •  Yerel & Güvenli Medya Düzenleyici", appVersion)
	b.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Italic(true).Render(versionLine))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Ana Menü "))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		icon := m.choiceIcons[i]
		desc := ""
		if i < len(m.choiceDescs) {
			desc = m.choiceDescs[i]
		}

		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s  %s", icon, choice)))
			b.WriteString("\n")
			if desc != "" {
				b.WriteString(lipgloss.NewStyle().PaddingLeft(7).Foreground(dimTextColor).Italic(true).Render(desc))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s  %s", icon, choice)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç  •  q Çıkış"))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewSelectOperation() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ İşlem Seçin "))
	b.WriteString("\n\n")

	for i, op := range interactiveOps {
		if i == m.cursor {
			// Seçili işlem kart stili
			card := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(0, 2).
				MarginLeft(2).
				Width(50)

			content := fmt.Sprintf("%s  %s\n%s",
				op.Icon,
				lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(op.Name),
				descStyle.Render(op.Desc))

			b.WriteString(card.Render(content))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s  %s", op.Icon, op.Name)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewFileBrowser(title string) string {
	var b strings.Builder

	b.WriteString("\n")

	// Breadcrumb
	if m.state == stateFileBrowser {
		op := interactiveOps[m.selectedOp]
		crumb := fmt.Sprintf("  %s %s", op.Icon, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(op.Name))
		b.WriteString(breadcrumbStyle.Render(crumb))
		b.WriteString("\n\n")
	}

	b.WriteString(menuTitleStyle.Render(fmt.Sprintf(" ◆ %s ", title)))
	b.WriteString("\n")

	// Mevcut dizin
	shortDir := shortenPath(m.browserDir)
	b.WriteString(pathStyle.Render(fmt.Sprintf("  📁 %s", shortDir)))
	b.WriteString("\n\n")

	if len(m.browserItems) == 0 {
		b.WriteString(errorStyle.Render("  Bu dizinde medya dosyası veya klasör bulunamadı!"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Esc Geri"))
		b.WriteString("\n")
		return b.String()
	}

	// Sayfala
	pageSize := 15
	startIdx := 0
	if m.cursor >= pageSize {
		startIdx = m.cursor - pageSize + 1
	}
	endIdx := startIdx + pageSize
	if endIdx > len(m.browserItems) {
		endIdx = len(m.browserItems)
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.browserItems[i]

		if item.isDir {
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ 📁 %s/", item.name)))
			} else {
				b.WriteString(normalItemStyle.Render(fmt.Sprintf("  📁 %s/", folderStyle.Render(item.name))))
			}
		} else {
			icon := ui.FormatIcon(strings.TrimPrefix(strings.ToLower(filepath.Ext(item.name)), "."))
			if i == m.cursor {
				b.WriteString(selectedFileStyle.Render(fmt.Sprintf("▸ %s %s", icon, item.name)))
			} else {
				b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s %s", icon, item.name)))
			}
		}
		b.WriteString("\n")
	}

	// Bilgi
	fileCount := 0
	dirCount := 0
	for _, item := range m.browserItems {
		if item.isDir {
			dirCount++
		} else {
			fileCount++
		}
	}

	b.WriteString("\n")
	info := fmt.Sprintf("  %d dosya", fileCount)
	if dirCount > 0 {
		info += fmt.Sprintf(", %d klasör", dirCount)
	}
	b.WriteString(infoStyle.Render(info))
	if len(m.browserItems) > pageSize {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d-%d arası)", startIdx+1, endIdx)))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç/Gir  •  Esc Geri"))
	b.WriteString("\n")

	// Çıktı bilgisi
	b.WriteString(dimStyle.Render(fmt.Sprintf("  💾 Çıktı: %s", shortenPath(m.defaultOutput))))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewRunning() string {
	var b strings.Builder
	b.WriteString("\n\n")

	frame := spinnerFrames[m.spinnerIdx]
	spinnerStyleLocal := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	opName := "İşleniyor"
	if m.selectedOp < len(interactiveOps) {
		opName = interactiveOps[m.selectedOp].Name
	}
	b.WriteString(spinnerStyleLocal.Render(fmt.Sprintf("  %s %s", frame, opName)))

	dots := strings.Repeat(".", (m.spinnerTick/3)%4)
	b.WriteString(dimStyle.Render(dots))
	b.WriteString("\n\n")

	if m.selectedFile != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  🎬 %s", filepath.Base(m.selectedFile))))
		b.WriteString("\n\n")
	}

	// Animasyonlu progress bar, tick bazlı tahmini ilerleme
	barWidth := 40
	progress := m.spinnerTick * 3
	if progress > 95 {
		progress = 95
	}

	filled := barWidth * progress / 100
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	var barStr strings.Builder
	for i := 0; i < filled; i++ {
		colorIdx := i * len(gradientColors) / barWidth
		if colorIdx >= len(gradientColors) {
			colorIdx = len(gradientColors) - 1
		}
		charStyle := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		barStr.WriteString(charStyle.Render("█"))
	}
	if filled < barWidth && filled > 0 {
		if m.showCursor {
			barStr.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("▓"))
			empty--
		} else {
			barStr.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Render("░"))
			empty--
		}
	}
	for i := 0; i < empty; i++ {
		barStr.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Render("░"))
	}

	b.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Render("  ["))
	b.WriteString(barStr.String())
	b.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Render("] "))

	percentStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)
	b.WriteString(percentStyle.Render(fmt.Sprintf("%d%%", progress)))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  ⏳ İşlem devam ediyor, lütfen bekleyin..."))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewDone() string {
	var b strings.Builder

	b.WriteString("\n")
	if m.resultErr {
		content := errorStyle.Render("  ❌ İşlem Başarısız") + "\n\n"
		content += fmt.Sprintf("  Hata: %s", m.resultMsg)
		b.WriteString(resultBoxStyle.Render(content))
	} else {
		content := successStyle.Render("  ✅ İşlem Tamamlandı!") + "\n\n"
		content += fmt.Sprintf("  🎬 Çıktı: %s\n", shortenPath(m.resultMsg))
		content += fmt.Sprintf("  ⏱️  Süre:  %s", formatDuration(m.duration))
		b.WriteString(resultBoxStyle.Render(content))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter Ana Menü  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewInfo() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Medya Bilgisi "))
	b.WriteString("\n\n")

	if m.selectedFile != "" {
		b.WriteString(pathStyle.Render(fmt.Sprintf("  🎬 %s", filepath.Base(m.selectedFile))))
		b.WriteString("\n\n")
	}

	content := strings.Join(m.infoLines, "\n")
	b.WriteString(resultBoxStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter Ana Menü  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// viewDependencies sistem bağımlılıklarını gösterir
func (m interactiveModel) viewDependencies() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Sistem Kontrolü "))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  Tüm medya işlemleri ffmpeg ve ffprobe üzerinden yürür."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("  %-12s %-10s %-35s %s", "ARAÇ", "DURUM", "YOL", "VERSİYON")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("-", 78)))
	b.WriteString("\n")

	for _, tool := range m.dependencies {
		status := "❌ Yok"
		statusStyle := errorStyle
		if tool.Available {
			status = "✅ Var"
			statusStyle = successStyle
		}

		path := tool.Path
		if len(path) > 35 {
			path = "..." + path[len(path)-32:]
		}
		if path == "" {
			path = "-"
		}

		ver := tool.Version
		if len(ver) > 25 {
			ver = ver[:25] + "…"
		}
		if ver == "" {
			ver = "-"
		}

		line := fmt.Sprintf("  %-12s %-10s %-35s %s", tool.Name, status, path, ver)

		if tool.Available {
			b.WriteString(statusStyle.Render(line))
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Esc Ana Menü"))
	b.WriteString("\n")

	return b.String()
}

// viewSettings ayarlar ekranı
func (m interactiveModel) viewSettings() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ⚙️  Ayarlar "))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(textColor).Render("  Varsayılan çıktı dizini:"))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render("  " + m.defaultOutput))
	b.WriteString("\n\n")

	options := []string{"📂  Varsayılan dizini değiştir", "↩️   Ana menüye dön"}
	for i, opt := range options {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s", opt)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s", opt)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// viewSettingsBrowser dizin seçici ekranı
func (m interactiveModel) viewSettingsBrowser() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" 📂 Varsayılan Çıktı Dizini Seç "))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  Konum: "))
	b.WriteString(pathStyle.Render(m.settingsBrowserDir))
	b.WriteString("\n\n")

	for i, item := range m.settingsBrowserItems {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s", item.name)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s", item.name)))
		}
		b.WriteString("\n")
	}

	// "Bu dizini seç" butonu
	selectIdx := len(m.settingsBrowserItems)
	b.WriteString("\n")
	if m.cursor == selectIdx {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("  ▸ ✅ Bu dizini seç"))
	} else {
		b.WriteString(dimStyle.Render("    ✅ Bu dizini seç"))
	}
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç/Gir  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// viewMissingDep eksik bağımlılık uyarısı
func (m interactiveModel) viewMissingDep() string {
	var b strings.Builder

	b.WriteString("\n")

	warningBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warningColor).
		Padding(1, 3).
		MarginLeft(2).
		Width(60)

	content := fmt.Sprintf(
		"⚠️  %s kurulu değil!\n\n"+
			"%s olmadan medya işlemleri yapılamaz.\n\n"+
			"Şimdi kurmak ister misiniz?",
		m.missingDepName,
		m.missingDepName,
	)

	b.WriteString(warningBox.Render(content))
	b.WriteString("\n\n")

	options := []string{
		fmt.Sprintf("✅  %s'i kur", m.missingDepName),
		"❌  İptal et",
	}
	for i, opt := range options {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("  ▸ %s", opt)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("    %s", opt)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	pm := installer.DetectPackageManager()
	if pm != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Paket yöneticisi: %s", pm)))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render("  ⚠ Paket yöneticisi bulunamadı — manuel kurulum gerekebilir"))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç"))
	b.WriteString("\n")

	return b.String()
}

// viewMissingDepInstalling bağımlılık kurulumu sırasında gösterilen ekran
func (m interactiveModel) viewMissingDepInstalling() string {
	var b strings.Builder

	b.WriteString("\n\n")

	frame := spinnerFrames[m.spinnerIdx]
	spinnerStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	b.WriteString(spinnerStyle.Render(fmt.Sprintf("  %s %s kuruluyor", frame, m.missingDepName)))

	dots := strings.Repeat(".", (m.spinnerTick/3)%4)
	b.WriteString(dimStyle.Render(dots))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  Lütfen bekleyin, kurulum devam ediyor..."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Italic(true).Render(
		"  Kurulum tamamlandığında işlem otomatik başlayacak."))
	b.WriteString("\n")

	return b.String()
}

// ========================================
// İşlem Mantığı
// ========================================

func (m interactiveModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateWelcomeIntro:
		if total := welcomeDescLen(); m.welcomeCharIdx < total {
			// Animasyonu hızla bitir
			m.welcomeCharIdx = total
			return m, nil
		}
		m.state = stateWelcomeDeps
		m.cursor = 0
		return m, nil

	case stateWelcomeDeps:
		hasMissing := false
		for _, dep := range m.dependencies {
			if !dep.Available {
				hasMissing = true
				break
			}
		}

		pm := installer.DetectPackageManager()

		if hasMissing && pm != "" {
			if m.cursor == 0 {
				// Otomatik kur
				m.state = stateWelcomeInstalling
				m.installingToolName = "ffmpeg"
				return m, m.doInstallMissing()
			}
			config.MarkFirstRunDone()
			return m.goToMainMenu(), nil
		}

		config.MarkFirstRunDone()
		return m.goToMainMenu(), nil

	case stateMainMenu:
		switch m.cursor {
		case 0:
			m.state = stateSelectOperation
			m.cursor = 0
			return m, nil
		case 1:
			m.state = stateInfoBrowser
			m.cursor = 0
			m.loadBrowserItems(media.IsMediaPath)
			return m, nil
		case 2:
			m.dependencies = engine.NewEngine(false).CheckTools()
			m.state = stateDependencies
			m.cursor = 0
			return m, nil
		case 3:
			m.state = stateSettings
			m.cursor = 0
			return m, nil
		case 4:
			m.quitting = true
			return m, tea.Quit
		}

	case stateSelectOperation:
		m.selectedOp = m.cursor
		m.state = stateFileBrowser
		m.cursor = 0
		m.loadBrowserItems(media.IsVideoPath)
		return m, nil

	case stateFileBrowser:
		if m.cursor < len(m.browserItems) {
			item := m.browserItems[m.cursor]
			if item.isDir {
				m.browserDir = item.path
				m.cursor = 0
				m.loadBrowserItems(media.IsVideoPath)
				return m, nil
			}
			m.selectedFile = item.path
			return m.goToParams()
		}

	case stateInfoBrowser:
		if m.cursor < len(m.browserItems) {
			item := m.browserItems[m.cursor]
			if item.isDir {
				m.browserDir = item.path
				m.cursor = 0
				m.loadBrowserItems(media.IsMediaPath)
				return m, nil
			}
			m.selectedFile = item.path
			return m.startRun(m.doProbeInfo())
		}

	case stateAngleSelect:
		angles := []float64{90, 180, 270}
		if m.cursor < len(angles) {
			m.angleChoice = angles[m.cursor]
		}
		return m.startRun(m.doApply())

	case stateRateSelect:
		rates := []float64{0.5, 1.5, 2, 4}
		if m.cursor < len(rates) {
			m.rateChoice = rates[m.cursor]
		}
		return m.startRun(m.doApply())

	case stateAudioFormatSelect:
		formats := extractAudioFormats
		if m.cursor < len(formats) {
			m.audioFormat = formats[m.cursor]
		}
		return m.startRun(m.doApply())

	case stateStartInput:
		if _, err := parseClockSeconds(m.startInput); err != nil {
			m.paramErrMsg = "geçersiz başlangıç değeri"
			return m, nil
		}
		m.paramErrMsg = ""
		m.state = stateDurationInput
		return m, nil

	case stateDurationInput:
		secs, err := parseClockSeconds(m.durationInput)
		if err != nil || secs <= 0 {
			m.paramErrMsg = "geçersiz süre değeri"
			return m, nil
		}
		m.paramErrMsg = ""
		return m.startRun(m.doApply())

	case stateSegmentInput:
		secs, err := parseClockSeconds(m.segmentInput)
		if err != nil || secs <= 0 {
			m.paramErrMsg = "geçersiz segment süresi"
			return m, nil
		}
		m.paramErrMsg = ""
		return m.startRun(m.doSplit())

	case stateMissingDep:
		if m.cursor == 0 {
			m.state = stateMissingDepInstalling
			return m, m.doInstallSingleTool("ffmpeg")
		}
		return m.goToMainMenu(), nil

	case stateSettings:
		switch m.cursor {
		case 0:
			m.settingsBrowserDir = m.defaultOutput
			m.loadSettingsBrowserItems()
			m.state = stateSettingsBrowser
			m.cursor = 0
			return m, nil
		case 1:
			return m.goToMainMenu(), nil
		}

	case stateSettingsBrowser:
		if m.cursor < len(m.settingsBrowserItems) {
			item := m.settingsBrowserItems[m.cursor]
			if item.isDir {
				m.settingsBrowserDir = item.path
				m.cursor = 0
				m.loadSettingsBrowserItems()
				return m, nil
			}
		} else if m.cursor == len(m.settingsBrowserItems) {
			// "Bu dizini seç" butonu
			m.defaultOutput = m.settingsBrowserDir
			config.SetDefaultOutputDir(m.settingsBrowserDir)
			m.state = stateSettings
			m.cursor = 0
			return m, nil
		}

	case stateDone, stateInfoView:
		return m.goToMainMenu(), nil
	}

	return m, nil
}

// startRun ffmpeg kontrolünden geçerse verilen komutu başlatır; araç
// eksikse kurulum ekranına yönlendirip komutu bekletir.
func (m interactiveModel) startRun(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !engine.NewEngine(false).Available() {
		m.missingDepName = "FFmpeg"
		m.pendingRunCmd = cmd
		m.state = stateMissingDep
		m.cursor = 0
		return m, nil
	}
	m.state = stateRunning
	m.spinnerTick = 0
	return m, cmd
}

func (m interactiveModel) goToMainMenu() interactiveModel {
	m.state = stateMainMenu
	m.cursor = 0
	m.selectedFile = ""
	m.selectedOp = 0
	m.browserItems = nil
	m.infoLines = nil
	m.resultMsg = ""
	m.resultErr = false
	m.paramErrMsg = ""
	m.pendingRunCmd = nil
	m.missingDepName = ""
	m.setMainMenuChoices()
	return m
}

func (m interactiveModel) goBack() interactiveModel {
	switch m.state {
	case stateSelectOperation:
		return m.goToMainMenu()
	case stateFileBrowser:
		m.state = stateSelectOperation
		m.cursor = 0
		return m
	case stateInfoBrowser:
		return m.goToMainMenu()
	case stateAngleSelect, stateRateSelect, stateAudioFormatSelect, stateStartInput, stateSegmentInput:
		m.state = stateFileBrowser
		m.cursor = 0
		m.paramErrMsg = ""
		m.loadBrowserItems(media.IsVideoPath)
		return m
	case stateDurationInput:
		m.state = stateStartInput
		m.paramErrMsg = ""
		return m
	case stateDone, stateInfoView, stateDependencies, stateSettings:
		return m.goToMainMenu()
	case stateSettingsBrowser:
		m.state = stateSettings
		m.cursor = 0
		return m
	case stateMissingDep:
		return m.goToMainMenu()
	default:
		return m.goToMainMenu()
	}
}

// goToParams seçili işlemin parametre ekranına geçer; parametresiz
// işlemler doğrudan çalışır.
func (m interactiveModel) goToParams() (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.paramErrMsg = ""

	switch interactiveOps[m.selectedOp].Key {
	case "rotate":
		m.state = stateAngleSelect
		m.choices = []string{"90° (saat yönü)", "180°", "270° (saat yönü tersi 90°)"}
		m.choiceIcons = []string{"↻", "↺", "↺"}
		m.choiceDescs = nil
		return m, nil
	case "speed":
		m.state = stateRateSelect
		m.choices = []string{"0.5x — yavaşlat", "1.5x — hızlandır", "2x — iki kat", "4x — dört kat"}
		m.choiceIcons = []string{"🐢", "🐇", "⚡", "🚀"}
		m.choiceDescs = nil
		return m, nil
	case "extract-audio":
		m.state = stateAudioFormatSelect
		m.choices = make([]string, len(extractAudioFormats))
		m.choiceIcons = make([]string, len(extractAudioFormats))
		for i, f := range extractAudioFormats {
			m.choices[i] = strings.ToUpper(f)
			m.choiceIcons[i] = "🎵"
		}
		m.choiceDescs = nil
		return m, nil
	case "trim":
		m.state = stateStartInput
		return m, nil
	case "split":
		m.state = stateSegmentInput
		return m, nil
	default:
		// extract-video parametresizdir
		return m.startRun(m.doApply())
	}
}

func (m *interactiveModel) loadBrowserItems(matches func(string) bool) {
	m.browserItems = nil

	entries, err := os.ReadDir(m.browserDir)
	if err != nil {
		return
	}

	// Üst dizin (..)
	parent := filepath.Dir(m.browserDir)
	if parent != m.browserDir {
		m.browserItems = append(m.browserItems, browserEntry{
			name:  ".. (üst dizin)",
			path:  parent,
			isDir: true,
		})
	}

	var dirs []browserEntry
	var files []browserEntry

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue // Gizli dosyaları atla
		}

		fullPath := filepath.Join(m.browserDir, e.Name())

		if e.IsDir() {
			dirs = append(dirs, browserEntry{
				name:  e.Name(),
				path:  fullPath,
				isDir: true,
			})
		} else if matches(e.Name()) {
			files = append(files, browserEntry{
				name:  e.Name(),
				path:  fullPath,
				isDir: false,
			})
		}
	}

	// Önce klasörler, sonra dosyalar
	m.browserItems = append(m.browserItems, dirs...)
	m.browserItems = append(m.browserItems, files...)
}

// loadSettingsBrowserItems ayarlar dizin tarayıcısına öğeleri yükler
func (m *interactiveModel) loadSettingsBrowserItems() {
	entries, err := os.ReadDir(m.settingsBrowserDir)
	if err != nil {
		m.settingsBrowserItems = nil
		return
	}

	var items []browserEntry

	parent := filepath.Dir(m.settingsBrowserDir)
	if parent != m.settingsBrowserDir {
		items = append(items, browserEntry{
			name:  "📁 ..",
			path:  parent,
			isDir: true,
		})
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue // Sadece dizinler
		}
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		items = append(items, browserEntry{
			name:  "📁 " + e.Name(),
			path:  filepath.Join(m.settingsBrowserDir, e.Name()),
			isDir: true,
		})
	}

	m.settingsBrowserItems = items
}

// doInstallMissing eksik araçları kurar
func (m interactiveModel) doInstallMissing() tea.Cmd {
	return func() tea.Msg {
		_, err := installer.InstallTool("ffmpeg")
		return installDoneMsg{err: err}
	}
}

// doInstallSingleTool tek bir aracı kurar
func (m interactiveModel) doInstallSingleTool(toolName string) tea.Cmd {
	return func() tea.Msg {
		_, err := installer.InstallTool(toolName)
		return installDoneMsg{err: err}
	}
}

// ========================================
// Yardımcı fonksiyonlar
// ========================================

func getHomeDir() string {
	u, err := user.Current()
	if err != nil {
		return "/"
	}
	return u.HomeDir
}

func shortenPath(path string) string {
	home := getHomeDir()
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

func gradientText(text string, colors []lipgloss.Color) string {
	if len(colors) == 0 {
		return text
	}
	runes := []rune(text)
	var result strings.Builder
	for i, r := range runes {
		colorIdx := i % len(colors)
		style := lipgloss.NewStyle().Bold(true).Foreground(colors[colorIdx])
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Milliseconds()))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ========================================
// Giriş noktası
// ========================================

func RunInteractive() error {
	deps := engine.NewEngine(false).CheckTools()
	firstRun := config.IsFirstRun()
	p := tea.NewProgram(newInteractiveModel(deps, firstRun), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
