package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/avtools-cli/internal/installer"
)

// ========================================
// Karşılama Ekranı — İlk Kullanım
// ========================================

// Hoşgeldin ASCII art
var welcomeArt = []string{
	"",
	"     █████╗ ██╗   ██╗████████╗ ██████╗  ██████╗ ██╗     ███████╗",
	"    ██╔══██╗██║   ██║╚══██╔══╝██╔═══██╗██╔═══██╗██║     ██╔════╝",
	"    ███████║██║   ██║   ██║   ██║   ██║██║   ██║██║     ███████╗",
	"    ██╔══██║╚██╗ ██╔╝   ██║   ██║   ██║██║   ██║██║     ╚════██║",
	"    ██║  ██║ ╚████╔╝    ██║   ╚██████╔╝╚██████╔╝███████╗███████║",
	"    ╚═╝  ╚═╝  ╚═══╝     ╚═╝    ╚═════╝  ╚═════╝ ╚══════╝╚══════╝",
	"",
}

// İlk açılış için sade, logo ile uyumlu tonlar
var welcomeGradient = []lipgloss.Color{
	"#F1F5F9", "#E2E8F0", "#CBD5E1", "#94A3B8", "#64748B", "#94A3B8",
}

var welcomeDim = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))

// Uygulama tanıtım metni
var welcomeDescLines = []string{
	"",
	"  AVTools'a hos geldiniz!",
	"",
	"  Bu uygulama, video ve ses dosyalarınızı yerel ortamda",
	"  düzenlemenizi sağlar. İnternet'e yükleme gerektirmez.",
	"",
	"  Ozellikler:",
	"",
	"     Dönüştür ve Kes   — döndürme, kırpma, hız, kesme, bölme",
	"     Birleştir         — bir dizindeki klipleri tek videoda topla",
	"     Ayır              — videodan ses veya görüntü izini çıkar",
	"     Bindir            — görsel, metin veya ses katmanı ekle",
	"     Kare Yakala       — videodan kare çıkar, karelerden video kur",
	"",
	"  watch modu ile bir dizini izleyip yeni dosyalara otomatik",
	"     işlem uygulayabilirsiniz.",
	"",
	"  Tum islemler tamamen yerel — verileriniz sizde kalir.",
	"",
}

// renderWelcomeArt logoyu gradyan tonlarla boyar; ana menü de kullanır.
func renderWelcomeArt() string {
	var b strings.Builder
	for i, line := range welcomeArt {
		tone := welcomeGradient[i%len(welcomeGradient)]
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tone).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// welcomeDescLen tanıtım metninin toplam karakter sayısı (typing animasyonu)
func welcomeDescLen() int {
	total := 0
	for _, line := range welcomeDescLines {
		total += len([]rune(line))
	}
	return total
}

// typedDescLines ilk n karakteri satır satır açar
func typedDescLines(n int) (lines []string, finished bool) {
	remaining := n
	for _, line := range welcomeDescLines {
		runes := []rune(line)
		if remaining >= len(runes) {
			lines = append(lines, line)
			remaining -= len(runes)
			continue
		}
		if remaining > 0 {
			lines = append(lines, string(runes[:remaining]))
		}
		return lines, false
	}
	return lines, true
}

// viewWelcomeIntro animasyonlu karşılama ekranı
func (m interactiveModel) viewWelcomeIntro() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderWelcomeArt())

	version := fmt.Sprintf("         v%s  •  Yerel & Güvenli Medya Düzenleyici", appVersion)
	b.WriteString(welcomeDim.Italic(true).Render(version))
	b.WriteString("\n")

	lines, finished := typedDescLines(m.welcomeCharIdx)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0"))
	for _, line := range lines {
		b.WriteString(textStyle.Render(line))
		b.WriteString("\n")
	}

	if !finished {
		if m.showCursor {
			b.WriteString(textStyle.Render("▌"))
		}
		b.WriteString("\n\n")
		b.WriteString(welcomeDim.Render("  Enter Atla"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	prompt := "  Devam etmek için Enter'a basın"
	if m.showCursor {
		prompt += " ▸"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBD5E1")).Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(welcomeDim.Render("  Ctrl+C Çıkış"))
	b.WriteString("\n")

	return b.String()
}

// viewWelcomeDeps ilk açılışta araç durumu ve kurulum teklifi
func (m interactiveModel) viewWelcomeDeps() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#334155")).
		Padding(0, 2)

	b.WriteString("\n")
	b.WriteString(header.Render(" Sistem Kontrolu "))
	b.WriteString("\n\n")
	b.WriteString("  Medya işlemleri için ffmpeg ve ffprobe gereklidir.\n\n")

	nameCol := lipgloss.NewStyle().Bold(true).Width(12)
	missing := 0
	for _, dep := range m.dependencies {
		b.WriteString("  ")
		b.WriteString(nameCol.Render(dep.Name))
		if dep.Available {
			b.WriteString(successStyle.Render("Kurulu"))
			if dep.Version != "" {
				ver := dep.Version
				if len(ver) > 44 {
					ver = ver[:44] + "…"
				}
				b.WriteString(welcomeDim.Render("  " + ver))
			}
		} else {
			b.WriteString(errorStyle.Render("Kurulu Değil"))
			missing++
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.installResult != "" {
		b.WriteString("  " + m.installResult)
		b.WriteString("\n\n")
	}

	if missing == 0 {
		b.WriteString(successStyle.Render("  Tum gerekli araclar kurulu. Hazirsiniz."))
		b.WriteString("\n\n")
		b.WriteString(welcomeDim.Render("  Enter ile devam edin"))
		b.WriteString("\n")
		return b.String()
	}

	pm := installer.DetectPackageManager()
	if pm == "" {
		b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render(
			"  Paket yoneticisi bulunamadi. Araclari manuel olarak kurmaniz gerekiyor."))
		b.WriteString("\n\n")
		for _, dep := range m.dependencies {
			if dep.Available {
				continue
			}
			info := installer.GetInstallInfo(dep.Name)
			b.WriteString(welcomeDim.Render(fmt.Sprintf("  • %s: %s", dep.Name, info.ManualURL)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(welcomeDim.Render("  Enter ile devam edin"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(warningColor).Render("  Eksik araclar algilandi"))
	b.WriteString("\n")
	b.WriteString(welcomeDim.Render(fmt.Sprintf("  Paket yöneticisi: %s", pm)))
	b.WriteString("\n\n")

	for i, opt := range []string{"Eksik araçları otomatik kur", "Atla ve devam et"} {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("  ▸ " + opt))
		} else {
			b.WriteString(normalItemStyle.Render("    " + opt))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(welcomeDim.Render("  ↑↓ Gezin  •  Enter Seç"))
	b.WriteString("\n")

	return b.String()
}

// viewWelcomeInstalling ilk açılış kurulum ekranı
func (m interactiveModel) viewWelcomeInstalling() string {
	var b strings.Builder

	b.WriteString("\n\n")
	frame := spinnerFrames[m.spinnerIdx]
	dots := strings.Repeat(".", (m.spinnerTick/3)%4)

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBD5E1")).Render(
		fmt.Sprintf("  %s %s kuruluyor%s", frame, m.installingToolName, dots)))
	b.WriteString("\n\n")

	b.WriteString(welcomeDim.Render("  Paket yöneticisi parola sorabilir; terminal çıktısını takip edin."))
	b.WriteString("\n")
	b.WriteString(welcomeDim.Render("  Kurulum bitince araç durumu yeniden kontrol edilecek."))
	b.WriteString("\n")

	return b.String()
}
