package installer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// InstallInfo kurulum bilgisini tutar
type InstallInfo struct {
	ToolName    string
	Command     string
	Args        []string
	Description string
	ManualURL   string
	Supported   bool // Otomatik kurulum destekleniyor mu
}

// pmCandidates işletim sistemi başına denenecek paket yöneticileri;
// sıra tercih sırasıdır.
var pmCandidates = map[string][]string{
	"darwin":  {"brew"},
	"linux":   {"apt", "dnf", "yum", "pacman"},
	"windows": {"choco", "winget"},
}

// ffmpegInstallArgv paket yöneticisi başına ffmpeg kurulum komutu.
var ffmpegInstallArgv = map[string][]string{
	"brew":   {"brew", "install", "ffmpeg"},
	"apt":    {"sudo", "apt", "install", "-y", "ffmpeg"},
	"dnf":    {"sudo", "dnf", "install", "-y", "ffmpeg"},
	"yum":    {"sudo", "yum", "install", "-y", "ffmpeg"},
	"pacman": {"sudo", "pacman", "-S", "--noconfirm", "ffmpeg"},
	"choco":  {"choco", "install", "ffmpeg", "-y"},
	"winget": {"winget", "install", "Gyan.FFmpeg"},
}

// DetectPackageManager PATH üzerinde bulunan ilk paket yöneticisini döner.
func DetectPackageManager() string {
	for _, name := range pmCandidates[runtime.GOOS] {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return ""
}

// GetInstallInfo belirli bir araç için kurulum bilgilerini döner. ffprobe
// ayrı bir paket değildir; her paket yöneticisinde ffmpeg paketiyle gelir.
func GetInstallInfo(toolName string) InstallInfo {
	switch strings.ToLower(toolName) {
	case "ffmpeg", "ffprobe":
		return ffmpegInstall(DetectPackageManager())
	}
	return InstallInfo{ToolName: strings.ToLower(toolName)}
}

func ffmpegInstall(pm string) InstallInfo {
	info := InstallInfo{
		ToolName:  "FFmpeg",
		ManualURL: "https://ffmpeg.org/download.html",
	}

	argv, ok := ffmpegInstallArgv[pm]
	if !ok {
		return info
	}

	info.Command = argv[0]
	info.Args = argv[1:]
	info.Description = strings.Join(argv, " ")
	info.Supported = true
	return info
}

// InstallTool aracı paket yöneticisiyle kurar; komut çıktısı terminale akar.
func InstallTool(toolName string) (string, error) {
	info := GetInstallInfo(toolName)
	if !info.Supported {
		return "", fmt.Errorf(
			"%s otomatik olarak kurulamıyor.\nManuel kurulum: %s",
			info.ToolName, info.ManualURL,
		)
	}

	cmd := exec.Command(info.Command, info.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s kurulumu başarısız: %w", info.ToolName, err)
	}
	return info.Description, nil
}

// GetMissingToolNames PATH üzerinde bulunamayan araçları döner.
func GetMissingToolNames(tools []string) []string {
	var missing []string
	for _, tool := range tools {
		bin := strings.ToLower(tool)
		if bin != "ffmpeg" && bin != "ffprobe" {
			continue
		}
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}
