package engine

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// ErrRender ffmpeg tabanlı dışa aktarma hatalarının ortak türüdür.
var ErrRender = errors.New("render hatası")

// Engine ffmpeg/ffprobe ikililerini saran üretim backend'idir. media.Prober,
// export.Renderer ve export.FrameDecoder arayüzlerini uygular. Araç yolları
// ilk kullanımda bir kez çözülür; Engine eşzamanlı Render çağrılarına
// dayanıklıdır.
type Engine struct {
	Verbose bool

	ffmpegOnce sync.Once
	ffmpegPath string
	ffmpegErr  error

	ffprobeOnce sync.Once
	ffprobePath string
	ffprobeErr  error
}

// NewEngine yeni bir ffmpeg backend'i oluşturur. Araçların varlığı burada
// kontrol edilmez; eksik araç ilk probe/render çağrısında hata döner.
func NewEngine(verbose bool) *Engine {
	return &Engine{Verbose: verbose}
}

func (e *Engine) findFFmpeg() (string, error) {
	e.ffmpegOnce.Do(func() {
		e.ffmpegPath, e.ffmpegErr = findTool("ffmpeg", "FFMPEG_PATH")
	})
	return e.ffmpegPath, e.ffmpegErr
}

func (e *Engine) findFFprobe() (string, error) {
	e.ffprobeOnce.Do(func() {
		e.ffprobePath, e.ffprobeErr = findTool("ffprobe", "FFPROBE_PATH")
	})
	return e.ffprobePath, e.ffprobeErr
}

// Available her iki aracın da kullanılabilir olup olmadığını kontrol eder.
func (e *Engine) Available() bool {
	if _, err := e.findFFmpeg(); err != nil {
		return false
	}
	_, err := e.findFFprobe()
	return err == nil
}

// findTool aracı önce çevre değişkeninden, sonra bilinen konumlardan ve
// PATH'ten arar.
func findTool(name, envVar string) (string, error) {
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	paths := []string{name}
	if runtime.GOOS == "darwin" {
		paths = append(paths, "/opt/homebrew/bin/"+name, "/usr/local/bin/"+name)
	} else if runtime.GOOS == "linux" {
		paths = append(paths, "/usr/bin/"+name, "/usr/local/bin/"+name)
	}

	for _, p := range paths {
		if path, err := exec.LookPath(p); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf(
		"%s bulunamadı! Medya işlemleri için FFmpeg kurulu olmalıdır.\n\n"+
			"Kurulum:\n"+
			"  macOS:   brew install ffmpeg\n"+
			"  Ubuntu:  sudo apt install ffmpeg\n"+
			"  Windows: https://ffmpeg.org/download.html\n\n"+
			"Veya %s çevre değişkenini ayarlayın", name, envVar)
}

// Tool harici bir aracın durumunu temsil eder.
type Tool struct {
	Name      string
	Available bool
	Path      string
	Version   string
}

// CheckTools ffmpeg ve ffprobe'un durumunu döner; doctor komutu kullanır.
func (e *Engine) CheckTools() []Tool {
	tools := []Tool{}

	ffmpegTool := Tool{Name: "FFmpeg"}
	if path, err := e.findFFmpeg(); err == nil {
		ffmpegTool.Available = true
		ffmpegTool.Path = path
		ffmpegTool.Version = toolVersion(path)
	}
	tools = append(tools, ffmpegTool)

	ffprobeTool := Tool{Name: "FFprobe"}
	if path, err := e.findFFprobe(); err == nil {
		ffprobeTool.Available = true
		ffprobeTool.Path = path
		ffprobeTool.Version = toolVersion(path)
	}
	tools = append(tools, ffprobeTool)

	return tools
}

// toolVersion aracın sürüm satırını okur ("ffmpeg version 6.1 ..." gibi).
func toolVersion(path string) string {
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		return ""
	}
	lines := strings.Split(string(out), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}
