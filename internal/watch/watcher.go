package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlihgenel/avtools-cli/internal/media"
)

// Engine izleme backend'lerinin ortak yüzeyidir. Poll çağrıları arasında
// stabilize olmuş dosyaları döner; her dosya en fazla bir kez bildirilir.
type Engine interface {
	Bootstrap() error
	Poll(now time.Time) ([]string, error)
	Mode() string
}

// fileState bir dosyanın son gözlenen halini tutar. gen, dosyanın en son
// hangi taramada görüldüğünü damgalar; eski nesilde kalanlar silinmiş sayılır.
type fileState struct {
	size      int64
	modTime   time.Time
	changedAt time.Time
	notified  bool
	gen       uint64
}

// Watcher polling tabanlı dosya izleyicisidir.
type Watcher struct {
	Root      string
	Ext       string
	Recursive bool
	SettleFor time.Duration

	states map[string]*fileState
	gen    uint64
}

// NewWatcher yeni bir watcher oluşturur. ext boşsa bilinen tüm medya
// uzantıları izlenir.
func NewWatcher(root, ext string, recursive bool, settleFor time.Duration) *Watcher {
	if settleFor <= 0 {
		settleFor = 1500 * time.Millisecond
	}
	return &Watcher{
		Root:      root,
		Ext:       normalizeExt(ext),
		Recursive: recursive,
		SettleFor: settleFor,
		states:    make(map[string]*fileState),
	}
}

func (w *Watcher) Mode() string { return "polling" }

// Bootstrap mevcut dosyaları "zaten bildirilmiş" olarak kaydeder; izleme
// başladığında dizinde duran eski dosyalar yeniden işlenmez.
func (w *Watcher) Bootstrap() error {
	now := time.Now()
	w.gen++
	return w.walk(func(path string, info os.FileInfo) {
		w.observe(path, info, now).notified = true
	})
}

// Poll dizini tarar; yeni veya değişmiş olup settle süresi boyunca sabit
// kalan dosyaları döner.
func (w *Watcher) Poll(now time.Time) ([]string, error) {
	w.gen++
	var ready []string

	err := w.walk(func(path string, info os.FileInfo) {
		st := w.observe(path, info, now)
		if !st.notified && now.Sub(st.changedAt) >= w.SettleFor {
			st.notified = true
			ready = append(ready, path)
		}
	})
	if err != nil {
		return nil, err
	}

	w.dropStale()
	return ready, nil
}

// observe dosyanın kaydını günceller ve geçerli nesille damgalar. Boyut veya
// mtime değiştiyse dosya yeniden "bekliyor" durumuna düşer.
func (w *Watcher) observe(path string, info os.FileInfo, now time.Time) *fileState {
	st, ok := w.states[path]
	if !ok {
		st = &fileState{size: info.Size(), modTime: info.ModTime(), changedAt: now}
		w.states[path] = st
	} else if st.size != info.Size() || !st.modTime.Equal(info.ModTime()) {
		st.size = info.Size()
		st.modTime = info.ModTime()
		st.changedAt = now
		st.notified = false
	}
	st.gen = w.gen
	return st
}

// dropStale bu turda görülmeyen (silinmiş) dosyaların kaydını temizler.
func (w *Watcher) dropStale() {
	for path, st := range w.states {
		if st.gen != w.gen {
			delete(w.states, path)
		}
	}
}

// walk kök dizini gezer ve filtreyi geçen her dosya için fn'i çağırır.
// Okunamayan girdiler taramayı durdurmaz.
func (w *Watcher) walk(fn func(path string, info os.FileInfo)) error {
	info, err := os.Stat(w.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("watch yolu dizin olmalidir: %s", w.Root)
	}

	return filepath.WalkDir(w.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if !w.Recursive && path != w.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.matches(path) {
			return nil
		}
		fi, statErr := d.Info()
		if statErr != nil {
			return nil
		}
		fn(path, fi)
		return nil
	})
}

func (w *Watcher) matches(path string) bool {
	if w.Ext == "" {
		return media.IsMediaPath(path)
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") == w.Ext
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}
