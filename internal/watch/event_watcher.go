package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventWatcher fsnotify ile event-driven izleme sağlar. Dosya tespiti yine
// poller üzerinden yürür; event'ler yalnızca poll döngüsünü erken uyandırır.
type EventWatcher struct {
	poller *Watcher
	fs     *fsnotify.Watcher

	events chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewEventWatcher fsnotify backend'i oluşturur.
func NewEventWatcher(root, ext string, recursive bool, settleFor time.Duration) (*EventWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &EventWatcher{
		poller: NewWatcher(root, ext, recursive, settleFor),
		fs:     fs,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}, nil
}

// NewAdaptiveWatcher event backend'i dener; olmazsa polling fallback döner.
func NewAdaptiveWatcher(root, ext string, recursive bool, settleFor time.Duration) (Engine, error) {
	ew, err := NewEventWatcher(root, ext, recursive, settleFor)
	if err != nil {
		return NewWatcher(root, ext, recursive, settleFor), err
	}
	return ew, nil
}

func (w *EventWatcher) Mode() string { return "event+polling" }

func (w *EventWatcher) Bootstrap() error {
	if err := w.poller.Bootstrap(); err != nil {
		return err
	}

	info, err := os.Stat(w.poller.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("watch yolu dizin olmalidir: %s", w.poller.Root)
	}
	if err := w.registerTree(w.poller.Root); err != nil {
		return err
	}

	go w.loop()
	return nil
}

func (w *EventWatcher) Poll(now time.Time) ([]string, error) {
	return w.poller.Poll(now)
}

// Events poll döngüsünü uyandıran sinyal kanalını döner.
func (w *EventWatcher) Events() <-chan struct{} {
	return w.events
}

func (w *EventWatcher) Close() error {
	w.once.Do(func() {
		close(w.done)
	})
	return w.fs.Close()
}

func (w *EventWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(evt)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Backend hatası polling'i durdurmaz; bir tur erken tarama yeterli.
			w.wake()
		}
	}
}

func (w *EventWatcher) handleEvent(evt fsnotify.Event) {
	// Chmod tek başına içerik değişimi anlamına gelmez.
	if evt.Op == fsnotify.Chmod {
		return
	}

	if evt.Has(fsnotify.Create) && w.poller.Recursive {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			// mkdir -p veya taşınan ağaçlar için alt dizinler de kaydedilir.
			_ = w.registerTree(evt.Name)
		}
	}
	w.wake()
}

// wake kanala non-blocking sinyal bırakır; bekleyen sinyal varsa üstüne yazmaz.
func (w *EventWatcher) wake() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// registerTree dizini ve (recursive modda) tüm alt dizinlerini fsnotify'a ekler.
func (w *EventWatcher) registerTree(root string) error {
	if !w.poller.Recursive {
		return w.fs.Add(root)
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return w.fs.Add(path)
	})
}
