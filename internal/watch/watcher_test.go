package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s failed: %v", path, err)
	}
}

func mustPoll(t *testing.T, w *Watcher, at time.Time) []string {
	t.Helper()
	ready, err := w.Poll(at)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	return ready
}

func TestWatcherNotifiesSettledFileOnce(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "eski.mp4"), "bootstrap")

	w := NewWatcher(dir, "mp4", false, time.Second)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	base := time.Now()
	if ready := mustPoll(t, w, base); len(ready) != 0 {
		t.Fatalf("bootstrap files must not be re-notified: %#v", ready)
	}

	fresh := filepath.Join(dir, "yeni.mp4")
	writeTestFile(t, fresh, "data")

	if ready := mustPoll(t, w, base.Add(100*time.Millisecond)); len(ready) != 0 {
		t.Fatalf("file notified before settle window: %#v", ready)
	}

	ready := mustPoll(t, w, base.Add(2*time.Second))
	if len(ready) != 1 || ready[0] != fresh {
		t.Fatalf("expected settled file, got: %#v", ready)
	}

	if ready := mustPoll(t, w, base.Add(3*time.Second)); len(ready) != 0 {
		t.Fatalf("file notified twice: %#v", ready)
	}
}

func TestWatcherReArmsOnModification(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "kayit.mp4")
	writeTestFile(t, target, "v1")

	w := NewWatcher(dir, "mp4", false, 500*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	writeTestFile(t, target, "v2-daha-uzun-icerik")

	base := time.Now()
	if ready := mustPoll(t, w, base); len(ready) != 0 {
		t.Fatalf("modified file notified before settle: %#v", ready)
	}

	ready := mustPoll(t, w, base.Add(2*time.Second))
	if len(ready) != 1 || ready[0] != target {
		t.Fatalf("expected modified file after settle, got: %#v", ready)
	}
}

func TestWatcherForgetsDeletedFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, "mp4", false, 500*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	path := filepath.Join(dir, "gecici.mp4")
	writeTestFile(t, path, "icerik")

	base := time.Now()
	mustPoll(t, w, base)
	if ready := mustPoll(t, w, base.Add(time.Second)); len(ready) != 1 {
		t.Fatalf("expected initial notification, got: %#v", ready)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	mustPoll(t, w, base.Add(2*time.Second))

	// Aynı isim ve boyutla geri gelen dosya yeni dosya sayılmalı.
	writeTestFile(t, path, "icerik")
	mustPoll(t, w, base.Add(3*time.Second))
	ready := mustPoll(t, w, base.Add(5*time.Second))
	if len(ready) != 1 || ready[0] != path {
		t.Fatalf("recreated file must be notified again, got: %#v", ready)
	}
}

func TestWatcherRecursiveScan(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "alt")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	w := NewWatcher(dir, "mp4", true, 500*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	nested := filepath.Join(sub, "ic.mp4")
	writeTestFile(t, nested, "x")

	base := time.Now()
	mustPoll(t, w, base)
	ready := mustPoll(t, w, base.Add(time.Second))
	if len(ready) != 1 || ready[0] != nested {
		t.Fatalf("expected nested file with recursive watcher, got: %#v", ready)
	}

	flat := NewWatcher(dir, "mp4", false, 500*time.Millisecond)
	if err := flat.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	mustPoll(t, flat, base.Add(2*time.Second))
	if ready := mustPoll(t, flat, base.Add(4*time.Second)); len(ready) != 0 {
		t.Fatalf("non-recursive watcher must skip subdirs: %#v", ready)
	}
}

func TestWatcherEmptyFilterMatchesAnyMedia(t *testing.T) {
	dir := t.TempDir()

	w := NewWatcher(dir, "", false, 500*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	video := filepath.Join(dir, "a.mov")
	audio := filepath.Join(dir, "b.mp3")
	other := filepath.Join(dir, "notlar.txt")
	for _, f := range []string{video, audio, other} {
		writeTestFile(t, f, "x")
	}

	now := time.Now()
	mustPoll(t, w, now)
	ready := mustPoll(t, w, now.Add(time.Second))
	if len(ready) != 2 {
		t.Fatalf("expected only the media files, got: %#v", ready)
	}
	for _, path := range ready {
		if path == other {
			t.Fatalf("non-media file must be ignored: %s", path)
		}
	}
}
