package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// Merge bir dizindeki medya dosyalarını sözlük sırasıyla tek kompozisyonda
// art arda birleştirir. Her kaynak birikimli ofsetle eklenir; çıktı kare
// hızı kaynaklardan bağımsız sabittir, böylece farklı hızlı klipler donuk
// kare üretmez.
type Merge struct {
	Dir    string
	Prober media.Prober
}

func (op Merge) Name() string { return "merge" }

func (op Merge) Compose(ctx context.Context) (*ComposeResult, error) {
	entries, err := os.ReadDir(op.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: dizin okunamadı: %v", export.ErrFilesystem, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if media.IsMediaPath(e.Name()) {
			files = append(files, filepath.Join(op.Dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: dizinde birleştirilecek medya dosyası yok: %s", ErrParameter, op.Dir)
	}

	b := timeline.NewBuilder()
	offset := avtime.Zero()
	var first *media.Source

	for _, path := range files {
		src := media.NewSource(path, op.Prober)
		if err := src.Load(ctx); err != nil {
			return nil, err
		}
		if err := b.InsertFull(src, offset); err != nil {
			return nil, err
		}
		offset = offset.Add(src.Duration())
		if first == nil {
			first = src
		}
	}

	comp := b.Build()
	return &ComposeResult{
		Composition: comp,
		Instruction: render.ForComposition(comp, first),
	}, nil
}
