package cmd

import (
	"errors"

	"github.com/mlihgenel/avtools-cli/internal/engine"
	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// Hata sınıfı başına bir çıkış kodu. Sınıflanamayan hatalar 1 ile döner.
const (
	exitOK          = 0
	exitError       = 1
	exitParameter   = 2
	exitLoad        = 3
	exitComposition = 4
	exitRender      = 5
	exitFilesystem  = 6
)

// ExitCode verilen hatayı süreç çıkış koduna çevirir; main kullanır.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, operation.ErrParameter):
		return exitParameter
	case errors.Is(err, media.ErrLoad):
		return exitLoad
	case errors.Is(err, timeline.ErrComposition):
		return exitComposition
	case errors.Is(err, engine.ErrRender):
		return exitRender
	case errors.Is(err, export.ErrFilesystem):
		return exitFilesystem
	default:
		return exitError
	}
}
