package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mlihgenel/avtools-cli/internal/avtime"
)

// DecodeFrame kaynaktan verilen andaki tek kareyi çözer. Kare PNG olarak
// boruya yazdırılır ve bellekte decode edilir; autorotate açık kalır, kare
// görüntüleme yönelimiyle döner.
func (e *Engine) DecodeFrame(ctx context.Context, path string, at avtime.Time) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := e.findFFmpeg(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	buf := &bytes.Buffer{}
	err := ffmpeg.Input(path, e.quiet(ffmpeg.KwArgs{"ss": at.Seconds()})).
		Output("pipe:", ffmpeg.KwArgs{
			"vframes": 1,
			"f":       "image2pipe",
			"vcodec":  "png",
		}).
		WithOutput(buf).
		Run()
	if err != nil {
		return nil, fmt.Errorf("%w: kare çözülemedi (%s @ %s): %v", ErrRender, path, at, err)
	}

	img, err := png.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: kare png çözümlenemedi: %v", ErrRender, err)
	}
	return img, nil
}
