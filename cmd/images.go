package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/operation"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

var (
	imagesTimes   string
	imagesStride  float64
	imagesTo      string
	imagesRect    string
	imagesName    string
	imagesQuality int
)

var imagesCmd = &cobra.Command{
	Use:   "images <girdi>",
	Short: "Videodan kare görüntüleri üretir",
	Long: `Videodan verilen anlarda kare görüntüleri üretir. Anlar --times ile açık
liste olarak ya da --stride ile eşit aralıklarla verilir; ikisi de
verilirse liste kazanır. --rect ile her kare yazılmadan önce kırpılır.
Kareler "<ad>_001.png" biçiminde numaralanır.

Örnekler:
  avtools-cli images video.mp4 --times 1.5,8,12
  avtools-cli images video.mp4 --stride 10
  avtools-cli images video.mp4 --stride 5 --to jpg --quality 90
  avtools-cli images video.mp4 --times 3 --rect "0 0 640 360" --name kapak`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if err := requireInput(input); err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}

		applyQualityDefault(cmd, "quality", &imagesQuality)

		times, err := parseTimesArg(imagesTimes)
		if err != nil {
			return paramErr(err)
		}

		var rect *geometry.Rect
		if strings.TrimSpace(imagesRect) != "" {
			r, err := parseRectArg(imagesRect)
			if err != nil {
				return paramErr(err)
			}
			rect = &r
		}

		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if strings.TrimSpace(imagesName) != "" {
			base = strings.TrimSpace(imagesName)
		}
		dir := strings.TrimSpace(outputDir)
		if dir == "" {
			dir = filepath.Dir(input)
		}

		ctx := cmd.Context()
		src := media.NewSource(input, eng)
		if err := src.Load(ctx); err != nil {
			return err
		}

		op := operation.GenerateImages{
			Times:         times,
			StrideSeconds: imagesStride,
			Rect:          rect,
			OutputDir:     dir,
			BaseName:      base,
			Format:        imagesTo,
			Quality:       imagesQuality,
		}

		ui.PrintInfo(fmt.Sprintf("Kareler çözülüyor: %s", input))
		started := time.Now()

		sampler := &export.FrameSampler{Decoder: eng}
		written, err := op.Run(ctx, src, sampler)
		if err != nil {
			if len(written) > 0 {
				ui.PrintWarning(fmt.Sprintf("%d kare yazılabildi, işlem yarıda kesildi", len(written)))
			}
			return err
		}

		if verbose {
			for _, f := range written {
				fmt.Printf("  %s %s\n", ui.IconImage, f)
			}
		}
		ui.PrintSuccess(fmt.Sprintf("%d kare yazıldı → %s", len(written), dir))
		ui.PrintDuration(time.Since(started))
		return nil
	},
}

func init() {
	imagesCmd.Flags().StringVar(&imagesTimes, "times", "", "Kare anları, virgülle ayrılmış (örn. 1.5,8,1:10)")
	imagesCmd.Flags().Float64Var(&imagesStride, "stride", 0, "Eşit aralık adımı (saniye)")
	imagesCmd.Flags().StringVarP(&imagesTo, "to", "t", "png", "Görsel formatı (png, jpg, webp, bmp, tiff)")
	imagesCmd.Flags().StringVarP(&imagesRect, "rect", "r", "", "Kırpma dikdörtgeni: \"x y w h\" (sol-alt orijin)")
	imagesCmd.Flags().StringVarP(&imagesName, "name", "n", "", "Kare dosya adlarının tabanı")
	imagesCmd.Flags().IntVarP(&imagesQuality, "quality", "q", 0, "Görsel kalitesi (1-100)")

	rootCmd.AddCommand(imagesCmd)
}
