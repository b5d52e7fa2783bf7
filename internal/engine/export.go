package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mlihgenel/avtools-cli/internal/export"
	"github.com/mlihgenel/avtools-cli/internal/geometry"
	"github.com/mlihgenel/avtools-cli/internal/media"
	"github.com/mlihgenel/avtools-cli/internal/render"
	"github.com/mlihgenel/avtools-cli/internal/timeline"
)

// Render dışa aktarma işini biçimine göre ffmpeg komutuna çevirir ve çalıştırır.
func (e *Engine) Render(ctx context.Context, job export.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := e.findFFmpeg(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	switch {
	case job.IsClip():
		return e.renderClip(ctx, job)
	case job.IsSlideshow():
		return e.renderSlideshow(job)
	case job.Composition != nil:
		return e.renderComposition(job)
	default:
		return fmt.Errorf("%w: boş dışa aktarma işi", ErrRender)
	}
}

// renderClip kaynağın tek bir aralığını yeni dosyaya aktarır. Önce akış
// kopyalama denenir; kesme noktası anahtar kareye denk gelmezse yeniden
// kodlamaya düşülür.
func (e *Engine) renderClip(ctx context.Context, job export.Job) error {
	clip := *job.Clip

	input := ffmpeg.Input(job.SourcePath, e.quiet(ffmpeg.KwArgs{"ss": clip.Start.Seconds()}))
	copyOut := input.Output(job.OutputPath, ffmpeg.KwArgs{
		"t":   clip.Duration.Seconds(),
		"c:v": "copy",
		"c:a": "copy",
	})
	if err := e.run(copyOut); err == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outKw := videoOutputArgs(job.FileType, job.Quality)
	if isAudioFormat(job.FileType) {
		outKw = audioOutputArgs(job.FileType, job.Quality)
	}
	outKw["t"] = clip.Duration.Seconds()

	input = ffmpeg.Input(job.SourcePath, e.quiet(ffmpeg.KwArgs{"ss": clip.Start.Seconds()}))
	return e.run(input.Output(job.OutputPath, outKw))
}

// renderSlideshow hareketsiz görüntü listesini concat demuxer ile videoya
// çevirir. Her görüntü kanonik kare boyutuna sığdırılıp ortalanır.
func (e *Engine) renderSlideshow(job export.Job) error {
	listFile, err := os.CreateTemp("", "avtools-stills-*.txt")
	if err != nil {
		return fmt.Errorf("%w: concat listesi oluşturulamadı: %v", ErrRender, err)
	}
	defer os.Remove(listFile.Name())

	if _, err := listFile.WriteString(concatListing(job.Stills, job.StillSeconds)); err != nil {
		listFile.Close()
		return fmt.Errorf("%w: concat listesi yazılamadı: %v", ErrRender, err)
	}
	listFile.Close()

	w, h := evenSize(job.FrameSize)
	input := ffmpeg.Input(listFile.Name(), e.quiet(ffmpeg.KwArgs{"f": "concat", "safe": "0"}))
	stream := input.
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease", w, h)}).
		Filter("pad", ffmpeg.Args{fmt.Sprintf("%d:%d:(ow-iw)/2:(oh-ih)/2", w, h)}, ffmpeg.KwArgs{"color": "black"}).
		Filter("setsar", ffmpeg.Args{"1"}).
		Filter("fps", ffmpeg.Args{strconv.Itoa(render.DefaultFrameRate)})

	return e.run(stream.Output(job.OutputPath, videoOutputArgs(job.FileType, job.Quality)))
}

// renderComposition zaman çizelgesi kompozisyonunu tek ffmpeg komutuna çevirir.
// Girdiler autorotate kapalı okunur; yönelim düzeltmesi dahil tüm dönüşümler
// talimattan gelir.
func (e *Engine) renderComposition(job export.Job) error {
	if job.Instruction == nil {
		return e.renderAudioOnly(job)
	}

	comp := job.Composition
	inst := job.Instruction

	vtrack := comp.Track(media.TypeVideo)
	if vtrack == nil || len(vtrack.Segments) == 0 {
		return fmt.Errorf("%w: kompozisyonda video parçası yok", ErrRender)
	}
	segs := vtrack.Segments

	var audioSegs []timeline.Segment
	for _, tr := range comp.TracksOf(media.TypeAudio) {
		audioSegs = append(audioSegs, tr.Segments...)
	}

	inputs := newInputSet(e)
	var overlayFiles []string
	defer func() {
		for _, path := range overlayFiles {
			os.Remove(path)
		}
	}()

	if len(segs) > 1 {
		return e.renderConcat(job, inputs, segs, audioSegs)
	}

	seg := segs[0]
	v := inputs.get(seg.Source.Path).Get("v")
	if seg.IsScaled() {
		v = v.Filter("setpts", ffmpeg.Args{setptsArgs(seg.Tempo())})
	}
	v = applySteps(v, transposeSteps(instructionTransform(inst)))
	if inst.Crop != nil {
		v = v.Filter("crop", ffmpeg.Args{cropArgs(*inst.Crop)})
	}
	v = v.Filter("fps", ffmpeg.Args{strconv.Itoa(inst.FrameRate)})

	v, err := e.overlayChain(v, inputs, inst, &overlayFiles)
	if err != nil {
		return err
	}

	var audioStreams []*ffmpeg.Stream
	for _, aseg := range audioSegs {
		audioStreams = append(audioStreams, e.audioStream(inputs, aseg, job.Mix))
	}

	var afinal *ffmpeg.Stream
	switch {
	case len(audioStreams) == 1:
		afinal = audioStreams[0]
	case len(audioStreams) > 1:
		afinal = ffmpeg.Filter(audioStreams, "amix", ffmpeg.Args{amixArgs(len(audioStreams))})
	}

	outKw := videoOutputArgs(job.FileType, job.Quality)
	if afinal == nil {
		return e.run(v.Output(job.OutputPath, outKw))
	}
	return e.run(ffmpeg.Output([]*ffmpeg.Stream{v, afinal}, job.OutputPath, outKw))
}

// renderConcat çok segmentli video parçasını (birleştirme) concat filtresiyle
// aktarır. Her dal kendi kaynağının yönelim düzeltmesini alır ve kanonik
// boyuta sığdırılır. Ses yalnızca her kaynağın ses akışı varsa taşınır;
// model gerçek segmentleri korur, sınır engine tarafındadır.
func (e *Engine) renderConcat(job export.Job, inputs *inputSet, segs, audioSegs []timeline.Segment) error {
	inst := job.Instruction
	w, h := evenSize(inst.RenderSize)
	withAudio := len(audioSegs) == len(segs) && len(audioSegs) > 0

	var parts []*ffmpeg.Stream
	for i, seg := range segs {
		v := inputs.get(seg.Source.Path).Get("v")
		v = applySteps(v, transposeSteps(seg.Source.Transform))
		v = v.
			Filter("fps", ffmpeg.Args{strconv.Itoa(inst.FrameRate)}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease", w, h)}).
			Filter("pad", ffmpeg.Args{fmt.Sprintf("%d:%d:(ow-iw)/2:(oh-ih)/2", w, h)}, ffmpeg.KwArgs{"color": "black"}).
			Filter("setsar", ffmpeg.Args{"1"})
		parts = append(parts, v)

		if withAudio {
			a := inputs.get(audioSegs[i].Source.Path).Get("a").
				Filter("aresample", ffmpeg.Args{"44100"})
			parts = append(parts, a)
		}
	}

	var joined *ffmpeg.Stream
	if withAudio {
		joined = ffmpeg.Concat(parts, ffmpeg.KwArgs{"v": 1, "a": 1})
	} else {
		joined = ffmpeg.Concat(parts)
	}
	return e.run(joined.Output(job.OutputPath, videoOutputArgs(job.FileType, job.Quality)))
}

// renderAudioOnly yalnız ses içeren kompozisyonu (ses ayıklama) aktarır.
func (e *Engine) renderAudioOnly(job export.Job) error {
	track := job.Composition.Track(media.TypeAudio)
	if track == nil || len(track.Segments) == 0 {
		return fmt.Errorf("%w: dışa aktarılacak ses akışı yok", ErrRender)
	}

	seg := track.Segments[0]
	input := ffmpeg.Input(seg.Source.Path, e.quiet(ffmpeg.KwArgs{}))
	a := input.Get("a").Filter("anull", ffmpeg.Args{})
	return e.run(a.Output(job.OutputPath, audioOutputArgs(job.FileType, job.Quality)))
}

// audioStream tek ses segmentinin filtre zincirini kurar: tempo, çizelge
// kayması ve varsa hacim zarfı.
func (e *Engine) audioStream(inputs *inputSet, seg timeline.Segment, mix *render.AudioMix) *ffmpeg.Stream {
	a := inputs.get(seg.Source.Path).Get("a")
	if seg.IsScaled() {
		for _, factor := range atempoChain(seg.Tempo()) {
			a = a.Filter("atempo", ffmpeg.Args{formatFloat(factor)})
		}
	}
	if seg.At.Value > 0 {
		a = a.Filter("adelay", ffmpeg.Args{adelayArgs(seg.At)})
	}
	for _, ramp := range rampsFor(mix, seg.Source) {
		a = a.Filter("afade", ffmpeg.Args{afadeArgs(ramp)})
	}
	return a
}

// overlayChain bindirme katmanlarını video akışına uygular. Katman içeriği
// geçici PNG olarak yazılır ve döngülü görüntü girdisi olarak okunur;
// saydamlık rampaları fade filtreleriyle, pencere enable ifadesiyle verilir.
func (e *Engine) overlayChain(v *ffmpeg.Stream, inputs *inputSet, inst *render.Instruction, overlayFiles *[]string) (*ffmpeg.Stream, error) {
	if inst.Overlay == nil {
		return v, nil
	}

	for _, layer := range inst.Overlay.Overlays {
		path, err := writeOverlayImage(layer.Content)
		if err != nil {
			return nil, err
		}
		*overlayFiles = append(*overlayFiles, path)

		ov := inputs.image(path).Get("v").Filter("format", ffmpeg.Args{"rgba"})
		for _, ramp := range layer.Opacity {
			ov = ov.Filter("fade", ffmpeg.Args{fadeArgs(ramp)})
		}

		v = ffmpeg.Filter([]*ffmpeg.Stream{v, ov}, "overlay",
			ffmpeg.Args{overlayPosition(layer.Position)},
			ffmpeg.KwArgs{"enable": overlayEnable(layer)})
	}
	return v, nil
}

// writeOverlayImage rasterize edilmiş katman içeriğini geçici PNG'ye yazar.
func writeOverlayImage(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "avtools-overlay-*.png")
	if err != nil {
		return "", fmt.Errorf("%w: bindirme görseli yazılamadı: %v", ErrRender, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("%w: bindirme görseli yazılamadı: %v", ErrRender, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("%w: bindirme görseli yazılamadı: %v", ErrRender, err)
	}
	return f.Name(), nil
}

// rampsFor karışım zarfından verilen parçaya ait rampaları bulur.
func rampsFor(mix *render.AudioMix, track media.Track) []render.VolumeRamp {
	if mix == nil {
		return nil
	}
	for _, tv := range mix.Volumes {
		if tv.Track == track {
			return tv.Ramps
		}
	}
	return nil
}

// instructionTransform talimatın ilk katman dönüşümünü döner; katman yoksa
// birim dönüşüm.
func instructionTransform(inst *render.Instruction) geometry.Affine {
	if len(inst.Layers) == 0 {
		return geometry.Identity()
	}
	return inst.Layers[0].Transform
}

func applySteps(v *ffmpeg.Stream, steps []filterStep) *ffmpeg.Stream {
	for _, step := range steps {
		if step.Args == "" {
			v = v.Filter(step.Name, ffmpeg.Args{})
		} else {
			v = v.Filter(step.Name, ffmpeg.Args{step.Args})
		}
	}
	return v
}

// inputSet aynı dosyanın tek -i girdisi olarak paylaşılmasını sağlar ve
// sessiz modda loglevel bayrağını ilk girdiye iliştirir.
type inputSet struct {
	engine *Engine
	nodes  map[string]*ffmpeg.Stream
	count  int
}

func newInputSet(e *Engine) *inputSet {
	return &inputSet{engine: e, nodes: map[string]*ffmpeg.Stream{}}
}

func (s *inputSet) get(path string) *ffmpeg.Stream {
	if node, ok := s.nodes[path]; ok {
		return node
	}
	node := ffmpeg.Input(path, s.decorate(ffmpeg.KwArgs{"autorotate": 0}))
	s.nodes[path] = node
	return node
}

// image döngülü hareketsiz görüntü girdisi açar; bindirme katmanının fade
// filtreleri kare akışı gerektirdiğinden görüntü sabit hızda yinelenir.
func (s *inputSet) image(path string) *ffmpeg.Stream {
	return ffmpeg.Input(path, s.decorate(ffmpeg.KwArgs{
		"loop":      1,
		"framerate": render.DefaultFrameRate,
	}))
}

func (s *inputSet) decorate(kw ffmpeg.KwArgs) ffmpeg.KwArgs {
	if s.count == 0 && !s.engine.Verbose {
		kw["loglevel"] = "error"
	}
	s.count++
	return kw
}

// quiet tekil girdi yollarında loglevel bayrağını ekler.
func (e *Engine) quiet(kw ffmpeg.KwArgs) ffmpeg.KwArgs {
	if !e.Verbose {
		kw["loglevel"] = "error"
	}
	return kw
}

// run komutu çalıştırır; hata mesajına komutun kendisi eklenir.
func (e *Engine) run(stream *ffmpeg.Stream) error {
	cmd := stream.OverWriteOutput()
	if e.Verbose {
		cmd = cmd.ErrorToStdOut()
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: ffmpeg başarısız: %v (komut: %s)", ErrRender, err, stream.String())
	}
	return nil
}
