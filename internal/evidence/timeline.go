package evidence

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"slices"

	"github.com/nfnt/resize"
)

// TimelineOptions configures timeline GIF generation
type TimelineOptions struct {
	FrameDelay int  // hundredths of a second per step
	MaxWidth   uint // output width; height keeps the aspect ratio
}

// ErrNoFrames is returned when there is nothing to put in a timeline
var ErrNoFrames = errors.New("no frames recorded")

// WriteTimeline renders frames as an animated GIF at path, one frame per
// step with a status banner, and returns the file size.
func WriteTimeline(frames []Frame, path string, opts TimelineOptions) (int64, error) {
	if len(frames) == 0 {
		return 0, ErrNoFrames
	}

	delay := opts.FrameDelay
	if delay <= 0 {
		delay = 100
	}
	outputWidth := opts.MaxWidth
	if outputWidth == 0 {
		outputWidth = 800
	}

	bounds := frames[0].Image.Bounds()
	aspectRatio := float64(bounds.Dy()) / float64(bounds.Dx())
	outputHeight := uint(float64(outputWidth) * aspectRatio)

	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}

	bannered := make([]image.Image, len(frames))
	for i, f := range frames {
		bannered[i] = DrawBanner(f.Image, i+1, len(frames), f.Failed)
	}

	palette := generatePalette(bannered[0])

	for i, frame := range bannered {
		resized := resize.Resize(outputWidth, outputHeight, frame, resize.Lanczos3)

		paletted := image.NewPaletted(resized.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, resized.Bounds(), resized, image.Point{})

		g.Image[i] = paletted
		g.Delay[i] = delay
	}
	// Hold the last step on screen
	g.Delay[len(g.Delay)-1] = delay * 3

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, g); err != nil {
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// generatePalette builds a 256-color palette from the most frequent colors
// of img, always including the banner colors
func generatePalette(img image.Image) color.Palette {
	bounds := img.Bounds()
	colorMap := make(map[color.RGBA]int)

	step := 4
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			c := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
			colorMap[c]++
		}
	}

	type colorCount struct {
		c     color.RGBA
		count int
	}
	colors := make([]colorCount, 0, len(colorMap))
	for c, count := range colorMap {
		colors = append(colors, colorCount{c, count})
	}
	slices.SortFunc(colors, func(a, b colorCount) int { return b.count - a.count })

	palette := color.Palette{color.RGBA{0, 0, 0, 0}, passColor, failColor, trackColor}
	for i := 0; i < len(colors) && len(palette) < 256; i++ {
		if slices.Contains(palette, color.Color(colors[i].c)) {
			continue
		}
		palette = append(palette, colors[i].c)
	}
	for len(palette) < 256 {
		gray := uint8(len(palette))
		palette = append(palette, color.RGBA{gray, gray, gray, 255})
	}
	return palette
}
