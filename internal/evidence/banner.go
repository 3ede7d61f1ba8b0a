package evidence

import (
	"image"
	"image/color"
	"image/draw"
)

// BannerHeight is the height of the progress strip drawn on each frame
const BannerHeight = 8

var (
	passColor  = color.RGBA{46, 160, 67, 255}
	failColor  = color.RGBA{218, 54, 51, 255}
	trackColor = color.RGBA{48, 54, 61, 255}
)

// DrawBanner returns a copy of frame with a progress strip along the top
// showing step of total. A failed step turns the strip red and outlines
// the frame.
func DrawBanner(frame image.Image, step, total int, failed bool) image.Image {
	bounds := frame.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, frame, bounds.Min, draw.Src)

	strip := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, min(bounds.Min.Y+BannerHeight, bounds.Max.Y))
	draw.Draw(result, strip, &image.Uniform{C: trackColor}, image.Point{}, draw.Src)

	fill := passColor
	if failed {
		fill = failColor
	}
	if total > 0 {
		done := strip
		done.Max.X = strip.Min.X + strip.Dx()*min(step, total)/total
		draw.Draw(result, done, &image.Uniform{C: fill}, image.Point{}, draw.Src)
	}

	if failed {
		drawBorder(result, failColor, 3)
	}
	return result
}

// drawBorder outlines img with width lines of c
func drawBorder(img *image.RGBA, c color.RGBA, width int) {
	b := img.Bounds()
	for i := 0; i < width; i++ {
		x1, y1 := b.Min.X+i, b.Min.Y+i
		x2, y2 := b.Max.X-1-i, b.Max.Y-1-i
		drawLine(img, x1, y1, x2, y1, c)
		drawLine(img, x2, y1, x2, y2, c)
		drawLine(img, x2, y2, x1, y2, c)
		drawLine(img, x1, y2, x1, y1, c)
	}
}

// drawLine draws a line between two points using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		setPixelSafe(img, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
