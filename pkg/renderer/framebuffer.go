package renderer

import (
	"image"
	"image/color"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// Framebuffer accumulates linear color samples per pixel in a flat,
// row-major buffer (top-to-bottom, left-to-right). Averaging happens on
// read, so more samples can always be added.
type Framebuffer struct {
	Width, Height int
	accum         []core.Vec3
	counts        []int64
}

// NewFramebuffer creates an empty accumulation buffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		accum:  make([]core.Vec3, width*height),
		counts: make([]int64, width*height),
	}
}

func (fb *Framebuffer) index(x, y int) int {
	return y*fb.Width + x
}

// AddSample accumulates one linear color sample for pixel (x, y)
func (fb *Framebuffer) AddSample(x, y int, c core.Vec3) {
	i := fb.index(x, y)
	fb.accum[i] = fb.accum[i].Add(c)
	fb.counts[i]++
}

// SampleCount returns how many samples pixel (x, y) has accumulated
func (fb *Framebuffer) SampleCount(x, y int) int {
	return int(fb.counts[fb.index(x, y)])
}

// ColorAt returns the averaged linear color of pixel (x, y)
func (fb *Framebuffer) ColorAt(x, y int) core.Vec3 {
	i := fb.index(x, y)
	n := fb.counts[i]
	if n == 0 {
		return core.Vec3{}
	}
	return fb.accum[i].Multiply(1.0 / float64(n))
}

// ToImage converts the buffer to an RGBA image with gamma-2 correction,
// used by the PNG output path and the web preview
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.ColorAt(x, y).Clamp(0.0, 1.0).GammaCorrect(2.0)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
