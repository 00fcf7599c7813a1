// Package ppm serializes linear colors to the plain-text P3 image format.
// It is the image sink: it receives one linear RGB triple per pixel in
// row-major top-to-bottom order, applies gamma-2 correction, and quantizes
// each channel by mapping [0, 0.999] to [0, 255] via truncation.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// intensity keeps quantized channels strictly below 256
var intensity = core.NewInterval(0.000, 0.999)

// Writer emits a P3 image pixel by pixel
type Writer struct {
	bw            *bufio.Writer
	width, height int
	written       int
}

// NewWriter writes the three-line header (magic token, dimensions, max
// channel value) and returns a writer expecting width*height pixels.
func NewWriter(w io.Writer, width, height int) (*Writer, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return nil, fmt.Errorf("writing ppm header: %w", err)
	}
	return &Writer{bw: bw, width: width, height: height}, nil
}

// WriteColor emits one pixel from a linear color triple
func (pw *Writer) WriteColor(c core.Vec3) error {
	rbyte := int(256 * intensity.Clamp(linearToGamma(c.X)))
	gbyte := int(256 * intensity.Clamp(linearToGamma(c.Y)))
	bbyte := int(256 * intensity.Clamp(linearToGamma(c.Z)))

	if _, err := fmt.Fprintf(pw.bw, "%d %d %d\n", rbyte, gbyte, bbyte); err != nil {
		return fmt.Errorf("writing pixel %d: %w", pw.written, err)
	}
	pw.written++
	return nil
}

// Flush completes the image. It fails if the pixel count does not match
// the header.
func (pw *Writer) Flush() error {
	if pw.written != pw.width*pw.height {
		return fmt.Errorf("ppm image incomplete: wrote %d of %d pixels",
			pw.written, pw.width*pw.height)
	}
	return pw.bw.Flush()
}

// linearToGamma applies gamma-2 correction; non-positive channels map to 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}
