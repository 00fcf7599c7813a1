package renderer

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// Checkpoints snapshot the accumulation buffer so a long render can be
// stopped and resumed with more samples later. Layout: a small raw header
// (magic, version, dimensions), then a snappy framed stream of per-pixel
// color sums and sample counts in row-major order.

var checkpointMagic = [4]byte{'P', 'T', 'C', 'P'}

const checkpointVersion uint32 = 1

// Pixels above this bound indicate a corrupt or hostile header
const maxCheckpointPixels = 1 << 28

type checkpointHeader struct {
	Magic   [4]byte
	Version uint32
	Width   uint32
	Height  uint32
}

type pixelRecord struct {
	R, G, B float64
	Samples int64
}

// WriteCheckpoint serializes the framebuffer to w
func (fb *Framebuffer) WriteCheckpoint(w io.Writer) error {
	header := checkpointHeader{
		Magic:   checkpointMagic,
		Version: checkpointVersion,
		Width:   uint32(fb.Width),
		Height:  uint32(fb.Height),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("writing checkpoint header: %w", err)
	}

	sw := snappy.NewBufferedWriter(w)
	records := make([]pixelRecord, len(fb.accum))
	for i, c := range fb.accum {
		records[i] = pixelRecord{R: c.X, G: c.Y, B: c.Z, Samples: fb.counts[i]}
	}
	if err := binary.Write(sw, binary.LittleEndian, records); err != nil {
		return fmt.Errorf("writing checkpoint pixels: %w", err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("flushing checkpoint: %w", err)
	}
	return nil
}

// ReadCheckpoint deserializes a framebuffer from r
func ReadCheckpoint(r io.Reader) (*Framebuffer, error) {
	var header checkpointHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading checkpoint header: %w", err)
	}
	if header.Magic != checkpointMagic {
		return nil, fmt.Errorf("not a checkpoint file (bad magic %q)", header.Magic)
	}
	if header.Version != checkpointVersion {
		return nil, fmt.Errorf("unsupported checkpoint version %d", header.Version)
	}
	width, height := int(header.Width), int(header.Height)
	if width <= 0 || height <= 0 || width*height > maxCheckpointPixels {
		return nil, fmt.Errorf("invalid checkpoint dimensions %dx%d", width, height)
	}

	fb := NewFramebuffer(width, height)
	records := make([]pixelRecord, width*height)
	if err := binary.Read(snappy.NewReader(r), binary.LittleEndian, records); err != nil {
		return nil, fmt.Errorf("reading checkpoint pixels: %w", err)
	}
	for i, rec := range records {
		fb.accum[i] = core.NewVec3(rec.R, rec.G, rec.B)
		fb.counts[i] = rec.Samples
	}
	return fb, nil
}

// SaveCheckpoint writes the framebuffer to a file
func SaveCheckpoint(path string, fb *Framebuffer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating checkpoint file: %w", err)
	}
	if err := fb.WriteCheckpoint(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadCheckpoint reads a framebuffer back from a file
func LoadCheckpoint(path string) (*Framebuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint file: %w", err)
	}
	defer file.Close()
	return ReadCheckpoint(file)
}
