package renderer

import (
	"fmt"
	"time"

	"github.com/jmcgill/go-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// progressTracker logs tiles remaining and an estimated time left,
// updating at most once per second.
type progressTracker struct {
	logger     core.Logger
	total      int
	done       int
	start      time.Time
	lastUpdate time.Time
}

func newProgressTracker(logger core.Logger, total int) *progressTracker {
	now := time.Now()
	return &progressTracker{
		logger:     logger,
		total:      total,
		start:      now,
		lastUpdate: now,
	}
}

// TileDone records a completed tile and maybe emits a progress line
func (p *progressTracker) TileDone() {
	p.done++

	now := time.Now()
	if now.Sub(p.lastUpdate) < time.Second {
		return
	}
	p.lastUpdate = now

	// Estimate from the average time per completed tile
	avgPerTile := now.Sub(p.start) / time.Duration(p.done)
	remaining := time.Duration(p.total-p.done) * avgPerTile

	p.logger.Printf("\rTiles remaining: %d | Estimated time left: %dm %02ds",
		p.total-p.done, int(remaining.Minutes()), int(remaining.Seconds())%60)
}

// Finish emits the completion line
func (p *progressTracker) Finish(elapsed time.Duration) {
	p.logger.Printf("\rDone. Rendered %d tiles in %.2fs\n", p.done, elapsed.Seconds())
}
