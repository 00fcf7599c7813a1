package renderer

import (
	"context"
	"time"
)

// RenderStats summarizes a completed render
type RenderStats struct {
	TotalPixels    int
	TotalSamples   int
	AverageSamples float64
	Elapsed        time.Duration
}

// Render allocates a framebuffer and renders the full configured sample
// count into it.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	fb := NewFramebuffer(rt.camera.ImageWidth(), rt.camera.ImageHeight())
	stats, err := rt.RenderInto(ctx, fb, rt.camera.SamplesPerPixel())
	return fb, stats, err
}

// RenderInto brings every pixel of fb up to targetSamples accumulated
// samples. The framebuffer may already hold samples from an earlier pass
// or a restored checkpoint; pixels at or above the target are skipped.
// Cancellation takes effect between tiles and returns the context's error
// with the partial results left in fb.
func (rt *Raytracer) RenderInto(ctx context.Context, fb *Framebuffer, targetSamples int) (RenderStats, error) {
	start := time.Now()

	tiles := NewTileGrid(fb.Width, fb.Height, rt.config.TileSize, rt.config.Seed)
	pool := NewWorkerPool(rt, fb, rt.config.NumWorkers, len(tiles))
	pool.Start(ctx)

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Target: targetSamples})
	}
	pool.CloseTasks()

	progress := newProgressTracker(rt.logger, len(tiles))
	stats := RenderStats{TotalPixels: fb.Width * fb.Height}
	for range tiles {
		result := pool.GetResult()
		stats.TotalSamples += result.Samples
		if !result.Canceled {
			progress.TileDone()
		}
	}
	pool.Stop()

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	stats.Elapsed = time.Since(start)
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	progress.Finish(stats.Elapsed)
	return stats, nil
}
