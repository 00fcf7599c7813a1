package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileTask is one unit of work: render a tile's pixels until each has
// Target samples accumulated in the shared framebuffer.
type TileTask struct {
	Tile   Tile
	Target int
}

// TileResult reports a completed (or skipped) tile
type TileResult struct {
	Samples  int
	Canceled bool
}

// WorkerPool renders tiles in parallel. Tiles have disjoint bounds, so
// workers write to the shared framebuffer without locking.
type WorkerPool struct {
	raytracer   *Raytracer
	fb          *Framebuffer
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool writing into fb. queueLen should be the
// number of tiles so submission never blocks.
func NewWorkerPool(raytracer *Raytracer, fb *Framebuffer, numWorkers, queueLen int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		raytracer:   raytracer,
		fb:          fb,
		taskQueue:   make(chan TileTask, queueLen),
		resultQueue: make(chan TileResult, queueLen),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers. Cancellation is cooperative: a worker checks
// the context between tiles, never mid-tile.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// SubmitTask queues a tile for rendering
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// CloseTasks signals that no more tasks will be submitted
func (wp *WorkerPool) CloseTasks() {
	close(wp.taskQueue)
}

// GetResult retrieves one completed tile result
func (wp *WorkerPool) GetResult() TileResult {
	return <-wp.resultQueue
}

// Stop waits for the workers to drain the task queue and shut down.
// CloseTasks must have been called first.
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.resultQueue)
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if ctx.Err() != nil {
			wp.resultQueue <- TileResult{Canceled: true}
			continue
		}
		samples := wp.raytracer.renderTile(task.Tile, wp.fb, task.Target)
		wp.resultQueue <- TileResult{Samples: samples}
	}
}
