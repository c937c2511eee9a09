package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// Pixel is a rendered pixel result
type Pixel struct {
	X, Y  int
	Color core.Tup
}

// WorkerPool manages parallel per-pixel rendering
type WorkerPool struct {
	taskQueue   chan PixelCoord
	resultQueue chan Pixel
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders pixel tasks from the shared queue
type Worker struct {
	ID          int
	camera      *Camera
	world       *world.World
	taskQueue   chan PixelCoord
	resultQueue chan Pixel
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Both queues are buffered for capacity tasks so submission and result
// delivery never block the workers.
func NewWorkerPool(camera *Camera, w *world.World, numWorkers, capacity int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan PixelCoord, capacity),
		resultQueue: make(chan Pixel, capacity),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			camera:      camera,
			world:       w,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Once ctx is cancelled the workers drain the
// remaining tasks without rendering them.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// SubmitTask submits a pixel task to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelCoord) {
	wp.taskQueue <- task
}

// Stop closes the task queue, waits for the workers and closes the results
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// Results returns the channel of completed pixels. It is closed by Stop.
func (wp *WorkerPool) Results() <-chan Pixel {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if ctx.Err() != nil {
			continue
		}
		w.resultQueue <- Pixel{
			X:     task.X,
			Y:     task.Y,
			Color: w.camera.RenderPixel(w.world, task.X, task.Y),
		}
	}
}
