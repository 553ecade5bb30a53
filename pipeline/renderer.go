package pipeline

import (
	"sync"

	"github.com/swraster/salvia/internal/framebuffer"
	"github.com/swraster/salvia/internal/obslog"
	"github.com/swraster/salvia/internal/workerpool"
)

// DefaultQueueDepth bounds the async submission FIFO, grounded on the
// original's async_renderer bounded command queue.
const DefaultQueueDepth = 64

// task is either a draw (Cmd set) or a barrier (Reply set, Cmd nil) or
// the shutdown sentinel (both nil).
type task struct {
	Cmd   *DrawCommand
	Reply chan struct{}
}

// Renderer drains a bounded FIFO of draw commands on a dedicated
// goroutine, running each through Draw against a shared target. The
// task with nil Cmd and nil Reply that Shutdown enqueues is the sentinel
// that tells the drain goroutine to exit after the tasks queued before
// it, matching the original's null-terminated submission queue.
type Renderer struct {
	target *framebuffer.Buffer
	pool   *workerpool.Pool

	queue chan task
	done  chan struct{}

	errMu   sync.Mutex
	lastErr error
}

// NewRenderer creates a renderer targeting target, with its own worker
// pool sized by poolCfg.
func NewRenderer(target *framebuffer.Buffer, poolCfg workerpool.Config, queueDepth int) *Renderer {
	if queueDepth <= 0 {
		queueDepth = DefaultQueueDepth
	}
	r := &Renderer{
		target: target,
		pool:   workerpool.New(poolCfg),
		queue:  make(chan task, queueDepth),
		done:   make(chan struct{}),
	}
	go r.drain()
	return r
}

func (r *Renderer) drain() {
	defer close(r.done)
	for t := range r.queue {
		if t.Cmd == nil {
			if t.Reply != nil {
				close(t.Reply) // barrier: signal and keep draining
				continue
			}
			return // shutdown sentinel
		}
		if err := Draw(*t.Cmd, r.target, r.pool); err != nil {
			obslog.Get().Error("pipeline: draw failed", "error", err)
			r.errMu.Lock()
			r.lastErr = err
			r.errMu.Unlock()
		}
	}
}

// Submit enqueues a draw command. It blocks if the FIFO is full,
// providing backpressure to the submitting goroutine instead of
// growing without bound.
func (r *Renderer) Submit(cmd DrawCommand) {
	r.queue <- task{Cmd: &cmd}
}

// Sync blocks until every command submitted before this call has
// drained, without stopping the renderer goroutine.
func (r *Renderer) Sync() {
	reply := make(chan struct{})
	r.queue <- task{Reply: reply}
	<-reply
}

// Shutdown enqueues the sentinel and waits for the drain goroutine to
// finish every command already queued ahead of it.
func (r *Renderer) Shutdown() {
	r.queue <- task{}
	<-r.done
}

// LastError returns the most recent error a queued draw produced, if
// any, since the last call to LastError.
func (r *Renderer) LastError() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	err := r.lastErr
	r.lastErr = nil
	return err
}
