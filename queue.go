package salvia

import (
	"github.com/swraster/salvia/pipeline"
)

// Queue submits draw and clear commands against one RenderTarget. All
// commands drain on the target's dedicated renderer goroutine, in
// submission order (spec.md §6.4).
type Queue struct {
	target   *RenderTarget
	renderer *pipeline.Renderer
}

// Submit enqueues a draw command. Submit never blocks the caller beyond
// the queue's configured depth (backpressure, not an unbounded buffer).
func (q *Queue) Submit(cmd pipeline.DrawCommand) {
	q.renderer.Submit(cmd)
}

// Clear fills the render target's color (and, when depth/stencil
// clearing is requested, its depth-stencil store) unconditionally,
// bypassing any depth/stencil test or blending, per spec.md §6.5.
//
// Clear runs synchronously on the caller's goroutine against the
// target's buffers directly: clears do not need the geometry pipeline,
// so routing them through the draw queue would only add latency.
func (q *Queue) Clear(color [4]float32, clearDepthStencil bool, depth float32, stencil uint8) {
	q.target.Buffer.ClearColor(color)
	if clearDepthStencil {
		q.target.Buffer.ClearDepthStencil(depth, stencil)
	}
}

// Wait blocks until every command submitted so far has drained.
func (q *Queue) Wait() {
	q.renderer.Sync()
}

// LastError returns the most recent error encountered while draining
// submitted commands, if any.
func (q *Queue) LastError() error {
	return q.renderer.LastError()
}

// Shutdown drains all queued commands and stops the renderer goroutine.
// The Queue must not be used afterward.
func (q *Queue) Shutdown() {
	q.renderer.Shutdown()
}
