package httpapi

import "errors"

// ErrCapacityExceeded is returned when every worker slot is already
// busy with an in-flight batch. The HTTP layer translates this to 503.
var ErrCapacityExceeded = errors.New("execution capacity exceeded")

// pool is a non-blocking counting semaphore bounding how many batches
// this worker evaluates at once, the same bulkhead shape as
// divitsinghall-Vortex's ProcessRunner: a buffered channel sized to the
// configured concurrency limit, fail-fast rather than queue
// indefinitely when full.
type pool struct {
	slots chan struct{}
}

func newPool(maxConcurrent int) *pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &pool{slots: make(chan struct{}, maxConcurrent)}
}

// acquire reserves a slot, returning a release func, or
// ErrCapacityExceeded if every slot is already taken.
func (p *pool) acquire() (release func(), err error) {
	select {
	case p.slots <- struct{}{}:
		return func() { <-p.slots }, nil
	default:
		return nil, ErrCapacityExceeded
	}
}
