package fsm

import "sort"

// Request is an opaque, externally pushed token asking for a transition.
type Request string

// Requests is an edge-triggered token set. Push is idempotent; Consume is
// a destructive test-and-clear, so a held or duplicated signal cannot
// refire a transition on a later tick without a fresh push. It is owned by
// a single actor on the game-loop goroutine and needs no locking.
type Requests struct {
	pending map[Request]struct{}
}

func NewRequests() *Requests {
	return &Requests{pending: make(map[Request]struct{})}
}

// Push records a pending request. Pushing the same kind twice before
// consumption has the same effect as pushing it once.
func (r *Requests) Push(req Request) {
	if r == nil || req == "" {
		return
	}
	r.pending[req] = struct{}{}
}

// Consume reports whether req was pending and clears it. The observation
// and the clear are one step, so no second guard can also observe the
// token as present in the same tick.
func (r *Requests) Consume(req Request) bool {
	if r == nil {
		return false
	}
	if _, ok := r.pending[req]; !ok {
		return false
	}
	delete(r.pending, req)
	return true
}

// Pending returns a sorted snapshot of the outstanding tokens, for debug
// display only.
func (r *Requests) Pending() []Request {
	if r == nil || len(r.pending) == 0 {
		return nil
	}
	out := make([]Request, 0, len(r.pending))
	for req := range r.pending {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear drops every pending token.
func (r *Requests) Clear() {
	if r == nil {
		return
	}
	clear(r.pending)
}
