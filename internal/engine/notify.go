package engine

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/alfredjeanlab/taskhelm/internal/idgen"
)

// Notice is a transient notification shown to the operator. Notices tied to
// a checkpoint request are invalidated the moment that request stops being
// current, so an auto-dismiss timer can never act on stale state.
type Notice struct {
	ID        string
	Text      string
	RequestID string // optional checkpoint correlation
	timer     *time.Timer
}

// PostNotice schedules a transient notice that auto-dismisses after ttl.
// The returned token cancels it early via DismissNotice. A ttl of zero means
// no auto-dismiss.
func (e *Engine) PostNotice(text, requestID string, ttl time.Duration) string {
	id, err := idgen.GenerateWithPrefix("ntf-")
	if err != nil {
		id = fmt.Sprintf("ntf-%d", time.Now().UnixNano())
	}
	e.Do(func() {
		n := &Notice{ID: id, Text: text, RequestID: requestID}
		if ttl > 0 {
			n.timer = time.AfterFunc(ttl, func() {
				e.Do(func() { e.expireNotice(id) })
			})
		}
		e.notices[id] = n
		e.emit(SliceNotify)
	})
	return id
}

// expireNotice runs on the loop when an auto-dismiss timer fires. The token
// lookup is the staleness re-check: a notice invalidated at a state change
// is already gone and the timer is a no-op.
func (e *Engine) expireNotice(id string) {
	n, ok := e.notices[id]
	if !ok {
		return
	}
	if n.RequestID != "" && n.RequestID != e.currentRequestID() {
		// The request this notice referred to is no longer current; drop
		// without notifying as if it had been invalidated in time.
		delete(e.notices, id)
		return
	}
	delete(e.notices, id)
	e.emit(SliceNotify)
}

// DismissNotice cancels a notice early.
func (e *Engine) DismissNotice(id string) {
	e.Do(func() {
		n, ok := e.notices[id]
		if !ok {
			return
		}
		if n.timer != nil {
			n.timer.Stop()
		}
		delete(e.notices, id)
		e.emit(SliceNotify)
	})
}

// invalidateNoticesExcept drops every request-bound notice whose request is
// no longer the given current one. Called at each point the pending
// checkpoint changes. Unbound notices survive.
func (e *Engine) invalidateNoticesExcept(currentRequestID string) {
	changed := false
	for id, n := range e.notices {
		if n.RequestID == "" || n.RequestID == currentRequestID {
			continue
		}
		if n.timer != nil {
			n.timer.Stop()
		}
		delete(e.notices, id)
		changed = true
	}
	if changed {
		e.emit(SliceNotify)
	}
}

// Notices returns the live notices ordered by id. Engine-loop only.
func (e *Engine) Notices() []*Notice {
	out := make([]*Notice, 0, len(e.notices))
	for _, id := range slices.Sorted(maps.Keys(e.notices)) {
		out = append(out, e.notices[id])
	}
	return out
}
