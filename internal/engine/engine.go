// Package engine runs the client session: one goroutine serially consuming
// transport events and marshalled user actions. Every state transition runs
// to completion on the loop; no component ever observes a partially-applied
// snapshot or a half-updated coordinator. Shared state is protected by
// serial processing, not locks.
package engine

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/taskhelm/internal/contextflow"
	"github.com/alfredjeanlab/taskhelm/internal/events"
	"github.com/alfredjeanlab/taskhelm/internal/filter"
	"github.com/alfredjeanlab/taskhelm/internal/graph"
	"github.com/alfredjeanlab/taskhelm/internal/hitl"
	"github.com/alfredjeanlab/taskhelm/internal/ingest"
	"github.com/alfredjeanlab/taskhelm/internal/model"
	"github.com/alfredjeanlab/taskhelm/internal/selection"
)

// Slice identifies which part of session state a subscription observes.
// Consumers subscribe to the slices they care about instead of re-comparing
// the whole session on every change.
type Slice string

const (
	SliceGraph     Slice = "graph"     // node set, edges, filters, staleness
	SliceSelection Slice = "selection" // selected ids and multi-select mode
	SliceHITL      Slice = "hitl"      // coordinator state and pending request
	SliceNotify    Slice = "notify"    // transient notices
)

// Listener is invoked synchronously on the engine loop after the slice it is
// registered for changes. Listeners may read session state freely but must
// not call Call.
type Listener func()

// Engine owns the session state and the loop that mutates it.
type Engine struct {
	store  *graph.Store
	sel    *selection.Manager
	coord  *hitl.Coordinator
	ing    *ingest.Ingester
	sub    events.Subscriber
	logger *slog.Logger

	filters  model.GraphFilters
	focusID  string
	flowMode contextflow.Mode

	actions   chan func()
	done      chan struct{}
	listeners map[Slice][]Listener
	notices   map[string]*Notice
}

// New assembles an engine over the given components. All components are
// owned by the engine loop from this point on.
func New(store *graph.Store, sel *selection.Manager, coord *hitl.Coordinator, ing *ingest.Ingester, sub events.Subscriber, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:     store,
		sel:       sel,
		coord:     coord,
		ing:       ing,
		sub:       sub,
		logger:    logger,
		flowMode:  contextflow.ModeNone,
		actions:   make(chan func(), 64),
		done:      make(chan struct{}),
		listeners: map[Slice][]Listener{},
		notices:   map[string]*Notice{},
	}
}

// Subscribe registers a listener for a state slice. Registration must happen
// before Run starts.
func (e *Engine) Subscribe(s Slice, fn Listener) {
	e.listeners[s] = append(e.listeners[s], fn)
}

func (e *Engine) emit(s Slice) {
	for _, fn := range e.listeners[s] {
		fn()
	}
}

// Run subscribes to the transport and processes events strictly in arrival
// order until ctx is cancelled or the transport channel closes. Run returns
// once the loop has drained; it must be called exactly once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	ch, cancel, err := e.sub.Subscribe(events.TopicAll)
	if err != nil {
		return err
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-e.actions:
			fn()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			e.handleMessage(msg)
		}
	}
}

func (e *Engine) handleMessage(msg events.Message) {
	switch msg.Topic {
	case events.TopicGraphSnapshot:
		applied, err := e.ing.HandleRaw(msg)
		if err != nil {
			e.logger.Warn("dropping malformed snapshot", "error", err)
			return
		}
		if applied {
			e.emit(SliceGraph)
		}

	case events.TopicHITLRequest:
		// Adoption, not id change, decides the emit: a re-delivery of the
		// current request id resets the operator's pending choice and
		// listeners must re-render.
		adopted, err := e.ing.HandleRaw(msg)
		if err != nil {
			e.logger.Warn("dropping malformed hitl event", "error", err)
			return
		}
		if adopted {
			e.invalidateNoticesExcept(e.currentRequestID())
			e.emit(SliceHITL)
		}

	default:
		e.logger.Debug("ignoring event on unknown topic", "topic", msg.Topic)
	}
}

func (e *Engine) currentRequestID() string {
	if cur := e.coord.Current(); cur != nil {
		return cur.RequestID
	}
	return ""
}

// Do schedules fn on the engine loop and returns immediately. After Run has
// exited the action is dropped.
func (e *Engine) Do(fn func()) {
	select {
	case e.actions <- fn:
	case <-e.done:
	}
}

// Call runs fn on the engine loop and waits for its result. It must not be
// called from a listener or another action already on the loop.
func (e *Engine) Call(fn func() error) error {
	errc := make(chan error, 1)
	select {
	case e.actions <- func() { errc <- fn() }:
	case <-e.done:
		return context.Canceled
	}
	select {
	case err := <-errc:
		return err
	case <-e.done:
		return context.Canceled
	}
}

// --- User actions: selection ---

// ToggleSelect handles a click on a node.
func (e *Engine) ToggleSelect(nodeID string, multiSelect bool) {
	e.Do(func() {
		e.sel.Toggle(nodeID, multiSelect)
		e.emit(SliceSelection)
	})
}

// SelectAllVisible selects every node passing the current filters. Hidden
// nodes are never selected.
func (e *Engine) SelectAllVisible() {
	e.Do(func() {
		e.sel.SelectAll(e.visibleIDs())
		e.emit(SliceSelection)
	})
}

// InvertVisible flips the selection state of every currently visible node.
func (e *Engine) InvertVisible() {
	e.Do(func() {
		e.sel.Invert(e.visibleIDs())
		e.emit(SliceSelection)
	})
}

// ClearSelection deselects everything.
func (e *Engine) ClearSelection() {
	e.Do(func() {
		e.sel.Clear()
		e.emit(SliceSelection)
	})
}

// SetMultiSelectMode forces the selection mode.
func (e *Engine) SetMultiSelectMode(on bool) {
	e.Do(func() {
		e.sel.SetMultiSelectMode(on)
		e.emit(SliceSelection)
	})
}

// --- User actions: filters and context flow ---

// SetFilters replaces the active filter configuration.
func (e *Engine) SetFilters(f model.GraphFilters) {
	e.Do(func() {
		e.filters = f
		e.emit(SliceGraph)
	})
}

// SetFlowMode switches the highlighting mode.
func (e *Engine) SetFlowMode(mode contextflow.Mode) {
	e.Do(func() {
		e.flowMode = mode
		e.emit(SliceGraph)
	})
}

// SetFocus sets or clears the explicit focus node.
func (e *Engine) SetFocus(nodeID string) {
	e.Do(func() {
		e.focusID = nodeID
		e.emit(SliceGraph)
	})
}

// --- User actions: HITL ---

// SubmitResponse dispatches the operator's decision for the pending
// checkpoint. The loop suspends at the transport boundary until the dispatch
// resolves; failures surface to the caller with the coordinator rolled back.
func (e *Engine) SubmitResponse(ctx context.Context, action model.HITLAction, instructions string) error {
	return e.Call(func() error {
		err := e.coord.SubmitResponse(ctx, action, instructions)
		e.invalidateNoticesExcept(e.currentRequestID())
		e.emit(SliceHITL)
		return err
	})
}

// CloseCheckpoint dismisses the checkpoint UI, if the coordinator permits.
func (e *Engine) CloseCheckpoint() error {
	return e.Call(func() error {
		err := e.coord.Close()
		if err == nil {
			e.invalidateNoticesExcept("")
			e.emit(SliceHITL)
		}
		return err
	})
}

// OnReconnect flags the snapshot as possibly stale until the next one
// arrives. Wire it as the transport's reconnect handler.
func (e *Engine) OnReconnect() {
	e.Do(func() {
		e.store.MarkStale()
		e.emit(SliceGraph)
	})
}

// --- Derived reads (engine-loop only) ---

// VisibleNodes derives the visible subset from the current node set,
// filters, and selection.
func (e *Engine) VisibleNodes() map[string]*model.TaskNode {
	return filter.VisibleNodes(e.store.Nodes(), e.filters, e.sel.Set())
}

func (e *Engine) visibleIDs() []string {
	visible := e.VisibleNodes()
	ids := make([]string, 0, len(visible))
	for id := range visible {
		ids = append(ids, id)
	}
	return ids
}

// Overlay derives the context-flow overlay for the current focus and mode.
// With no explicit focus, the sole selected node is adopted as focus.
func (e *Engine) Overlay() contextflow.Overlay {
	focus := contextflow.AdoptFocus(e.focusID, e.sel.Single)
	return contextflow.ComputeOverlay(e.store.Nodes(), e.store.Edges(), focus, e.flowMode)
}

// Filters returns the active filter configuration.
func (e *Engine) Filters() model.GraphFilters {
	return e.filters
}

// FlowMode returns the active highlighting mode.
func (e *Engine) FlowMode() contextflow.Mode {
	return e.flowMode
}

// Store exposes the node store for listeners.
func (e *Engine) Store() *graph.Store {
	return e.store
}

// Selection exposes the selection manager for listeners.
func (e *Engine) Selection() *selection.Manager {
	return e.sel
}

// Coordinator exposes the HITL coordinator for listeners.
func (e *Engine) Coordinator() *hitl.Coordinator {
	return e.coord
}
