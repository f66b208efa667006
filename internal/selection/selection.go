// Package selection tracks which task nodes the operator has selected.
//
// The Manager is a plain in-memory component driven entirely by explicit user
// actions; it is not safe for concurrent use and expects to be called from
// the engine loop only.
package selection

import (
	"maps"
	"slices"
)

// Manager holds the selected node ids and the multi-select mode flag.
// The mode is derived from the selection size except when forced on by an
// explicit user toggle.
type Manager struct {
	ids   map[string]struct{}
	multi bool
}

// New creates an empty selection.
func New() *Manager {
	return &Manager{ids: map[string]struct{}{}}
}

// Toggle handles a click on nodeID. With multiSelect false, the clicked node
// becomes the sole selection, or the selection is cleared when it was already
// the sole selection. With multiSelect true, the node's membership is
// inverted and multi-select mode tracks whether more than one node remains.
func (m *Manager) Toggle(nodeID string, multiSelect bool) {
	if !multiSelect {
		_, was := m.ids[nodeID]
		if was && len(m.ids) == 1 {
			m.Clear()
			return
		}
		m.ids = map[string]struct{}{nodeID: {}}
		m.multi = false
		return
	}
	if _, ok := m.ids[nodeID]; ok {
		delete(m.ids, nodeID)
	} else {
		m.ids[nodeID] = struct{}{}
	}
	m.multi = len(m.ids) > 1
}

// SelectAll selects exactly the given visible node ids. Selecting "all" while
// a filter is active never selects hidden nodes.
func (m *Manager) SelectAll(visible []string) {
	m.ids = make(map[string]struct{}, len(visible))
	for _, id := range visible {
		m.ids[id] = struct{}{}
	}
	m.multi = len(m.ids) > 1
}

// Invert flips the selection state of every visible node id. Selected ids
// outside the visible set are left untouched, which makes Invert its own
// inverse and makes SelectAll followed by Invert yield the empty set.
func (m *Manager) Invert(visible []string) {
	for _, id := range visible {
		if _, ok := m.ids[id]; ok {
			delete(m.ids, id)
		} else {
			m.ids[id] = struct{}{}
		}
	}
	m.multi = len(m.ids) > 1
}

// Clear empties the selection.
func (m *Manager) Clear() {
	m.ids = map[string]struct{}{}
	m.multi = false
}

// SetMultiSelectMode forces the mode. Turning it off collapses the selection
// to its first id in sorted order; the source protocol leaves the retained
// element unspecified, so sorted-first is chosen for determinism.
func (m *Manager) SetMultiSelectMode(on bool) {
	if on {
		m.multi = true
		return
	}
	m.multi = false
	if len(m.ids) <= 1 {
		return
	}
	first := slices.Min(slices.Collect(maps.Keys(m.ids)))
	m.ids = map[string]struct{}{first: {}}
}

// IsMultiSelect reports whether multi-select mode is active.
func (m *Manager) IsMultiSelect() bool {
	return m.multi
}

// Has reports whether nodeID is selected.
func (m *Manager) Has(nodeID string) bool {
	_, ok := m.ids[nodeID]
	return ok
}

// Len returns the selection size.
func (m *Manager) Len() int {
	return len(m.ids)
}

// IDs returns the selected ids in sorted order.
func (m *Manager) IDs() []string {
	return slices.Sorted(maps.Keys(m.ids))
}

// Set returns a copy of the selection as a set, suitable for passing to the
// filter engine.
func (m *Manager) Set() map[string]struct{} {
	return maps.Clone(m.ids)
}

// Single returns the selected id when exactly one node is selected.
func (m *Manager) Single() (string, bool) {
	if len(m.ids) != 1 {
		return "", false
	}
	for id := range m.ids {
		return id, true
	}
	return "", false
}
