// Package contextflow computes the highlight overlay showing which nodes are
// "in context" relative to a focus node. Overlays are derived on read from
// the current node set and never stored.
package contextflow

import "github.com/alfredjeanlab/taskhelm/internal/model"

// Mode selects the highlighting relationship.
type Mode string

const (
	ModeNone          Mode = "none"
	ModeDataFlow      Mode = "dataFlow"
	ModeExecutionPath Mode = "executionPath"
	ModeSubtree       Mode = "subtree"
)

// IsValid checks whether the mode is a known value.
func (m Mode) IsValid() bool {
	switch m {
	case ModeNone, ModeDataFlow, ModeExecutionPath, ModeSubtree:
		return true
	}
	return false
}

// Overlay partitions the node set into highlighted and dimmed ids. An empty
// overlay means no highlighting and no dimming.
type Overlay struct {
	Highlighted map[string]struct{}
	Dimmed      map[string]struct{}
}

// Empty reports whether the overlay highlights nothing.
func (o Overlay) Empty() bool {
	return len(o.Highlighted) == 0 && len(o.Dimmed) == 0
}

// ComputeOverlay derives the overlay for the given focus node and mode.
//
// Subtree mode highlights the focus node plus all transitive descendants
// following parent_node_id back-references. DataFlow and executionPath modes
// follow the server-annotated edges of the matching type instead, in both
// directions from the focus. Mode none, an unset focus, or a focus absent
// from the node set all yield an empty overlay.
func ComputeOverlay(nodes map[string]*model.TaskNode, edges []model.GraphEdge, focusNodeID string, mode Mode) Overlay {
	if mode == ModeNone || focusNodeID == "" {
		return Overlay{}
	}
	if _, ok := nodes[focusNodeID]; !ok {
		return Overlay{}
	}

	var highlighted map[string]struct{}
	switch mode {
	case ModeSubtree:
		highlighted = subtree(nodes, focusNodeID)
	case ModeDataFlow:
		highlighted = connected(nodes, edges, focusNodeID, model.EdgeData)
	case ModeExecutionPath:
		highlighted = connected(nodes, edges, focusNodeID, model.EdgeExecution)
	default:
		return Overlay{}
	}

	dimmed := make(map[string]struct{}, len(nodes)-len(highlighted))
	for id := range nodes {
		if _, ok := highlighted[id]; !ok {
			dimmed[id] = struct{}{}
		}
	}
	return Overlay{Highlighted: highlighted, Dimmed: dimmed}
}

// AdoptFocus resolves the effective focus node. When focusNodeID is unset and
// exactly one node is selected, that node becomes the focus; otherwise the
// focus stays as given.
func AdoptFocus(focusNodeID string, single func() (string, bool)) string {
	if focusNodeID != "" {
		return focusNodeID
	}
	if id, ok := single(); ok {
		return id
	}
	return ""
}

// subtree collects focus plus all transitive descendants via parent links.
// Dangling parent references are tolerated; a parent absent from the node
// set simply contributes no children.
func subtree(nodes map[string]*model.TaskNode, focus string) map[string]struct{} {
	children := make(map[string][]string, len(nodes))
	for id, n := range nodes {
		if n == nil || n.ParentNodeID == "" {
			continue
		}
		children[n.ParentNodeID] = append(children[n.ParentNodeID], id)
	}

	out := map[string]struct{}{focus: {}}
	queue := []string{focus}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if _, seen := out[child]; seen {
				continue
			}
			out[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return out
}

// connected collects focus plus every node reachable along edges of the
// given type, treating them as undirected for context purposes. Edges that
// reference nodes outside the set are skipped.
func connected(nodes map[string]*model.TaskNode, edges []model.GraphEdge, focus string, et model.EdgeType) map[string]struct{} {
	adj := map[string][]string{}
	for _, e := range edges {
		if e.Type != et {
			continue
		}
		if _, ok := nodes[e.Source]; !ok {
			continue
		}
		if _, ok := nodes[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	out := map[string]struct{}{focus: {}}
	queue := []string{focus}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := out[next]; seen {
				continue
			}
			out[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return out
}
