// Package filter derives the visible subset of the task graph from a
// declarative filter configuration. All functions are pure: the same node set
// and filters always produce the same visible set.
package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// searchSep joins candidate fields before substring matching so a term can
// never match across a field boundary.
const searchSep = "\x1f"

// VisibleNodes returns the nodes passing every active criterion in f.
// Criteria combine with logical AND; an empty criterion imposes no
// restriction. selected is consulted only when f.ShowOnlySelected is set.
func VisibleNodes(nodes map[string]*model.TaskNode, f model.GraphFilters, selected map[string]struct{}) map[string]*model.TaskNode {
	out := make(map[string]*model.TaskNode, len(nodes))
	term := strings.ToLower(f.SearchTerm)
	for id, n := range nodes {
		if n == nil {
			continue
		}
		if !matches(n, f, term, selected) {
			continue
		}
		out[id] = n
	}
	return out
}

func matches(n *model.TaskNode, f model.GraphFilters, term string, selected map[string]struct{}) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, n.Status) {
		return false
	}
	if len(f.TaskTypes) > 0 && !slices.Contains(f.TaskTypes, n.TaskType) {
		return false
	}
	if len(f.NodeTypes) > 0 && !slices.Contains(f.NodeTypes, n.NodeType) {
		return false
	}
	if len(f.Layers) > 0 && !slices.Contains(f.Layers, n.Layer) {
		return false
	}
	if len(f.AgentNames) > 0 && !slices.Contains(f.AgentNames, n.AgentName) {
		return false
	}
	if f.ShowOnlySelected {
		if _, ok := selected[n.TaskID]; !ok {
			return false
		}
	}
	if term != "" && !strings.Contains(searchText(n), term) {
		return false
	}
	return true
}

func searchText(n *model.TaskNode) string {
	fields := []string{n.Goal, n.OutputSummary, n.AgentName, n.TaskType}
	if len(n.FullResult) > 0 {
		fields = append(fields, string(n.FullResult))
	}
	return strings.ToLower(strings.Join(fields, searchSep))
}

// AvailableValues holds the distinct filterable values actually present in a
// node set, each sorted and de-duplicated. The UI populates filter choices
// from this instead of hardcoding a vocabulary.
type AvailableValues struct {
	Statuses   []model.Status
	TaskTypes  []string
	NodeTypes  []model.NodeType
	Layers     []int
	AgentNames []string
}

// Available computes the filter vocabulary present in nodes. Layers sort
// numerically; everything else sorts lexicographically. Empty task types and
// agent names are omitted.
func Available(nodes map[string]*model.TaskNode) AvailableValues {
	var (
		statuses  = map[model.Status]struct{}{}
		taskTypes = map[string]struct{}{}
		nodeTypes = map[model.NodeType]struct{}{}
		layers    = map[int]struct{}{}
		agents    = map[string]struct{}{}
	)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		statuses[n.Status] = struct{}{}
		nodeTypes[n.NodeType] = struct{}{}
		layers[n.Layer] = struct{}{}
		if n.TaskType != "" {
			taskTypes[n.TaskType] = struct{}{}
		}
		if n.AgentName != "" {
			agents[n.AgentName] = struct{}{}
		}
	}

	return AvailableValues{
		Statuses:   slices.Sorted(maps.Keys(statuses)),
		TaskTypes:  slices.Sorted(maps.Keys(taskTypes)),
		NodeTypes:  slices.Sorted(maps.Keys(nodeTypes)),
		Layers:     slices.Sorted(maps.Keys(layers)),
		AgentNames: slices.Sorted(maps.Keys(agents)),
	}
}
