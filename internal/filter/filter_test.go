package filter

import (
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

func testNodes() map[string]*model.TaskNode {
	return map[string]*model.TaskNode{
		"n1": {TaskID: "n1", Goal: "gather requirements", TaskType: "research", NodeType: model.NodePlan, Layer: 0, Status: model.StatusDone, AgentName: "scout"},
		"n2": {TaskID: "n2", Goal: "write report", TaskType: "write", NodeType: model.NodeExecute, Layer: 1, ParentNodeID: "n1", Status: model.StatusRunning, AgentName: "author"},
		"n3": {TaskID: "n3", Goal: "review draft", TaskType: "review", NodeType: model.NodeExecute, Layer: 1, ParentNodeID: "n1", Status: model.StatusFailed, AgentName: "critic"},
	}
}

func visibleIDs(m map[string]*model.TaskNode) []string {
	return slices.Sorted(maps.Keys(m))
}

func TestVisibleNodes_StatusFilter(t *testing.T) {
	nodes := testNodes()
	for _, tc := range []struct {
		name    string
		filters model.GraphFilters
		want    []string
	}{
		{"no filters", model.GraphFilters{}, []string{"n1", "n2", "n3"}},
		{"done only", model.GraphFilters{Statuses: []model.Status{model.StatusDone}}, []string{"n1"}},
		{"no match", model.GraphFilters{Statuses: []model.Status{model.StatusCancelled}}, nil},
		{"by layer", model.GraphFilters{Layers: []int{1}}, []string{"n2", "n3"}},
		{"by node type", model.GraphFilters{NodeTypes: []model.NodeType{model.NodePlan}}, []string{"n1"}},
		{"by agent", model.GraphFilters{AgentNames: []string{"author"}}, []string{"n2"}},
		{"and across criteria", model.GraphFilters{Layers: []int{1}, Statuses: []model.Status{model.StatusRunning}}, []string{"n2"}},
		{"search on goal", model.GraphFilters{SearchTerm: "REPORT"}, []string{"n2"}},
		{"search on agent", model.GraphFilters{SearchTerm: "critic"}, []string{"n3"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := visibleIDs(VisibleNodes(nodes, tc.filters, nil))
			if !slices.Equal(got, tc.want) {
				t.Errorf("VisibleNodes = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVisibleNodes_Idempotent(t *testing.T) {
	nodes := testNodes()
	f := model.GraphFilters{Statuses: []model.Status{model.StatusDone, model.StatusRunning}, SearchTerm: "r"}
	first := visibleIDs(VisibleNodes(nodes, f, nil))
	second := visibleIDs(VisibleNodes(VisibleNodes(nodes, f, nil), f, nil))
	if !slices.Equal(first, second) {
		t.Errorf("filtering twice changed the result: %v vs %v", first, second)
	}
}

// A search term spanning two adjacent fields must not match: fields are
// joined with a separator, not naively concatenated.
func TestVisibleNodes_NoCrossFieldBleed(t *testing.T) {
	nodes := map[string]*model.TaskNode{
		"n1": {TaskID: "n1", Goal: "alpha", OutputSummary: "beta", Status: model.StatusDone},
	}
	if got := VisibleNodes(nodes, model.GraphFilters{SearchTerm: "alphabeta"}, nil); len(got) != 0 {
		t.Errorf("term spanning goal+summary matched %d nodes, want 0", len(got))
	}
	if got := VisibleNodes(nodes, model.GraphFilters{SearchTerm: "beta"}, nil); len(got) != 1 {
		t.Errorf("term within one field matched %d nodes, want 1", len(got))
	}
}

func TestVisibleNodes_SearchesSerializedResult(t *testing.T) {
	nodes := map[string]*model.TaskNode{
		"n1": {TaskID: "n1", Goal: "x", Status: model.StatusDone, FullResult: json.RawMessage(`{"artifact":"summary.pdf"}`)},
	}
	if got := VisibleNodes(nodes, model.GraphFilters{SearchTerm: "summary.pdf"}, nil); len(got) != 1 {
		t.Errorf("search over full_result matched %d nodes, want 1", len(got))
	}
}

func TestVisibleNodes_ShowOnlySelected(t *testing.T) {
	nodes := testNodes()
	selected := map[string]struct{}{"n2": {}}
	got := visibleIDs(VisibleNodes(nodes, model.GraphFilters{ShowOnlySelected: true}, selected))
	if !slices.Equal(got, []string{"n2"}) {
		t.Errorf("VisibleNodes = %v, want [n2]", got)
	}
	// With no selection, nothing is visible.
	if got := VisibleNodes(nodes, model.GraphFilters{ShowOnlySelected: true}, nil); len(got) != 0 {
		t.Errorf("got %d visible nodes with empty selection, want 0", len(got))
	}
}

func TestAvailable(t *testing.T) {
	nodes := testNodes()
	nodes["n4"] = &model.TaskNode{TaskID: "n4", Goal: "dup", TaskType: "write", NodeType: model.NodeExecute, Layer: 10, Status: model.StatusRunning}

	av := Available(nodes)
	if want := []model.Status{model.StatusDone, model.StatusFailed, model.StatusRunning}; !slices.Equal(av.Statuses, want) {
		t.Errorf("Statuses = %v, want %v", av.Statuses, want)
	}
	if want := []string{"research", "review", "write"}; !slices.Equal(av.TaskTypes, want) {
		t.Errorf("TaskTypes = %v, want %v", av.TaskTypes, want)
	}
	if want := []int{0, 1, 10}; !slices.Equal(av.Layers, want) {
		t.Errorf("Layers = %v, want %v (numeric sort)", av.Layers, want)
	}
	if want := []model.NodeType{model.NodeExecute, model.NodePlan}; !slices.Equal(av.NodeTypes, want) {
		t.Errorf("NodeTypes = %v, want %v", av.NodeTypes, want)
	}
	if want := []string{"author", "critic", "scout"}; !slices.Equal(av.AgentNames, want) {
		t.Errorf("AgentNames = %v, want %v", av.AgentNames, want)
	}
}

func TestAvailable_Empty(t *testing.T) {
	av := Available(nil)
	if len(av.Statuses) != 0 || len(av.Layers) != 0 {
		t.Errorf("Available(nil) = %+v, want empty vocabularies", av)
	}
}
