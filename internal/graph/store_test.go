package graph

import (
	"testing"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

func TestReplaceAll_NoMerging(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(map[string]*model.TaskNode{
		"n1": {TaskID: "n1", Status: model.StatusRunning},
		"n2": {TaskID: "n2", Status: model.StatusPending},
	}, nil, "first goal")

	// Second snapshot drops n2 and adds n3; n2 must not survive.
	s.ReplaceAll(map[string]*model.TaskNode{
		"n1": {TaskID: "n1", Status: model.StatusDone},
		"n3": {TaskID: "n3", Status: model.StatusReady},
	}, nil, "second goal")

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, ok := s.Node("n2"); ok {
		t.Error("n2 from the first snapshot leaked into the second")
	}
	if n, _ := s.Node("n1"); n.Status != model.StatusDone {
		t.Errorf("n1 status = %s, want the second snapshot's value", n.Status)
	}
	if s.ProjectGoal() != "second goal" {
		t.Errorf("project goal = %q, want second goal", s.ProjectGoal())
	}
}

func TestLoaded(t *testing.T) {
	s := NewStore()
	if s.Loaded() {
		t.Error("fresh store should not be loaded")
	}
	s.ReplaceAll(nil, nil, "")
	if s.Loaded() {
		t.Error("empty snapshot must not clear the loading state")
	}
	s.ReplaceAll(map[string]*model.TaskNode{"n1": {TaskID: "n1"}}, nil, "")
	if !s.Loaded() {
		t.Error("non-empty snapshot should mark the store loaded")
	}
}

func TestStale(t *testing.T) {
	s := NewStore()
	s.MarkStale()
	if !s.Stale() {
		t.Error("MarkStale should set the flag")
	}
	s.ReplaceAll(map[string]*model.TaskNode{"n1": {TaskID: "n1"}}, nil, "")
	if s.Stale() {
		t.Error("a fresh snapshot should clear staleness")
	}
}

func TestNodes_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(map[string]*model.TaskNode{"n1": {TaskID: "n1"}}, nil, "")
	m := s.Nodes()
	delete(m, "n1")
	if s.Len() != 1 {
		t.Error("mutating the returned map must not affect the store")
	}
}

func TestStats(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(map[string]*model.TaskNode{
		"n1": {TaskID: "n1", Status: model.StatusDone},
		"n2": {TaskID: "n2", Status: model.StatusDone},
		"n3": {TaskID: "n3", Status: model.StatusFailed},
	}, nil, "")

	st := s.Stats()
	if st.Total != 3 {
		t.Errorf("Total = %d, want 3", st.Total)
	}
	if st.ByStatus[model.StatusDone] != 2 || st.ByStatus[model.StatusFailed] != 1 {
		t.Errorf("ByStatus = %v", st.ByStatus)
	}
}
