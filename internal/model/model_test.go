package model

import (
	"encoding/json"
	"testing"
)

func TestStatus_IsValid(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusReady, true},
		{StatusRunning, true},
		{StatusPlanDone, true},
		{StatusAggregating, true},
		{StatusDone, true},
		{StatusFailed, true},
		{StatusNeedsReplan, true},
		{StatusCancelled, true},
		{Status(""), false},
		{Status("bogus"), false},
	} {
		if got := tc.status.IsValid(); got != tc.want {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, tc := range []struct {
		status Status
		want   bool
	}{
		{StatusDone, true},
		{StatusFailed, true},
		{StatusCancelled, true},
		{StatusRunning, false},
		{StatusPending, false},
		{StatusNeedsReplan, false},
	} {
		if got := tc.status.IsTerminal(); got != tc.want {
			t.Errorf("Status(%q).IsTerminal() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestNodeType_IsValid(t *testing.T) {
	for _, tc := range []struct {
		typ  NodeType
		want bool
	}{
		{NodePlan, true},
		{NodeExecute, true},
		{NodeType(""), false},
		{NodeType("plan"), false},
	} {
		if got := tc.typ.IsValid(); got != tc.want {
			t.Errorf("NodeType(%q).IsValid() = %v, want %v", tc.typ, got, tc.want)
		}
	}
}

func TestHITLAction_IsValid(t *testing.T) {
	for _, tc := range []struct {
		action HITLAction
		want   bool
	}{
		{ActionApprove, true},
		{ActionModify, true},
		{ActionAbort, true},
		{HITLAction(""), false},
		{HITLAction("retry"), false},
	} {
		if got := tc.action.IsValid(); got != tc.want {
			t.Errorf("HITLAction(%q).IsValid() = %v, want %v", tc.action, got, tc.want)
		}
	}
}

func TestGraphFilters_IsZero(t *testing.T) {
	if !(GraphFilters{}).IsZero() {
		t.Error("empty GraphFilters should be zero")
	}
	if (GraphFilters{Statuses: []Status{StatusDone}}).IsZero() {
		t.Error("GraphFilters with a status should not be zero")
	}
	if (GraphFilters{ShowOnlySelected: true}).IsZero() {
		t.Error("GraphFilters with ShowOnlySelected should not be zero")
	}
}

func TestClassifyReview(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
		want ReviewKind
	}{
		{"plan", `{"proposed_plan":[{"goal":"split the work","task_type":"research"}]}`, ReviewPlan},
		{"task", `{"task":{"task_id":"t1","goal":"do a thing","status":"RUNNING"}}`, ReviewTask},
		{"generic object", `{"note":"anything"}`, ReviewGeneric},
		{"empty plan is generic", `{"proposed_plan":[]}`, ReviewGeneric},
		{"task without id is generic", `{"task":{"goal":"x"}}`, ReviewGeneric},
		{"malformed", `{not json`, ReviewGeneric},
		{"empty", ``, ReviewGeneric},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyReview(json.RawMessage(tc.raw))
			if got.Kind != tc.want {
				t.Errorf("ClassifyReview(%s).Kind = %q, want %q", tc.raw, got.Kind, tc.want)
			}
			if string(got.Raw) != tc.raw {
				t.Errorf("ClassifyReview should preserve raw bytes, got %q", got.Raw)
			}
		})
	}
}

func TestClassifyReview_PlanContents(t *testing.T) {
	raw := json.RawMessage(`{"proposed_plan":[{"goal":"a"},{"goal":"b","task_type":"write"}]}`)
	p := ClassifyReview(raw)
	if len(p.Plan) != 2 {
		t.Fatalf("got %d proposed tasks, want 2", len(p.Plan))
	}
	if p.Plan[1].Goal != "b" || p.Plan[1].TaskType != "write" {
		t.Errorf("Plan[1] = %+v, want goal b type write", p.Plan[1])
	}
}
