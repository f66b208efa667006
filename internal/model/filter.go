package model

// GraphFilters holds declarative criteria for deriving the visible node set.
// Empty slices and zero values impose no restriction. Two identical filter
// configurations always yield the same visible set for the same node set.
type GraphFilters struct {
	Statuses         []Status   `json:"statuses,omitempty"`
	TaskTypes        []string   `json:"task_types,omitempty"`
	NodeTypes        []NodeType `json:"node_types,omitempty"`
	Layers           []int      `json:"layers,omitempty"`
	AgentNames       []string   `json:"agent_names,omitempty"`
	SearchTerm       string     `json:"search_term,omitempty"` // case-insensitive substring over goal/summary/agent/type/result
	ShowOnlySelected bool       `json:"show_only_selected,omitempty"`
}

// IsZero reports whether no criterion is active.
func (f GraphFilters) IsZero() bool {
	return len(f.Statuses) == 0 && len(f.TaskTypes) == 0 && len(f.NodeTypes) == 0 &&
		len(f.Layers) == 0 && len(f.AgentNames) == 0 && f.SearchTerm == "" && !f.ShowOnlySelected
}
