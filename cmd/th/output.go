package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/alfredjeanlab/taskhelm/internal/filter"
	"github.com/alfredjeanlab/taskhelm/internal/graph"
	"github.com/alfredjeanlab/taskhelm/internal/model"
	"github.com/alfredjeanlab/taskhelm/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// printNodeTable renders the visible nodes sorted by (layer, task id).
func printNodeTable(nodes map[string]*model.TaskNode, stats graph.Stats) {
	list := make([]*model.TaskNode, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, n)
	}
	slices.SortFunc(list, func(a, b *model.TaskNode) int {
		if a.Layer != b.Layer {
			return a.Layer - b.Layer
		}
		return strings.Compare(a.TaskID, b.TaskID)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAYER\tTYPE\tSTATUS\tAGENT\tGOAL")
	for _, n := range list {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			n.TaskID, n.Layer, n.NodeType, ui.RenderStatus(n.Status), n.AgentName, truncate(n.Goal, 60))
	}
	w.Flush()
	fmt.Println(ui.RenderMuted(fmt.Sprintf("%d visible of %d total", len(list), stats.Total)))
}

// printAvailableValues hints at the filter vocabulary present in the graph
// when the active filters hide every node.
func printAvailableValues(av filter.AvailableValues) {
	var parts []string
	if len(av.Statuses) > 0 {
		parts = append(parts, fmt.Sprintf("statuses: %v", av.Statuses))
	}
	if len(av.TaskTypes) > 0 {
		parts = append(parts, fmt.Sprintf("task types: %v", av.TaskTypes))
	}
	if len(av.NodeTypes) > 0 {
		parts = append(parts, fmt.Sprintf("node types: %v", av.NodeTypes))
	}
	if len(av.Layers) > 0 {
		parts = append(parts, fmt.Sprintf("layers: %v", av.Layers))
	}
	if len(av.AgentNames) > 0 {
		parts = append(parts, fmt.Sprintf("agents: %v", av.AgentNames))
	}
	fmt.Println(ui.RenderMuted("no nodes match the active filters; present values: " + strings.Join(parts, "; ")))
}

// printHITLPrompt renders a pending checkpoint with its classified payload.
func printHITLPrompt(req *model.HITLRequest, review model.ReviewPayload) {
	fmt.Println()
	fmt.Println(ui.RenderWarn("── checkpoint: " + req.CheckpointName + " ──"))
	fmt.Printf("Request:  %s\n", req.RequestID)
	if req.NodeID != "" {
		fmt.Printf("Node:     %s\n", req.NodeID)
	}
	if req.CurrentAttempt > 0 {
		fmt.Printf("Attempt:  %d\n", req.CurrentAttempt)
	}
	if req.ContextMessage != "" {
		fmt.Printf("Context:  %s\n", req.ContextMessage)
	}

	switch review.Kind {
	case model.ReviewPlan:
		fmt.Println("Proposed plan:")
		for i, t := range review.Plan {
			line := fmt.Sprintf("  %d. [%s] %s", i+1, t.TaskType, t.Goal)
			if t.AgentName != "" {
				line += ui.RenderMuted(" (" + t.AgentName + ")")
			}
			fmt.Println(line)
		}
	case model.ReviewTask:
		fmt.Printf("Task under review: %s — %s\n", review.Task.TaskID, review.Task.Goal)
	default:
		if len(review.Raw) > 0 {
			fmt.Printf("Payload: %s\n", truncate(string(review.Raw), 200))
		}
	}

	fmt.Println(ui.RenderMuted(fmt.Sprintf("type approve | modify <instructions> | abort | close, or: th respond %s <action>", req.RequestID)))
}

// truncate shortens s to at most max bytes, cutting on a rune boundary so a
// multi-byte rune at the limit is dropped whole rather than split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
