package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alfredjeanlab/taskhelm/internal/model"
	"github.com/spf13/cobra"
)

// ViewsConfig holds all named filter presets.
type ViewsConfig struct {
	Views map[string]ViewFilter `toml:"views"`
}

// ViewFilter is a saved filter preset. String fields mirror the wire values
// of the enums they select on.
type ViewFilter struct {
	Statuses   []string `toml:"statuses,omitempty"`
	TaskTypes  []string `toml:"task_types,omitempty"`
	NodeTypes  []string `toml:"node_types,omitempty"`
	Layers     []int    `toml:"layers,omitempty"`
	AgentNames []string `toml:"agent_names,omitempty"`
	Search     string   `toml:"search,omitempty"`
}

// Filters converts the preset into engine filter criteria, validating enum
// values along the way.
func (v ViewFilter) Filters() (model.GraphFilters, error) {
	f := model.GraphFilters{
		TaskTypes:  v.TaskTypes,
		Layers:     v.Layers,
		AgentNames: v.AgentNames,
		SearchTerm: v.Search,
	}
	for _, s := range v.Statuses {
		st := model.Status(strings.ToUpper(s))
		if !st.IsValid() {
			return model.GraphFilters{}, fmt.Errorf("unknown status %q", s)
		}
		f.Statuses = append(f.Statuses, st)
	}
	for _, n := range v.NodeTypes {
		nt := model.NodeType(strings.ToUpper(n))
		if !nt.IsValid() {
			return model.GraphFilters{}, fmt.Errorf("unknown node type %q", n)
		}
		f.NodeTypes = append(f.NodeTypes, nt)
	}
	return f, nil
}

// mergeViewFilters layers inline flag criteria over a saved preset. Any
// criterion set inline replaces the preset's value for that field.
func mergeViewFilters(preset, inline ViewFilter) ViewFilter {
	out := preset
	if len(inline.Statuses) > 0 {
		out.Statuses = inline.Statuses
	}
	if len(inline.TaskTypes) > 0 {
		out.TaskTypes = inline.TaskTypes
	}
	if len(inline.NodeTypes) > 0 {
		out.NodeTypes = inline.NodeTypes
	}
	if len(inline.Layers) > 0 {
		out.Layers = inline.Layers
	}
	if len(inline.AgentNames) > 0 {
		out.AgentNames = inline.AgentNames
	}
	if inline.Search != "" {
		out.Search = inline.Search
	}
	return out
}

func viewsConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".taskhelm")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "views.toml"), nil
}

func loadViewsConfig() (ViewsConfig, error) {
	path, err := viewsConfigPath()
	if err != nil {
		return ViewsConfig{}, err
	}
	var cfg ViewsConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return ViewsConfig{Views: map[string]ViewFilter{}}, nil
		}
		return ViewsConfig{}, err
	}
	if cfg.Views == nil {
		cfg.Views = map[string]ViewFilter{}
	}
	return cfg, nil
}

func saveViewsConfig(cfg ViewsConfig) error {
	path, err := viewsConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Manage saved filter presets",
}

var viewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved views",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadViewsConfig()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(cfg.Views))
		for name := range cfg.Views {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var viewSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Save a filter preset from flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vf := ViewFilter{}
		vf.Statuses, _ = cmd.Flags().GetStringSlice("status")
		vf.TaskTypes, _ = cmd.Flags().GetStringSlice("task-type")
		vf.NodeTypes, _ = cmd.Flags().GetStringSlice("node-type")
		vf.Layers, _ = cmd.Flags().GetIntSlice("layer")
		vf.AgentNames, _ = cmd.Flags().GetStringSlice("agent")
		vf.Search, _ = cmd.Flags().GetString("search")

		// Validate before persisting so a bad preset never lands on disk.
		if _, err := vf.Filters(); err != nil {
			return err
		}

		cfg, err := loadViewsConfig()
		if err != nil {
			return err
		}
		cfg.Views[args[0]] = vf
		return saveViewsConfig(cfg)
	},
}

var viewRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a saved view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadViewsConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Views[args[0]]; !ok {
			return fmt.Errorf("no view named %q", args[0])
		}
		delete(cfg.Views, args[0])
		return saveViewsConfig(cfg)
	},
}

func init() {
	viewSetCmd.Flags().StringSlice("status", nil, "status filter (repeatable)")
	viewSetCmd.Flags().StringSlice("task-type", nil, "task type filter (repeatable)")
	viewSetCmd.Flags().StringSlice("node-type", nil, "node type filter: plan or execute")
	viewSetCmd.Flags().IntSlice("layer", nil, "layer filter (repeatable)")
	viewSetCmd.Flags().StringSlice("agent", nil, "agent name filter (repeatable)")
	viewSetCmd.Flags().String("search", "", "free-text search term")

	viewCmd.AddCommand(viewListCmd)
	viewCmd.AddCommand(viewSetCmd)
	viewCmd.AddCommand(viewRemoveCmd)
}
