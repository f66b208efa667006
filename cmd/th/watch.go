package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alfredjeanlab/taskhelm/internal/config"
	"github.com/alfredjeanlab/taskhelm/internal/engine"
	"github.com/alfredjeanlab/taskhelm/internal/events"
	"github.com/alfredjeanlab/taskhelm/internal/filter"
	"github.com/alfredjeanlab/taskhelm/internal/graph"
	"github.com/alfredjeanlab/taskhelm/internal/hitl"
	"github.com/alfredjeanlab/taskhelm/internal/ingest"
	"github.com/alfredjeanlab/taskhelm/internal/model"
	"github.com/alfredjeanlab/taskhelm/internal/selection"
	"github.com/alfredjeanlab/taskhelm/internal/ui"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live task graph updates and checkpoint prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.NATSURL == "" {
			return fmt.Errorf("HELM_NATS_URL is not set; watch needs a live event stream")
		}

		viewName, _ := cmd.Flags().GetString("view")
		verbose, _ := cmd.Flags().GetBool("verbose")

		inline := ViewFilter{}
		inline.Statuses, _ = cmd.Flags().GetStringSlice("status")
		inline.TaskTypes, _ = cmd.Flags().GetStringSlice("task-type")
		inline.NodeTypes, _ = cmd.Flags().GetStringSlice("node-type")
		inline.Layers, _ = cmd.Flags().GetIntSlice("layer")
		inline.AgentNames, _ = cmd.Flags().GetStringSlice("agent")
		inline.Search, _ = cmd.Flags().GetString("search")

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		eng, cleanup, err := buildEngine(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		vf := inline
		if viewName != "" {
			viewsCfg, err := loadViewsConfig()
			if err != nil {
				return err
			}
			preset, ok := viewsCfg.Views[viewName]
			if !ok {
				return fmt.Errorf("no view named %q", viewName)
			}
			vf = mergeViewFilters(preset, inline)
		}
		filters, err := vf.Filters()
		if err != nil {
			return err
		}
		eng.SetFilters(filters)

		// Listeners run on the engine loop, so reading engine state
		// directly here is safe.
		eng.Subscribe(engine.SliceGraph, func() {
			store := eng.Store()
			if goal := store.ProjectGoal(); goal != "" {
				fmt.Println(ui.RenderAccent(goal))
			}
			visible := eng.VisibleNodes()
			printNodeTable(visible, store.Stats())
			if len(visible) == 0 && store.Len() > 0 {
				printAvailableValues(filter.Available(store.Nodes()))
			}
		})
		eng.Subscribe(engine.SliceHITL, func() {
			coord := eng.Coordinator()
			req := coord.Current()
			if req == nil {
				return
			}
			printHITLPrompt(req, coord.Review())
			eng.PostNotice("checkpoint awaiting response: "+req.CheckpointName, req.RequestID, cfg.NotifyTTL)
		})
		eng.Subscribe(engine.SliceNotify, func() {
			for _, n := range eng.Notices() {
				fmt.Println(ui.RenderMuted("• " + n.Text))
			}
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		go runConsole(ctx, eng, os.Stdin, os.Stdout)

		return eng.Run(ctx)
	},
}

// runConsole reads operator commands from in and drives the coordinator
// through the running engine, printing one result line per command.
func runConsole(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fmt.Fprintln(out, execConsole(ctx, eng, line))
	}
}

// execConsole executes one console command against the pending checkpoint
// and returns the rendered result. A failed dispatch leaves the checkpoint
// answerable: the coordinator rolls back and the command can be retried.
func execConsole(ctx context.Context, eng *engine.Engine, line string) string {
	verb, rest, _ := strings.Cut(line, " ")
	switch verb {
	case "approve", "abort":
		if err := eng.SubmitResponse(ctx, model.HITLAction(verb), ""); err != nil {
			return ui.RenderError("response not delivered: " + err.Error())
		}
		return ui.RenderAccent("sent " + verb)
	case "modify":
		if err := eng.SubmitResponse(ctx, model.ActionModify, strings.TrimSpace(rest)); err != nil {
			return ui.RenderError("response not delivered: " + err.Error())
		}
		return ui.RenderAccent("sent modify, awaiting the revised plan")
	case "close":
		if err := eng.CloseCheckpoint(); err != nil {
			return ui.RenderError(err.Error())
		}
		return ui.RenderMuted("checkpoint dismissed")
	default:
		return ui.RenderMuted("commands: approve | modify <instructions> | abort | close")
	}
}

// buildEngine wires the NATS subscriber, store, selection, coordinator, and
// ingester into a ready-to-run engine. The returned cleanup closes the
// subscriber.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, func(), error) {
	store := graph.NewStore()
	sel := selection.New()
	coord := hitl.New(ctl, logger)
	ing := ingest.New(store, coord, logger)

	var eng *engine.Engine
	sub, err := events.NewNATSSubscriber(cfg.NATSURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			if eng != nil {
				eng.OnReconnect()
			}
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	eng = engine.New(store, sel, coord, ing, sub, logger)
	cleanup := func() { sub.Close() }
	return eng, cleanup, nil
}

func init() {
	watchCmd.Flags().String("view", "", "apply a saved filter preset")
	watchCmd.Flags().StringSlice("status", nil, "status filter (repeatable)")
	watchCmd.Flags().StringSlice("task-type", nil, "task type filter (repeatable)")
	watchCmd.Flags().StringSlice("node-type", nil, "node type filter: plan or execute")
	watchCmd.Flags().IntSlice("layer", nil, "layer filter (repeatable)")
	watchCmd.Flags().StringSlice("agent", nil, "agent name filter (repeatable)")
	watchCmd.Flags().String("search", "", "free-text search term")
	watchCmd.Flags().Bool("verbose", false, "log ingestion details to stderr")
}
