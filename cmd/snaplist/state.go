package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/snaplist/pkg/adapters/kv"
	"github.com/aretw0/snaplist/pkg/core"
)

var stateDiagram bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the internal state of the list and its storage",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustOpen(ctx)

		if stateDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "snaplist"
			config.SecondaryLabel = "Task List Topology"
			fmt.Println(introspection.TreeDiagram(buildTree(a), config))
			return
		}

		out := map[string]any{
			"config": cfg,
			"list":   componentState(a.list),
			"store":  componentState(a.store),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func componentState(v any) map[string]any {
	m := map[string]any{}
	if comp, ok := v.(introspection.Component); ok {
		m["type"] = comp.ComponentType()
	}
	if intro, ok := v.(introspection.Introspectable); ok {
		m["state"] = intro.State()
	}
	return m
}

type stateNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []stateNode
}

// buildTree maps component state onto the node statuses the diagram styles know.
func buildTree(a *app) stateNode {
	listState, _ := a.list.State().(core.ServiceState)

	storeNode := stateNode{
		Name:     "Store",
		Status:   "running",
		Metadata: map[string]string{"type": "container"},
	}
	if intro, ok := a.store.(introspection.Introspectable); ok {
		st, _ := intro.State().(kv.StoreState)
		storeNode.Metadata["path"] = st.Path
		storeNode.Metadata["keys"] = fmt.Sprintf("%d", st.Keys)
		if st.ReadOnly {
			storeNode.Status = "suspended"
		}
	}

	return stateNode{
		Name:   "List",
		Status: "running",
		Metadata: map[string]string{
			"type":      "process",
			"tasks":     fmt.Sprintf("%d", listState.Tasks),
			"observers": fmt.Sprintf("%d", listState.Observers),
		},
		Children: []stateNode{
			{
				Name:     "Repository",
				Status:   "running",
				Metadata: map[string]string{"type": listState.RepositoryType, "key": cfg.Key},
				Children: []stateNode{storeNode},
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().BoolVar(&stateDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}
