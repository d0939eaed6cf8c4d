package agent

import (
	"context"
	"fmt"
	"log"

	"shop-agent-be/internal/constant"
)

// NodeFunc is one step of the conversation machine.
type NodeFunc func(ctx context.Context, state *State) (*Update, error)

// maxSteps guards against a node that forgets to terminate. Routing is single
// hop (supervisor then one agent) so two steps is the expected path.
const maxSteps = 4

// Graph dispatches a single conversation turn through the supervisor and the
// agent it picks.
type Graph struct {
	entry string
	nodes map[string]NodeFunc
}

func NewGraph(supervisor *Supervisor, search *SearchAgent, cart *CartAgent, chat *GeneralChatAgent) *Graph {
	return &Graph{
		entry: constant.NodeSupervisor,
		nodes: map[string]NodeFunc{
			constant.NodeSupervisor:  supervisor.Node,
			constant.NodeSearchAgent: search.Node,
			constant.NodeCartAgent:   cart.Node,
			constant.NodeGeneralChat: chat.Node,
		},
	}
}

// Invoke runs the machine to completion for one turn and returns the final
// state. The input state is consumed, not shared.
func (g *Graph) Invoke(ctx context.Context, state State) (State, error) {
	current := g.entry
	for steps := 0; current != constant.NodeEnd; steps++ {
		if steps >= maxSteps {
			return state, fmt.Errorf("conversation routing did not terminate after %d steps", maxSteps)
		}

		node, ok := g.nodes[current]
		if !ok {
			return state, fmt.Errorf("unknown conversation node %q", current)
		}

		update, err := node(ctx, &state)
		if err != nil {
			log.Printf("[ERROR] Conversation node %s failed: %v", current, err)
			return state, fmt.Errorf("node %s: %w", current, err)
		}

		state.Apply(update)
		current = state.NextNode
	}
	return state, nil
}
