package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"shop-agent-be/internal/constant"
	"shop-agent-be/pkg/llm"
)

// Classify maps the classifier's free-form answer to a node name. Matching is
// case-insensitive and substring based, so "Search_Agent" and "I think the
// search agent fits" both land on the search node. Search wins over cart when
// both words appear.
func Classify(route string) string {
	route = strings.ToLower(strings.TrimSpace(route))
	if strings.Contains(route, "search") {
		return constant.NodeSearchAgent
	}
	if strings.Contains(route, "cart") {
		return constant.NodeCartAgent
	}
	return constant.NodeGeneralChat
}

// Supervisor routes an incoming turn to one specialized agent. It looks at the
// latest user message only, never the full history.
type Supervisor struct {
	llmProvider llm.LLMProvider
}

func NewSupervisor(llmProvider llm.LLMProvider) *Supervisor {
	return &Supervisor{llmProvider: llmProvider}
}

func (s *Supervisor) Node(ctx context.Context, state *State) (*Update, error) {
	last := state.LastMessage()
	if last == nil {
		return nil, fmt.Errorf("supervisor invoked with empty conversation")
	}

	prompt := fmt.Sprintf("%s\n\nUser message: %s", constant.SupervisorSystemPromptV1, last.Content)
	route, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("supervisor classification failed: %w", err)
	}

	next := Classify(route)
	log.Printf("[INFO] Supervisor routed turn to %s (raw answer %q)", next, strings.TrimSpace(route))
	return &Update{NextNode: next}, nil
}
