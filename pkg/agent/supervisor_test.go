package agent

import (
	"context"
	"testing"

	"shop-agent-be/internal/constant"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		route string
		want  string
	}{
		{
			name:  "exact search answer",
			route: "search_agent",
			want:  constant.NodeSearchAgent,
		},
		{
			name:  "mixed case",
			route: "Search_Agent",
			want:  constant.NodeSearchAgent,
		},
		{
			name:  "search buried in prose",
			route: "I think the search agent should handle this",
			want:  constant.NodeSearchAgent,
		},
		{
			name:  "cart answer",
			route: "cart_agent",
			want:  constant.NodeCartAgent,
		},
		{
			name:  "cart in prose",
			route: "please add to CART",
			want:  constant.NodeCartAgent,
		},
		{
			name:  "search wins over cart",
			route: "search the cart",
			want:  constant.NodeSearchAgent,
		},
		{
			name:  "anything else falls through to chat",
			route: "hello!",
			want:  constant.NodeGeneralChat,
		},
		{
			name:  "empty answer",
			route: "",
			want:  constant.NodeGeneralChat,
		},
		{
			name:  "whitespace padded",
			route: "  cart_agent\n",
			want:  constant.NodeCartAgent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.route); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestSupervisorRoutesLastMessageOnly(t *testing.T) {
	provider := &fakeLLM{generateReply: "search_agent"}
	supervisor := NewSupervisor(provider)

	state := NewState("show me shoes", "", "shop.test")
	update, err := supervisor.Node(context.Background(), &state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if update.NextNode != constant.NodeSearchAgent {
		t.Errorf("expected route to search agent, got %q", update.NextNode)
	}
	if len(update.Messages) != 0 {
		t.Errorf("supervisor must not add messages, added %d", len(update.Messages))
	}
	if len(provider.generatePrompts) != 1 {
		t.Fatalf("expected one classification call, got %d", len(provider.generatePrompts))
	}
}

func TestSupervisorEmptyConversation(t *testing.T) {
	supervisor := NewSupervisor(&fakeLLM{generateReply: "search_agent"})

	state := State{}
	if _, err := supervisor.Node(context.Background(), &state); err == nil {
		t.Fatal("expected error for empty conversation")
	}
}
