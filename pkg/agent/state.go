package agent

import (
	"shop-agent-be/internal/constant"
	"shop-agent-be/pkg/llm"
)

// ProductSummary is one ranked search hit, shaped for the chat widget.
type ProductSummary struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	ImageUrl string `json:"image_url"`
	Handle   string `json:"handle"`
	Category string `json:"category"`
}

// ChatMessage is one entry of the conversation log. ToolCall is set when the
// model requested a tool invocation in this message.
type ChatMessage struct {
	Role     string
	Content  string
	ToolCall *llm.ToolCall
}

// State is the shared conversation state for a single turn. Messages is an
// append-only log: nodes only ever add to it. ProductsFound holds the most
// recent search results and is overwritten, not appended. NextNode is set by
// the executing node and consumed by the graph dispatcher.
type State struct {
	Messages      []ChatMessage
	CartId        string
	ShopDomain    string
	ProductsFound []ProductSummary
	NextNode      string
}

// NewState builds the per-turn state from caller input.
func NewState(message, cartId, shopDomain string) State {
	return State{
		Messages: []ChatMessage{
			{Role: constant.ChatMessageRoleUser, Content: message},
		},
		CartId:        cartId,
		ShopDomain:    shopDomain,
		ProductsFound: []ProductSummary{},
		NextNode:      constant.NodeSupervisor,
	}
}

// Update is the delta a node contributes. The dispatcher merges it into the
// state: messages are appended, ProductsFound replaces the previous value
// when non-nil, NextNode always moves the machine.
type Update struct {
	Messages      []ChatMessage
	ProductsFound []ProductSummary
	NextNode      string
}

// Apply merges a node's delta into the state.
func (s *State) Apply(u *Update) {
	if u == nil {
		return
	}
	s.Messages = append(s.Messages, u.Messages...)
	if u.ProductsFound != nil {
		s.ProductsFound = u.ProductsFound
	}
	s.NextNode = u.NextNode
}

// LastMessage returns the most recent message, or nil for an empty log.
func (s *State) LastMessage() *ChatMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// History converts the message log into the provider-agnostic LLM format.
func (s *State) History() []llm.Message {
	history := make([]llm.Message, len(s.Messages))
	for i, msg := range s.Messages {
		content := msg.Content
		if content == "" && msg.ToolCall != nil {
			content = "Requested tool: " + msg.ToolCall.Name
		}
		history[i] = llm.Message{Role: msg.Role, Content: content}
	}
	return history
}
