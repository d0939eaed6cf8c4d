package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shop-agent-be/internal/constant"
	"shop-agent-be/pkg/llm"
)

// toolExecutor runs the tool the model asked for and produces the node's
// delta. It receives only the first requested call; extra calls in the same
// response are ignored.
type toolExecutor func(ctx context.Context, state *State, call llm.ToolCall) (*Update, error)

// runToolAgent is the shared loop of the two tool-backed agents: ask the
// model with exactly one tool bound, execute the first tool call if one was
// requested, otherwise pass the model's text straight through. Either way the
// turn terminates.
func runToolAgent(ctx context.Context, provider llm.LLMProvider, state *State, spec llm.ToolSpec, exec toolExecutor) (*Update, error) {
	res, err := provider.ChatWithTools(ctx, state.History(), []llm.ToolSpec{spec})
	if err != nil {
		return nil, err
	}

	if len(res.ToolCalls) == 0 || res.ToolCalls[0].Name != spec.Name {
		return &Update{
			Messages: []ChatMessage{
				{Role: constant.ChatMessageRoleModel, Content: res.Content},
			},
			NextNode: constant.NodeEnd,
		}, nil
	}

	if len(res.ToolCalls) > 1 {
		log.Printf("[WARN] Model requested %d tool calls, executing only the first", len(res.ToolCalls))
	}
	return exec(ctx, state, res.ToolCalls[0])
}

// SearchAgent answers product discovery turns with a single vector search.
type SearchAgent struct {
	llmProvider llm.LLMProvider
	searcher    ProductSearcher
}

func NewSearchAgent(llmProvider llm.LLMProvider, searcher ProductSearcher) *SearchAgent {
	return &SearchAgent{llmProvider: llmProvider, searcher: searcher}
}

func (a *SearchAgent) Node(ctx context.Context, state *State) (*Update, error) {
	return runToolAgent(ctx, a.llmProvider, state, searchToolSpec, a.execute)
}

func (a *SearchAgent) execute(ctx context.Context, state *State, call llm.ToolCall) (*Update, error) {
	query, _ := call.Args["query"].(string)
	if query == "" {
		if last := state.LastMessage(); last != nil {
			query = last.Content
		}
	}

	results, err := a.searcher.SearchProducts(ctx, state.ShopDomain, query, 5)
	if err != nil {
		// A broken index should read as "nothing found", not kill the turn.
		log.Printf("[WARN] Product search failed, degrading to empty results: %v", err)
		results = []ProductSummary{}
	}

	rendered, _ := json.Marshal(results)
	toolCall := call
	return &Update{
		Messages: []ChatMessage{
			{Role: constant.ChatMessageRoleModel, ToolCall: &toolCall},
			{Role: constant.ChatMessageRoleModel, Content: fmt.Sprintf("Found these products: %s", rendered)},
		},
		ProductsFound: results,
		NextNode:      constant.NodeEnd,
	}, nil
}

// CartAgent turns purchase intent into a cart with a checkout link.
type CartAgent struct {
	llmProvider llm.LLMProvider
	cart        CartClient
}

func NewCartAgent(llmProvider llm.LLMProvider, cart CartClient) *CartAgent {
	return &CartAgent{llmProvider: llmProvider, cart: cart}
}

func (a *CartAgent) Node(ctx context.Context, state *State) (*Update, error) {
	return runToolAgent(ctx, a.llmProvider, state, cartToolSpec, a.execute)
}

func (a *CartAgent) execute(ctx context.Context, state *State, call llm.ToolCall) (*Update, error) {
	productId, _ := call.Args["product_id"].(string)
	if productId == "" {
		return nil, fmt.Errorf("cart tool called without product_id")
	}

	quantity := 1
	if raw, ok := call.Args["quantity"].(float64); ok && raw > 0 {
		quantity = int(raw)
	}

	checkoutUrl, err := a.cart.AddToCart(ctx, productId, quantity)
	if err != nil {
		return nil, fmt.Errorf("cart creation failed: %w", err)
	}

	toolCall := call
	return &Update{
		Messages: []ChatMessage{
			{Role: constant.ChatMessageRoleModel, ToolCall: &toolCall},
			{Role: constant.ChatMessageRoleModel, Content: fmt.Sprintf("Added to cart. Checkout here: %s", checkoutUrl)},
		},
		NextNode: constant.NodeEnd,
	}, nil
}

// GeneralChatAgent handles small talk with a plain completion, no tools.
type GeneralChatAgent struct {
	llmProvider llm.LLMProvider
}

func NewGeneralChatAgent(llmProvider llm.LLMProvider) *GeneralChatAgent {
	return &GeneralChatAgent{llmProvider: llmProvider}
}

func (a *GeneralChatAgent) Node(ctx context.Context, state *State) (*Update, error) {
	reply, err := a.llmProvider.Chat(ctx, state.History())
	if err != nil {
		return nil, fmt.Errorf("general chat failed: %w", err)
	}

	return &Update{
		Messages: []ChatMessage{
			{Role: constant.ChatMessageRoleModel, Content: reply},
		},
		NextNode: constant.NodeEnd,
	}, nil
}
