package service

import (
	"context"
	"log"

	"shop-agent-be/internal/constant"
	"shop-agent-be/internal/dto"
	"shop-agent-be/pkg/agent"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	graph      *agent.Graph
	shopDomain string
}

func NewChatService(graph *agent.Graph, shopDomain string) IChatService {
	return &chatService{
		graph:      graph,
		shopDomain: shopDomain,
	}
}

// Chat runs one conversation turn through the agent graph. Internal failures
// never leak to the widget: whatever went wrong, the user sees one generic
// apology and the details go to the log.
func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	shopDomain := req.ShopDomain
	if shopDomain == "" {
		shopDomain = s.shopDomain
	}
	state := agent.NewState(req.Message, req.CartId, shopDomain)

	final, err := s.graph.Invoke(ctx, state)
	if err != nil {
		log.Printf("[ERROR] Chat turn failed: %v", err)
		return &dto.ChatResponse{
			Reply:    constant.GenericChatErrorResponseV1,
			Products: []dto.ChatProduct{},
			CartId:   req.CartId,
		}, nil
	}

	reply := constant.GenericChatErrorResponseV1
	if last := final.LastMessage(); last != nil && last.Content != "" {
		reply = last.Content
	}

	products := make([]dto.ChatProduct, 0, len(final.ProductsFound))
	for _, p := range final.ProductsFound {
		products = append(products, dto.ChatProduct{
			Id:       p.Id,
			Title:    p.Title,
			Price:    p.Price,
			ImageUrl: p.ImageUrl,
			Handle:   p.Handle,
			Category: p.Category,
		})
	}

	return &dto.ChatResponse{
		Reply:    reply,
		Products: products,
		CartId:   final.CartId,
	}, nil
}
