package agent

import (
	"context"

	"shop-agent-be/pkg/llm"
)

// ProductSearcher is the read side of the vector index as the agents see it.
// An empty shopDomain means the implementation's default shop.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, shopDomain, query string, limit int) ([]ProductSummary, error)
}

// CartClient creates carts on the commerce platform.
type CartClient interface {
	AddToCart(ctx context.Context, productId string, quantity int) (string, error)
}

var searchToolSpec = llm.ToolSpec{
	Name:        "search_products",
	Description: "Search the store catalog for products matching a natural language query. Returns matching products with title, price and id.",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "What the user is looking for, e.g. 'red running shoes'",
			},
		},
		"required": []string{"query"},
	},
}

var cartToolSpec = llm.ToolSpec{
	Name:        "add_to_cart",
	Description: "Create a cart containing the given product and return a checkout link.",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"product_id": map[string]interface{}{
				"type":        "string",
				"description": "The id of the product variant to add",
			},
			"quantity": map[string]interface{}{
				"type":        "integer",
				"description": "How many to add, defaults to 1",
			},
		},
		"required": []string{"product_id"},
	},
}
