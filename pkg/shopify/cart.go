package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const cartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

// CartClient talks to the Storefront API, which owns cart creation. The Admin
// token used for catalog sync has no access to carts.
type CartClient struct {
	baseURL         string
	storefrontToken string
	httpClient      *http.Client
}

func NewCartClient(shopUrl, storefrontToken, apiVersion string) *CartClient {
	shopUrl = strings.TrimSuffix(strings.TrimSpace(shopUrl), "/")
	shopUrl = strings.TrimPrefix(shopUrl, "https://")
	shopUrl = strings.TrimPrefix(shopUrl, "http://")

	return &CartClient{
		baseURL:         fmt.Sprintf("https://%s/api/%s/graphql.json", shopUrl, apiVersion),
		storefrontToken: storefrontToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type cartCreateResponse struct {
	Data struct {
		CartCreate struct {
			Cart struct {
				Id          string `json:"id"`
				CheckoutUrl string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"cartCreate"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// AddToCart creates a cart with the given variant and returns the checkout
// URL. Quantity defaults to 1 when the caller passes zero or less.
func (c *CartClient) AddToCart(ctx context.Context, productId string, quantity int) (string, error) {
	if quantity <= 0 {
		quantity = 1
	}

	payload, err := json.Marshal(graphQLRequest{
		Query: cartCreateMutation,
		Variables: map[string]interface{}{
			"input": map[string]interface{}{
				"lines": []map[string]interface{}{
					{
						"merchandiseId": productId,
						"quantity":      quantity,
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal cart mutation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.storefrontToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cart request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cart error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result cartCreateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal cart response: %w", err)
	}

	if len(result.Errors) > 0 {
		return "", fmt.Errorf("cart graphql error: %s", result.Errors[0].Message)
	}
	if userErrors := result.Data.CartCreate.UserErrors; len(userErrors) > 0 {
		return "", fmt.Errorf("cart rejected: %s", userErrors[0].Message)
	}

	return result.Data.CartCreate.Cart.CheckoutUrl, nil
}
