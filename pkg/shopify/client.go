package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// pageSize is the Admin API page size for catalog pagination.
const pageSize = 50

const productsQuery = `
query fetchProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      cursor
      node {
        id
        title
        descriptionHtml
        handle
        tags
        vendor
        productType
        totalInventory
        priceRangeV2 {
          minVariantPrice {
            amount
            currencyCode
          }
        }
        images(first: 1) {
          edges {
            node {
              url
            }
          }
        }
        variants(first: 10) {
          edges {
            node {
              id
              title
              price
              sku
              availableForSale
            }
          }
        }
      }
    }
    pageInfo {
      hasNextPage
    }
  }
}`

// Client talks to the Shopify Admin GraphQL API for one shop.
type Client struct {
	shopUrl     string
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(shopUrl, accessToken, apiVersion string) *Client {
	shopUrl = strings.TrimSuffix(strings.TrimSpace(shopUrl), "/")
	shopUrl = strings.TrimPrefix(shopUrl, "https://")
	shopUrl = strings.TrimPrefix(shopUrl, "http://")

	return &Client{
		shopUrl:     shopUrl,
		accessToken: accessToken,
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopUrl, apiVersion),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ShopDomain returns the normalized shop domain, e.g. "my-store.myshopify.com".
func (c *Client) ShopDomain() string {
	return c.shopUrl
}

// FetchAllProducts walks the catalog cursor by cursor. A mid-pagination
// failure returns the products fetched so far together with a non-nil error,
// so callers can keep the partial catalog and flag the sync as degraded.
func (c *Client) FetchAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	var cursor string

	for {
		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			log.Printf("[ERROR] Shopify product fetch aborted after %d products: %v", len(products), err)
			return products, fmt.Errorf("degraded sync for %s: %w", c.shopUrl, err)
		}

		for _, edge := range page.Data.Products.Edges {
			products = append(products, edge.Node.toProduct())
			cursor = edge.Cursor
		}

		if !page.Data.Products.PageInfo.HasNextPage {
			break
		}
	}

	log.Printf("[INFO] Fetched %d products from %s", len(products), c.shopUrl)
	return products, nil
}

func (c *Client) fetchPage(ctx context.Context, after string) (*productsResponse, error) {
	variables := map[string]interface{}{
		"first": pageSize,
	}
	if after != "" {
		variables["after"] = after
	}

	payload, err := json.Marshal(graphQLRequest{
		Query:     productsQuery,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal products query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var page productsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("unmarshal products response: %w", err)
	}

	if len(page.Errors) > 0 {
		return nil, fmt.Errorf("shopify graphql error: %s", page.Errors[0].Message)
	}

	return &page, nil
}
