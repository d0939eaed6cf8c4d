package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// pagedCatalog serves a fixed catalog page by page, optionally failing from a
// given page onward.
type pagedCatalog struct {
	pages    [][]string // product titles per page
	failFrom int        // 1-based page index to start failing at, 0 disables
	calls    int
}

func (pc *pagedCatalog) handler(w http.ResponseWriter, r *http.Request) {
	pc.calls++
	if pc.failFrom > 0 && pc.calls >= pc.failFrom {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"errors":[{"message":"boom"}]}`)
		return
	}

	var req graphQLRequest
	json.NewDecoder(r.Body).Decode(&req)

	pageIdx := 0
	if after, ok := req.Variables["after"].(string); ok && after != "" {
		fmt.Sscanf(after, "cursor-%d", &pageIdx)
	}

	var page productsResponse
	for i, title := range pc.pages[pageIdx] {
		node := productNode{Id: fmt.Sprintf("gid://shopify/Product/%d-%d", pageIdx, i), Title: title}
		page.Data.Products.Edges = append(page.Data.Products.Edges, struct {
			Cursor string      `json:"cursor"`
			Node   productNode `json:"node"`
		}{Cursor: fmt.Sprintf("cursor-%d", pageIdx+1), Node: node})
	}
	page.Data.Products.PageInfo.HasNextPage = pageIdx+1 < len(pc.pages)

	json.NewEncoder(w).Encode(page)
}

func newTestClient(serverURL string) *Client {
	c := NewClient("test-shop.myshopify.com", "token", "2024-01")
	c.baseURL = serverURL
	return c
}

func TestFetchAllProductsPaginates(t *testing.T) {
	catalog := &pagedCatalog{
		pages: [][]string{
			{"Shirt", "Shoes"},
			{"Hat"},
		},
	}
	server := httptest.NewServer(http.HandlerFunc(catalog.handler))
	defer server.Close()

	client := newTestClient(server.URL)
	products, err := client.FetchAllProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(products) != 3 {
		t.Fatalf("expected 3 products across pages, got %d", len(products))
	}
	if products[2].Title != "Hat" {
		t.Errorf("page order broken, last product is %q", products[2].Title)
	}
	if catalog.calls != 2 {
		t.Errorf("expected 2 page fetches, got %d", catalog.calls)
	}
}

func TestFetchAllProductsMidPaginationFailure(t *testing.T) {
	catalog := &pagedCatalog{
		pages: [][]string{
			{"P1", "P2"},
			{"P3", "P4"},
			{"P5"},
			{"P6"},
			{"P7"},
		},
		failFrom: 3, // pages 1 and 2 succeed
	}
	server := httptest.NewServer(http.HandlerFunc(catalog.handler))
	defer server.Close()

	client := newTestClient(server.URL)
	products, err := client.FetchAllProducts(context.Background())
	if err == nil {
		t.Fatal("expected degraded error")
	}
	if !strings.Contains(err.Error(), "degraded sync") {
		t.Errorf("error should mark the sync degraded, got %v", err)
	}

	// The first two pages must survive the failure.
	if len(products) != 4 {
		t.Fatalf("expected 4 products from the successful pages, got %d", len(products))
	}
}

func TestFetchPageGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 with an errors list still fails the page.
		fmt.Fprint(w, `{"data":{"products":{"edges":[],"pageInfo":{"hasNextPage":false}}},"errors":[{"message":"throttled"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchAllProducts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("expected graphql error surfaced, got %v", err)
	}
}

func TestNewClientNormalizesShopURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://my-shop.myshopify.com/", "my-shop.myshopify.com"},
		{"my-shop.myshopify.com", "my-shop.myshopify.com"},
		{" http://my-shop.myshopify.com ", "my-shop.myshopify.com"},
	}

	for _, tt := range tests {
		if got := NewClient(tt.raw, "t", "2024-01").ShopDomain(); got != tt.want {
			t.Errorf("ShopDomain(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
