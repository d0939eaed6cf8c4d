package shopify

// Product is the normalized catalog product as the rest of the system sees
// it, flattened from the Admin API's GraphQL shape.
type Product struct {
	Id              string
	Title           string
	DescriptionHtml string
	Handle          string
	Tags            []string
	Vendor          string
	ProductType     string
	TotalInventory  int
	MinPrice        string
	ImageUrl        string
	Variants        []Variant
}

type Variant struct {
	Id               string
	Title            string
	Price            string
	Sku              string
	AvailableForSale bool
}

// --- GraphQL wire structs ---

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type productsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Cursor string      `json:"cursor"`
				Node   productNode `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type productNode struct {
	Id              string   `json:"id"`
	Title           string   `json:"title"`
	DescriptionHtml string   `json:"descriptionHtml"`
	Handle          string   `json:"handle"`
	Tags            []string `json:"tags"`
	Vendor          string   `json:"vendor"`
	ProductType     string   `json:"productType"`
	TotalInventory  int      `json:"totalInventory"`
	PriceRangeV2    struct {
		MinVariantPrice struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"minVariantPrice"`
	} `json:"priceRangeV2"`
	Images struct {
		Edges []struct {
			Node struct {
				Url string `json:"url"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node struct {
				Id               string `json:"id"`
				Title            string `json:"title"`
				Price            string `json:"price"`
				Sku              string `json:"sku"`
				AvailableForSale bool   `json:"availableForSale"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n *productNode) toProduct() Product {
	p := Product{
		Id:              n.Id,
		Title:           n.Title,
		DescriptionHtml: n.DescriptionHtml,
		Handle:          n.Handle,
		Tags:            n.Tags,
		Vendor:          n.Vendor,
		ProductType:     n.ProductType,
		TotalInventory:  n.TotalInventory,
		MinPrice:        n.PriceRangeV2.MinVariantPrice.Amount,
	}

	if len(n.Images.Edges) > 0 {
		p.ImageUrl = n.Images.Edges[0].Node.Url
	}

	for _, edge := range n.Variants.Edges {
		p.Variants = append(p.Variants, Variant{
			Id:               edge.Node.Id,
			Title:            edge.Node.Title,
			Price:            edge.Node.Price,
			Sku:              edge.Node.Sku,
			AvailableForSale: edge.Node.AvailableForSale,
		})
	}

	return p
}
