package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"shop-agent-be/pkg/shopify"
)

// PriceUnknown is the sentinel used when a product has no variant to price.
const PriceUnknown = "N/A"

var htmlTagPattern = regexp.MustCompile("<.*?>")

// CleanHTML strips markup from a product description, leaving plain text.
func CleanHTML(raw string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(raw, ""))
}

// RepresentativePrice picks the price shown to the user: the first variant's
// price, or PriceUnknown for a product with no variants.
func RepresentativePrice(p *shopify.Product) string {
	if len(p.Variants) == 0 || p.Variants[0].Price == "" {
		return PriceUnknown
	}
	return p.Variants[0].Price
}

// BuildContext renders the text that gets embedded for a product. Category
// leads so that type-level queries ("show me shirts") rank well.
func BuildContext(p *shopify.Product) string {
	return fmt.Sprintf("Category: %s\nTitle: %s\nDescription: %s\nTags: %s\nVendor: %s\nPrice: %s",
		p.ProductType,
		p.Title,
		CleanHTML(p.DescriptionHtml),
		strings.Join(p.Tags, ", "),
		p.Vendor,
		RepresentativePrice(p),
	)
}

// BuildMetadata shapes the per-product payload stored alongside the vector.
func BuildMetadata(p *shopify.Product) map[string]interface{} {
	variantId := ""
	if len(p.Variants) > 0 {
		variantId = p.Variants[0].Id
	}

	return map[string]interface{}{
		"id":           p.Id,
		"variant_id":   variantId,
		"title":        p.Title,
		"handle":       p.Handle,
		"category":     p.ProductType,
		"product_type": p.ProductType,
		"vendor":       p.Vendor,
		"price":        RepresentativePrice(p),
		"image_url":    p.ImageUrl,
	}
}

// ExtractCategories returns the distinct productType values of a catalog,
// trimmed, with empties dropped, sorted for stable output.
func ExtractCategories(products []shopify.Product) []string {
	seen := map[string]struct{}{}
	for _, p := range products {
		category := strings.TrimSpace(p.ProductType)
		if category == "" {
			continue
		}
		seen[category] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
