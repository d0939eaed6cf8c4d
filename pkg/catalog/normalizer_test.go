package catalog

import (
	"reflect"
	"strings"
	"testing"

	"shop-agent-be/pkg/shopify"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "nested tags",
			raw:  "<p>Hi <b>there</b></p>",
			want: "Hi there",
		},
		{
			name: "plain text untouched",
			raw:  "just text",
			want: "just text",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "attributes stripped",
			raw:  `<a href="https://x.test">link</a> rest`,
			want: "link rest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHTML(tt.raw); got != tt.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRepresentativePrice(t *testing.T) {
	withVariant := shopify.Product{
		Variants: []shopify.Variant{{Price: "19.99"}, {Price: "29.99"}},
	}
	if got := RepresentativePrice(&withVariant); got != "19.99" {
		t.Errorf("expected first variant price, got %q", got)
	}

	noVariants := shopify.Product{}
	if got := RepresentativePrice(&noVariants); got != PriceUnknown {
		t.Errorf("expected %q for product without variants, got %q", PriceUnknown, got)
	}
}

func TestBuildContextLeadsWithCategory(t *testing.T) {
	p := shopify.Product{
		Title:           "Trail Runner",
		DescriptionHtml: "<p>Grippy sole</p>",
		ProductType:     "Shoes",
		Tags:            []string{"outdoor", "running"},
		Vendor:          "Acme",
		Variants:        []shopify.Variant{{Price: "89.00"}},
	}

	doc := BuildContext(&p)
	if !strings.HasPrefix(doc, "Category: Shoes\n") {
		t.Errorf("document should lead with category, got:\n%s", doc)
	}
	if !strings.Contains(doc, "Description: Grippy sole") {
		t.Errorf("description should be stripped of HTML, got:\n%s", doc)
	}
	if !strings.Contains(doc, "Tags: outdoor, running") {
		t.Errorf("tags missing, got:\n%s", doc)
	}
}

func TestExtractCategories(t *testing.T) {
	products := []shopify.Product{
		{ProductType: "Shoes"},
		{ProductType: " Shirts "},
		{ProductType: "Shoes"},
		{ProductType: ""},
		{ProductType: "   "},
		{ProductType: "Shirts"},
	}

	got := ExtractCategories(products)
	want := []string{"Shirts", "Shoes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractCategories = %v, want %v", got, want)
	}

	// Order of input must not matter.
	reversed := []shopify.Product{products[5], products[3], products[1], products[0]}
	if got := ExtractCategories(reversed); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractCategories not order independent: %v", got)
	}
}

func TestExtractCategoriesEmptyCatalog(t *testing.T) {
	if got := ExtractCategories(nil); len(got) != 0 {
		t.Errorf("expected empty categories, got %v", got)
	}
}
