package dto

type ChatRequest struct {
	Message    string `json:"message" validate:"required"`
	CartId     string `json:"cart_id"`
	ShopDomain string `json:"shop_domain"`
}

type ChatProduct struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	ImageUrl string `json:"image_url"`
	Handle   string `json:"handle"`
	Category string `json:"category"`
}

type ChatResponse struct {
	Reply    string        `json:"reply"`
	Products []ChatProduct `json:"products"`
	CartId   string        `json:"cart_id,omitempty"`
}
