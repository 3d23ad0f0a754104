package shopify

// Product is the subset of a products.json entry the scraper reads
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
}

// Variant carries the price as a decimal string
type Variant struct {
	ID        int64  `json:"id"`
	Price     string `json:"price"`
	SKU       string `json:"sku"`
	Available *bool  `json:"available"`
}

// Image is a product image
type Image struct {
	Src string `json:"src"`
}

type productsPage struct {
	Products []Product `json:"products"`
}
