package models

// Product is a catalog item that affiliates promote.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Commission int    `json:"commission"`
	Image      string `json:"image"`
	URL        string `json:"url"`
}

// ProductInput is the admin form for creating a product.
type ProductInput struct {
	Name       string `validate:"required"`
	Price      int64  `validate:"gt=0"`
	Commission int    `validate:"gte=0,lte=100"`
	Image      string `validate:"omitempty,url"`
	URL        string `validate:"required,url"`
}

// ProductPatch changes selected product fields; nil means "keep".
type ProductPatch struct {
	Name       *string
	Price      *int64
	Commission *int
	Image      *string
	URL        *string
}

// ProductView is a product as seen by a given tier.
type ProductView struct {
	Product
	Locked bool
}

// DefaultProducts is the catalog seeded on first run.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Smartphone Samsung Galaxy A54", Price: 5000000, Commission: 5, URL: "https://example.com/samsung-a54"},
		{ID: 2, Name: "Laptop ASUS ROG Gaming", Price: 15000000, Commission: 8, URL: "https://example.com/asus-rog"},
		{ID: 3, Name: "Sony WH-1000XM5 Headphone", Price: 3500000, Commission: 6, URL: "https://example.com/sony-headphone"},
		{ID: 4, Name: "iPad Air Gen 5", Price: 8000000, Commission: 7, URL: "https://example.com/ipad-air"},
		{ID: 5, Name: "Smartwatch Apple Watch Series 9", Price: 6000000, Commission: 6, URL: "https://example.com/apple-watch"},
		{ID: 6, Name: "Camera Canon EOS R50", Price: 12000000, Commission: 8, URL: "https://example.com/canon-r50"},
		{ID: 7, Name: "PlayStation 5 Console", Price: 7500000, Commission: 5, URL: "https://example.com/ps5"},
		{ID: 8, Name: "Nintendo Switch OLED", Price: 4500000, Commission: 6, URL: "https://example.com/switch-oled"},
		{ID: 9, Name: `Samsung 55" 4K Smart TV`, Price: 9000000, Commission: 7, URL: "https://example.com/samsung-tv"},
		{ID: 10, Name: "Dyson V15 Vacuum Cleaner", Price: 11000000, Commission: 8, URL: "https://example.com/dyson-v15"},
		{ID: 11, Name: "Xiaomi Robot Vacuum", Price: 3500000, Commission: 6, URL: "https://example.com/xiaomi-vacuum"},
		{ID: 12, Name: "GoPro Hero 12 Black", Price: 5500000, Commission: 7, URL: "https://example.com/gopro-hero12"},
		{ID: 13, Name: "DJI Mini 3 Pro Drone", Price: 10000000, Commission: 8, URL: "https://example.com/dji-mini3"},
		{ID: 14, Name: `iPad Pro 12.9" M2`, Price: 15000000, Commission: 8, URL: "https://example.com/ipad-pro"},
		{ID: 15, Name: "MacBook Air M2", Price: 18000000, Commission: 10, URL: "https://example.com/macbook-air"},
		{ID: 16, Name: "iPhone 15 Pro Max", Price: 20000000, Commission: 10, URL: "https://example.com/iphone15"},
		{ID: 17, Name: "Samsung Galaxy S24 Ultra", Price: 19000000, Commission: 10, URL: "https://example.com/s24-ultra"},
		{ID: 18, Name: "AirPods Pro 2nd Gen", Price: 2500000, Commission: 5, URL: "https://example.com/airpods-pro"},
		{ID: 19, Name: "Sony PlayStation VR2", Price: 8500000, Commission: 7, URL: "https://example.com/psvr2"},
		{ID: 20, Name: "Microsoft Surface Pro 9", Price: 13000000, Commission: 8, URL: "https://example.com/surface-pro9"},
	}
}
