package model

import "time"

// Product is a catalog item as stored and as returned to clients.
type Product struct {
	ID              string    `json:"-" yaml:"-"`
	ProductID       int       `json:"product_id" yaml:"product_id"`
	ProductName     string    `json:"product_name" yaml:"product_name"`
	Brand           string    `json:"brand" yaml:"brand"`
	Category        string    `json:"category" yaml:"category"`
	Price           float64   `json:"price" yaml:"price"`
	DiscountedPrice float64   `json:"discounted_price" yaml:"discounted_price"`
	AvailableStock  int       `json:"available_stock" yaml:"available_stock"`
	SKUCode         string    `json:"sku_code" yaml:"sku_code"`
	ImageURL        string    `json:"image_url" yaml:"image_url"`
	Description     string    `json:"description" yaml:"description"`
	Rating          float64   `json:"rating" yaml:"rating"`
	IsPopular       bool      `json:"is_popular" yaml:"is_popular"`
	CreatedAt       time.Time `json:"-" yaml:"-"`
	UpdatedAt       time.Time `json:"-" yaml:"-"`
}
