package model

import "time"

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	ImageURL    string  `json:"imageUrl"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
	Status      string  `json:"status"`
}

// Order is a placed order document.
type Order struct {
	ID              string      `json:"-"`
	OrderID         int         `json:"order_id"`
	UserID          int         `json:"user_id"`
	OrderItems      []OrderItem `json:"order_items"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	Status          string      `json:"status"`
	OrderDate       time.Time   `json:"order_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
