package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 注文明細。priceAtPurchaseは確定時点の単価。
type OrderItem struct {
	BookID          int64   `json:"bookId"`
	Quantity        int64   `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// チェックアウト完了時に一度だけ送るドラフト注文
type OrderRequest struct {
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
}

type Order struct {
	OrderID         int64       `json:"orderId"`
	OrderDate       time.Time   `json:"orderDate"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
}
