package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus values transition forward-only: Pending -> Shipped -> Delivered.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

var orderStatusRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderShipped:   1,
	OrderDelivered: 2,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a forward step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	CompanyID       uuid.UUID   `json:"company_id" db:"company_id"`
	ProductID       uuid.UUID   `json:"product_id" db:"product_id"`
	OrderDate       time.Time   `json:"order_date" db:"order_date"`
	Quantity        int         `json:"quantity" db:"quantity"`
	TotalPrice      float64     `json:"total_price" db:"total_price"`
	Status          OrderStatus `json:"status" db:"status"`
	ShippingAddress string      `json:"shipping_address" db:"shipping_address"`
	PaymentMethod   string      `json:"payment_method" db:"payment_method"`
	InvoiceNumber   *string     `json:"invoice_number" db:"invoice_number"`
	Discount        *float64    `json:"discount" db:"discount"`
	Tax             *float64    `json:"tax" db:"tax"`
	ShippingCost    *float64    `json:"shipping_cost" db:"shipping_cost"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}
