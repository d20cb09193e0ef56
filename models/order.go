package models

import "time"

// OrderStatus holds the literal lowercase token persisted for an order's state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusOnDelivery OrderStatus = "on_delivery"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	CustomerID  uint        `json:"customer_id" gorm:"not null;index"`
	Customer    Customer    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	VendorID    uint        `json:"vendor_id" gorm:"not null;index"`
	Vendor      Vendor      `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Status      OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Total       float64     `json:"total" gorm:"not null"`
	DeliveryFee float64     `json:"delivery_fee" gorm:"not null;default:0"`
	Notes       string      `json:"notes"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null;index"`
	MenuID   uint    `json:"menu_id" gorm:"not null"`
	Menu     Menu    `json:"menu,omitempty" gorm:"foreignKey:MenuID"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"`    // snapshot of the menu price at order time
	Subtotal float64 `json:"subtotal" gorm:"not null"` // price * quantity
}
