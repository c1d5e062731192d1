package models

import (
	"boxoffice/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID              string              `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID      string              `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderNumber     string              `gorm:"uniqueIndex:orders_order_number_idx" json:"order_number,omitempty"`
	Status          types.OrderStatus   `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentStatus   types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	PaymentMethod   string              `json:"payment_method,omitempty"`
	PaymentIntentID *string             `json:"payment_intent_id,omitempty"`
	Subtotal        float64             `json:"subtotal"`
	Tax             float64             `json:"tax"`
	Fees            float64             `json:"fees"`
	Total           float64             `json:"total"`
	Currency        string              `gorm:"default:'USD'" json:"currency,omitempty"`

	// Customer snapshot captured at purchase time
	CustomerEmail     string `json:"customer_email,omitempty"`
	CustomerFirstName string `json:"customer_first_name,omitempty"`
	CustomerLastName  string `json:"customer_last_name,omitempty"`
	CustomerPhone     string `json:"customer_phone,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Tickets  []Ticket    `gorm:"foreignKey:OrderID" json:"tickets,omitempty"`

	types.Timestamps
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
