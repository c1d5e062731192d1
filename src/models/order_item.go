package models

import (
	"boxoffice/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      string  `gorm:"type:uuid;index" json:"order_id,omitempty"`
	TicketTypeID string  `gorm:"type:uuid" json:"ticket_type_id,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Subtotal     float64 `json:"subtotal"`

	// Ticket type snapshot captured at purchase time
	TicketTypeName string `json:"ticket_type_name,omitempty"`

	Order      Order      `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	TicketType TicketType `gorm:"foreignKey:TicketTypeID" json:"ticket_type,omitempty"`

	types.Timestamps
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
