package models

import (
	"boxoffice/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is the record of a successfully claimed inventory slot. The unique
// index on InventorySlotID is the arbiter under concurrent checkout: the first
// insert to commit owns the slot, any later insert for the same slot is
// rejected by the constraint.
type Ticket struct {
	ID              string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         string `gorm:"type:uuid" json:"order_id,omitempty"`
	OrderItemID     string `gorm:"type:uuid" json:"order_item_id,omitempty"`
	EventID         string `gorm:"type:uuid" json:"event_id,omitempty"`
	TicketTypeID    string `gorm:"type:uuid" json:"ticket_type_id,omitempty"`
	CustomerID      string `gorm:"type:uuid" json:"customer_id,omitempty"`
	InventorySlotID string `gorm:"type:uuid;uniqueIndex:tickets_inventory_slot_idx" json:"inventory_slot_id,omitempty"`

	TicketCode string             `gorm:"uniqueIndex:tickets_ticket_code_idx" json:"ticket_code,omitempty"`
	Barcode    string             `json:"barcode,omitempty"`
	Status     types.TicketStatus `gorm:"default:'valid'" json:"status,omitempty"`

	AttendeeFirstName string `json:"attendee_first_name,omitempty"`
	AttendeeLastName  string `json:"attendee_last_name,omitempty"`
	AttendeeEmail     string `json:"attendee_email,omitempty"`

	IsCheckedIn bool       `json:"is_checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy string     `json:"checked_in_by,omitempty"`

	// Catalog snapshot captured at purchase time so the ticket stays
	// meaningful if the event or type is edited later
	EventTitle     string  `json:"event_title,omitempty"`
	TicketTypeName string  `json:"ticket_type_name,omitempty"`
	Price          float64 `json:"price"`

	Order         Order         `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Event         Event         `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Customer      Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	InventorySlot InventorySlot `gorm:"foreignKey:InventorySlotID" json:"inventory_slot,omitempty"`

	types.Timestamps
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
