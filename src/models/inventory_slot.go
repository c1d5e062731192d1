package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventorySlot is one pre-allocated sellable unit. Slots are created in bulk
// when a ticket type is created and are never updated or deleted afterwards; a
// slot is "claimed" the moment a Ticket row referencing it commits.
type InventorySlot struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	TicketTypeID string    `gorm:"type:uuid;index:inventory_slots_ticket_type_id_idx" json:"ticket_type_id,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
}

func (s *InventorySlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
