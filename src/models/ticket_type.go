package models

import (
	"boxoffice/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketType describes one sellable tier of an event. Quantity is the nominal
// capacity used to generate inventory slots; after generation the slot rows are
// the authority on how many units can still be sold.
type TicketType struct {
	ID                  string     `gorm:"type:uuid;primaryKey" json:"id"`
	EventID             string     `gorm:"type:uuid;index" json:"event_id,omitempty"`
	Name                string     `json:"name,omitempty"`
	Description         string     `json:"description,omitempty"`
	Price               float64    `json:"price"`
	Quantity            int        `json:"quantity"`
	SaleStartDate       *time.Time `json:"sale_start_date,omitempty"`
	SaleEndDate         *time.Time `json:"sale_end_date,omitempty"`
	MinQuantityPerOrder int        `gorm:"default:1" json:"min_quantity_per_order,omitempty"`
	MaxQuantityPerOrder int        `gorm:"default:10" json:"max_quantity_per_order,omitempty"`
	SortOrder           int        `json:"sort_order"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`

	Event Event           `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Slots []InventorySlot `gorm:"foreignKey:TicketTypeID" json:"slots,omitempty"`

	types.Timestamps
}

// OnSaleAt reports whether the sale window, when set, covers the given time.
func (t *TicketType) OnSaleAt(at time.Time) bool {
	if t.SaleStartDate != nil && at.Before(*t.SaleStartDate) {
		return false
	}
	if t.SaleEndDate != nil && at.After(*t.SaleEndDate) {
		return false
	}
	return true
}

func (t *TicketType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
