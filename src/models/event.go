package models

import (
	"boxoffice/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID               string            `gorm:"type:uuid;primaryKey" json:"id"`
	VenueID          string            `gorm:"type:uuid;index" json:"venue_id,omitempty"`
	Title            string            `json:"title,omitempty"`
	Slug             string            `gorm:"uniqueIndex:events_slug_idx" json:"slug,omitempty"`
	Description      string            `json:"description,omitempty"`
	ShortDescription string            `json:"short_description,omitempty"`
	StartDate        time.Time         `json:"start_date,omitempty"`
	EndDate          *time.Time        `json:"end_date,omitempty"`
	Timezone         string            `gorm:"default:'UTC'" json:"timezone,omitempty"`
	Status           types.EventStatus `gorm:"default:'draft'" json:"status,omitempty"`
	IsPublished      bool              `json:"is_published"`
	PublishedAt      *time.Time        `json:"published_at,omitempty"`
	TotalCapacity    uint              `json:"total_capacity,omitempty"`
	Currency         string            `gorm:"default:'USD'" json:"currency,omitempty"`
	Category         string            `json:"category,omitempty"`

	Venue       Venue        `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	TicketTypes []TicketType `gorm:"foreignKey:EventID" json:"ticket_types,omitempty"`

	types.Timestamps
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
