package models

import (
	"boxoffice/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Venue struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Capacity     uint   `json:"capacity,omitempty"`
	Timezone     string `gorm:"default:'UTC'" json:"timezone,omitempty"`
	IsVirtual    bool   `json:"is_virtual"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Website      string `json:"website,omitempty"`

	Events []Event `gorm:"foreignKey:VenueID" json:"events,omitempty"`

	types.Timestamps
}

func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
