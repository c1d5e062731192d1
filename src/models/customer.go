package models

import (
	"boxoffice/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID                  string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              string `json:"user_id,omitempty"`
	FirstName           string `json:"first_name,omitempty"`
	LastName            string `json:"last_name,omitempty"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"phone,omitempty"`
	BillingAddressLine1 string `json:"billing_address_line1,omitempty"`
	BillingAddressLine2 string `json:"billing_address_line2,omitempty"`
	BillingCity         string `json:"billing_city,omitempty"`
	BillingState        string `json:"billing_state,omitempty"`
	BillingCountry      string `json:"billing_country,omitempty"`
	BillingPostalCode   string `json:"billing_postal_code,omitempty"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`

	types.Timestamps
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
