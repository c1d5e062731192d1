package customers

import (
	"boxoffice/src/models"
	"boxoffice/src/types"
	"errors"
	"log"

	"gorm.io/gorm"
)

// FindOrCreate resolves a purchase to a customer record. Authenticated buyers
// are matched by user id first, guests by email; an email match refreshes the
// stored contact details. Idempotent, so a resubmitted checkout reuses the
// same customer row.
func FindOrCreate(tx *gorm.DB, input *types.CustomerInput) (*models.Customer, error) {
	if input.UserID != "" {
		var existing models.Customer
		err := tx.
			Model(&models.Customer{}).
			Where("user_id = ?", input.UserID).
			First(&existing).
			Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var byEmail models.Customer
	err := tx.
		Model(&models.Customer{}).
		Where("email = ?", input.Email).
		First(&byEmail).
		Error
	if err == nil {
		if err := tx.
			Model(&models.Customer{}).
			Where("id = ?", byEmail.ID).
			Updates(map[string]any{
				"first_name":            input.FirstName,
				"last_name":             input.LastName,
				"phone":                 input.Phone,
				"billing_address_line1": input.BillingAddressLine1,
				"billing_address_line2": input.BillingAddressLine2,
				"billing_city":          input.BillingCity,
				"billing_state":         input.BillingState,
				"billing_country":       input.BillingCountry,
				"billing_postal_code":   input.BillingPostalCode,
			}).
			Error; err != nil {
			return nil, err
		}
		if err := tx.Where("id = ?", byEmail.ID).First(&byEmail).Error; err != nil {
			return nil, err
		}
		return &byEmail, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := models.Customer{
		UserID:              input.UserID,
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		BillingAddressLine1: input.BillingAddressLine1,
		BillingAddressLine2: input.BillingAddressLine2,
		BillingCity:         input.BillingCity,
		BillingState:        input.BillingState,
		BillingCountry:      input.BillingCountry,
		BillingPostalCode:   input.BillingPostalCode,
	}
	if err := tx.Create(&customer).Error; err != nil {
		log.Printf("Error creating customer [%s]: %s\n", input.Email, err.Error())
		return nil, err
	}
	return &customer, nil
}
