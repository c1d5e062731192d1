package admin

import (
	"boxoffice/src/models"
	"boxoffice/src/orders"
	"boxoffice/src/types"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrAlreadyCheckedIn reports a second check-in attempt for the same ticket.
var ErrAlreadyCheckedIn = errors.New("ticket already checked in")

// CheckInTicket marks a ticket as used at the door. The read and the update
// share a transaction so two scanners cannot both succeed.
func CheckInTicket(gdb *gorm.DB, id string, checkedInBy string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := gdb.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&models.Ticket{}).
			Where("id = ?", id).
			First(&ticket).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &orders.NotFoundError{Entity: "ticket", ID: id}
			}
			return err
		}
		if ticket.IsCheckedIn {
			return ErrAlreadyCheckedIn
		}
		if ticket.Status != types.TICKET_VALID {
			return &orders.NotFoundError{Entity: "ticket", ID: id}
		}
		now := time.Now()
		if err := tx.
			Model(&models.Ticket{}).
			Where("id = ?", ticket.ID).
			Updates(map[string]any{
				"is_checked_in": true,
				"checked_in_at": now,
				"checked_in_by": checkedInBy,
				"status":        types.TICKET_USED,
			}).
			Error; err != nil {
			return err
		}
		ticket.IsCheckedIn = true
		ticket.CheckedInAt = &now
		ticket.CheckedInBy = checkedInBy
		ticket.Status = types.TICKET_USED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
