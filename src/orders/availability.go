package orders

import (
	"boxoffice/src/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

// TicketTypeAvailability pairs a ticket type with the number of unclaimed
// slots left for it. The count is advisory, checkout re-verifies.
type TicketTypeAvailability struct {
	models.TicketType
	Available int `json:"available"`
}

// AvailableTicketTypes lists the purchasable ticket types of an event with
// their remaining inventory. Inactive types and types outside their sale
// window are omitted.
func AvailableTicketTypes(gdb *gorm.DB, eventID string) ([]TicketTypeAvailability, error) {
	var ticketTypes []models.TicketType
	err := gdb.
		Model(&models.TicketType{}).
		Where("event_id = ?", eventID).
		Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&ticketTypes).
		Error
	if err != nil {
		return nil, err
	}

	claimed := gdb.Model(&models.Ticket{}).Select("inventory_slot_id")
	var counts []struct {
		TicketTypeID string
		N            int
	}
	err = gdb.
		Model(&models.InventorySlot{}).
		Select("ticket_type_id, count(*) as n").
		Where("id NOT IN (?)", claimed).
		Group("ticket_type_id").
		Scan(&counts).
		Error
	if err != nil {
		return nil, err
	}
	remaining := make(map[string]int, len(counts))
	for _, c := range counts {
		remaining[c.TicketTypeID] = c.N
	}

	now := time.Now()
	out := make([]TicketTypeAvailability, 0, len(ticketTypes))
	for _, tt := range ticketTypes {
		if !tt.OnSaleAt(now) {
			continue
		}
		out = append(out, TicketTypeAvailability{
			TicketType: tt,
			Available:  remaining[tt.ID],
		})
	}
	return out, nil
}

// GetOrderDetails loads an order with its line items and tickets.
func GetOrderDetails(gdb *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := gdb.
		Model(&models.Order{}).
		Preload("Items").
		Preload("Tickets").
		Where("id = ?", id).
		First(&order).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "order", ID: id}
		}
		return nil, err
	}
	return &order, nil
}

// GetTicketByCode loads a ticket by its scannable code.
func GetTicketByCode(gdb *gorm.DB, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := gdb.
		Model(&models.Ticket{}).
		Where("ticket_code = ?", code).
		First(&ticket).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "ticket", ID: code}
		}
		return nil, err
	}
	return &ticket, nil
}
