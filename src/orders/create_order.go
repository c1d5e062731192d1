package orders

import (
	"boxoffice/src/customers"
	"boxoffice/src/models"
	"boxoffice/src/types"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ticketCodeAttempts bounds regeneration when a generated ticket code collides
// with an existing one.
const ticketCodeAttempts = 5

// testHookBeforeClaim runs between slot discovery and the claiming inserts.
// Tests use it to claim a discovered slot from the outside and exercise the
// conflict path deterministically.
var testHookBeforeClaim func(tx *gorm.DB)

type claimedSelection struct {
	ticketType models.TicketType
	quantity   int
	slots      []models.InventorySlot
}

// CreateOrder runs the whole checkout in one transaction: validate the
// selections, discover unclaimed inventory slots without locking, price the
// order, then claim each slot by inserting a ticket. The unique index on
// tickets.inventory_slot_id decides races; a losing insert rolls the whole
// order back.
func CreateOrder(gdb *gorm.DB, body *types.CreateOrderRequestBody) (*types.CreateOrderResult, error) {
	var result *types.CreateOrderResult
	err := gdb.Transaction(func(tx *gorm.DB) error {
		selections, err := discoverSlots(tx, body.Tickets)
		if err != nil {
			return err
		}

		event := selections[0].ticketType.Event
		if event.Status != types.EVENT_PUBLISHED {
			return &NotFoundError{Entity: "event", ID: event.ID}
		}

		customer, err := customers.FindOrCreate(tx, &body.Customer)
		if err != nil {
			return err
		}

		var subtotal float64
		for _, sel := range selections {
			subtotal += sel.ticketType.Price * float64(sel.quantity)
		}
		totals := ComputeTotals(subtotal)

		order := models.Order{
			CustomerID:        customer.ID,
			OrderNumber:       NewOrderNumber(),
			Status:            types.ORDER_PENDING,
			PaymentStatus:     types.PAYMENT_PENDING,
			PaymentMethod:     body.PaymentMethod,
			Subtotal:          totals.Subtotal,
			Tax:               totals.Tax,
			Fees:              totals.Fees,
			Total:             totals.Total,
			Currency:          event.Currency,
			CustomerEmail:     customer.Email,
			CustomerFirstName: customer.FirstName,
			CustomerLastName:  customer.LastName,
			CustomerPhone:     customer.Phone,
		}
		if err := tx.Create(&order).Error; err != nil {
			log.Printf("Error creating order: %s\n", err.Error())
			return err
		}

		if testHookBeforeClaim != nil {
			testHookBeforeClaim(tx)
		}

		var tickets []types.OrderTicket
		for _, sel := range selections {
			item := models.OrderItem{
				OrderID:        order.ID,
				TicketTypeID:   sel.ticketType.ID,
				Quantity:       sel.quantity,
				UnitPrice:      sel.ticketType.Price,
				Subtotal:       RoundMoney(sel.ticketType.Price * float64(sel.quantity)),
				TicketTypeName: sel.ticketType.Name,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			for _, slot := range sel.slots {
				ticket, err := claimSlot(tx, &order, &item, &sel.ticketType, customer, slot)
				if err != nil {
					return err
				}
				tickets = append(tickets, types.OrderTicket{
					ID:             ticket.ID,
					TicketCode:     ticket.TicketCode,
					EventTitle:     ticket.EventTitle,
					TicketTypeName: ticket.TicketTypeName,
					Price:          ticket.Price,
				})
			}
		}

		now := time.Now()
		paymentIntent := fmt.Sprintf("pi_fake_%d", now.UnixMilli())
		if err := tx.
			Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{
				"status":            types.ORDER_COMPLETED,
				"payment_status":    types.PAYMENT_COMPLETED,
				"payment_intent_id": paymentIntent,
				"completed_at":      now,
			}).
			Error; err != nil {
			return err
		}

		result = &types.CreateOrderResult{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			CustomerID:  customer.ID,
			Total:       totals.Total,
			Tickets:     tickets,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// discoverSlots validates each selection and reads candidate slots without
// taking locks. The read is advisory: two transactions can discover the same
// slot, and the claiming insert settles who keeps it.
func discoverSlots(tx *gorm.DB, selections []types.TicketSelection) ([]claimedSelection, error) {
	out := make([]claimedSelection, 0, len(selections))
	for _, sel := range selections {
		var tt models.TicketType
		err := tx.
			Model(&models.TicketType{}).
			Preload("Event").
			Where("id = ?", sel.TicketTypeID).
			First(&tt).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "ticket type", ID: sel.TicketTypeID}
			}
			return nil, err
		}
		if !tt.IsActive || !tt.OnSaleAt(time.Now()) {
			return nil, &NotFoundError{Entity: "ticket type", ID: sel.TicketTypeID}
		}
		if tt.MaxQuantityPerOrder > 0 && sel.Quantity > tt.MaxQuantityPerOrder {
			return nil, &LimitExceededError{
				TicketTypeName: tt.Name,
				Max:            tt.MaxQuantityPerOrder,
				Requested:      sel.Quantity,
			}
		}

		claimed := tx.Model(&models.Ticket{}).Select("inventory_slot_id")
		var slots []models.InventorySlot
		err = tx.
			Model(&models.InventorySlot{}).
			Where("ticket_type_id = ?", tt.ID).
			Where("id NOT IN (?)", claimed).
			Order("id").
			Limit(sel.Quantity).
			Find(&slots).
			Error
		if err != nil {
			return nil, err
		}
		if len(slots) < sel.Quantity {
			return nil, &InsufficientInventoryError{
				TicketTypeName: tt.Name,
				Available:      len(slots),
				Requested:      sel.Quantity,
			}
		}
		out = append(out, claimedSelection{ticketType: tt, quantity: sel.Quantity, slots: slots})
	}
	return out, nil
}

// claimSlot inserts the ticket that takes ownership of a slot. Each attempt
// runs in a savepoint so a rejected insert does not poison the enclosing
// transaction. A ticket code collision is retried with a fresh code; a slot
// collision means another order won the race.
func claimSlot(tx *gorm.DB, order *models.Order, item *models.OrderItem, tt *models.TicketType, customer *models.Customer, slot models.InventorySlot) (*models.Ticket, error) {
	for attempt := 0; attempt < ticketCodeAttempts; attempt++ {
		ticket := models.Ticket{
			OrderID:           order.ID,
			OrderItemID:       item.ID,
			EventID:           tt.EventID,
			TicketTypeID:      tt.ID,
			CustomerID:        customer.ID,
			InventorySlotID:   slot.ID,
			TicketCode:        NewTicketCode(),
			Status:            types.TICKET_VALID,
			AttendeeFirstName: customer.FirstName,
			AttendeeLastName:  customer.LastName,
			AttendeeEmail:     customer.Email,
			EventTitle:        tt.Event.Title,
			TicketTypeName:    tt.Name,
			Price:             tt.Price,
		}
		err := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&ticket).Error
		})
		if err == nil {
			return &ticket, nil
		}
		constraint, unique := uniqueViolation(err)
		if !unique {
			return nil, err
		}
		if strings.Contains(constraint, "inventory_slot") {
			log.Printf("Slot %s claimed by a concurrent order: %s\n", slot.ID, err.Error())
			return nil, &InventoryConflictError{TicketTypeID: tt.ID}
		}
		if strings.Contains(constraint, "ticket_code") {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("could not generate a unique ticket code after %d attempts", ticketCodeAttempts)
}

// uniqueViolation classifies a driver error as a unique constraint violation
// and returns text naming the violated constraint. Postgres reports SQLSTATE
// 23505 with the constraint name; the sqlite driver used in tests only gives
// the message, which embeds the column list.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return pgErr.ConstraintName, true
		}
		return "", false
	}
	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}
	return "", false
}
