package admin

import (
	"boxoffice/src/pagination"
	"boxoffice/src/types"
	"log"
	"time"

	"gorm.io/gorm"
)

var (
	ticketCounts   = pagination.NewCountCache("tickets")
	orderCounts    = pagination.NewCountCache("orders")
	customerCounts = pagination.NewCountCache("customers")
)

// RefreshCounts recomputes the advisory listing counts. Wired to the
// scheduler so the TTL rarely lapses inside a request.
func RefreshCounts(gdb *gorm.DB) {
	ticketCounts.Refresh(gdb)
	orderCounts.Refresh(gdb)
	customerCounts.Refresh(gdb)
	log.Println("Refreshed listing counts")
}

// TicketRow is the flat shape of one sold ticket in the admin listing. The
// buyer email is joined in from customers; the rest comes off the ticket row
// itself, including the purchase-time snapshots.
type TicketRow struct {
	ID             string             `json:"id"`
	TicketCode     string             `json:"ticket_code"`
	Status         types.TicketStatus `json:"status"`
	EventTitle     string             `json:"event_title"`
	TicketTypeName string             `json:"ticket_type_name"`
	Price          float64            `json:"price"`
	IsCheckedIn    bool               `json:"is_checked_in"`
	CheckedInAt    *time.Time         `json:"checked_in_at,omitempty"`
	CustomerEmail  string             `json:"customer_email,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

func (r TicketRow) CursorKey() pagination.Cursor {
	return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
}

func ListTickets(gdb *gorm.DB, req pagination.Request) (*pagination.Result[TicketRow], error) {
	return pagination.ListPage[TicketRow](gdb, "tickets", req, ticketCounts, func(q *gorm.DB) *gorm.DB {
		return q.
			Table("tickets").
			Select("tickets.id, tickets.ticket_code, tickets.status, tickets.event_title, tickets.ticket_type_name, tickets.price, tickets.is_checked_in, tickets.checked_in_at, tickets.created_at, customers.email AS customer_email").
			Joins("LEFT JOIN customers ON customers.id = tickets.customer_id").
			Where("tickets.deleted_at IS NULL")
	})
}

type OrderRow struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"order_number"`
	Status            types.OrderStatus   `json:"status"`
	PaymentStatus     types.PaymentStatus `json:"payment_status"`
	Total             float64             `json:"total"`
	CustomerEmail     string              `json:"customer_email,omitempty"`
	CustomerFirstName string              `json:"customer_first_name,omitempty"`
	CustomerLastName  string              `json:"customer_last_name,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

func (r OrderRow) CursorKey() pagination.Cursor {
	return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
}

func ListOrders(gdb *gorm.DB, req pagination.Request) (*pagination.Result[OrderRow], error) {
	return pagination.ListPage[OrderRow](gdb, "orders", req, orderCounts, func(q *gorm.DB) *gorm.DB {
		return q.
			Table("orders").
			Select("orders.id, orders.order_number, orders.status, orders.payment_status, orders.total, orders.customer_email, orders.customer_first_name, orders.customer_last_name, orders.created_at").
			Where("orders.deleted_at IS NULL")
	})
}

type CustomerRow struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r CustomerRow) CursorKey() pagination.Cursor {
	return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
}

func ListCustomers(gdb *gorm.DB, req pagination.Request) (*pagination.Result[CustomerRow], error) {
	return pagination.ListPage[CustomerRow](gdb, "customers", req, customerCounts, func(q *gorm.DB) *gorm.DB {
		return q.
			Table("customers").
			Select("customers.id, customers.first_name, customers.last_name, customers.email, customers.phone, customers.created_at").
			Where("customers.deleted_at IS NULL")
	})
}
