package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_PUBLISHED EventStatus = "published"
	EVENT_CANCELLED EventStatus = "cancelled"
	EVENT_COMPLETED EventStatus = "completed"
)

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_COMPLETED OrderStatus = "completed"
	ORDER_CANCELLED OrderStatus = "cancelled"
	ORDER_REFUNDED  OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "pending"
	PAYMENT_COMPLETED PaymentStatus = "completed"
	PAYMENT_FAILED    PaymentStatus = "failed"
	PAYMENT_REFUNDED  PaymentStatus = "refunded"
)

type TicketStatus string

const (
	TICKET_VALID     TicketStatus = "valid"
	TICKET_USED      TicketStatus = "used"
	TICKET_CANCELLED TicketStatus = "cancelled"
	TICKET_REFUNDED  TicketStatus = "refunded"
)

type CustomerInput struct {
	UserID              string `json:"user_id,omitempty"`
	FirstName           string `json:"first_name" binding:"required"`
	LastName            string `json:"last_name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Phone               string `json:"phone,omitempty"`
	BillingAddressLine1 string `json:"billing_address_line1,omitempty"`
	BillingAddressLine2 string `json:"billing_address_line2,omitempty"`
	BillingCity         string `json:"billing_city,omitempty"`
	BillingState        string `json:"billing_state,omitempty"`
	BillingCountry      string `json:"billing_country,omitempty"`
	BillingPostalCode   string `json:"billing_postal_code,omitempty"`
}

type TicketSelection struct {
	TicketTypeID string `json:"ticket_type" binding:"required,uuid"`
	Quantity     int    `json:"qty" binding:"required,min=1"`
}

type CreateOrderRequestBody struct {
	Customer      CustomerInput     `json:"customer" binding:"required"`
	Tickets       []TicketSelection `json:"tickets" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method,omitempty"`
}

type OrderTicket struct {
	ID             string  `json:"id"`
	TicketCode     string  `json:"ticket_code"`
	EventTitle     string  `json:"event_title"`
	TicketTypeName string  `json:"ticket_type_name"`
	Price          float64 `json:"price"`
}

type CreateOrderResult struct {
	OrderID     string        `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	CustomerID  string        `json:"customer_id"`
	Total       float64       `json:"total"`
	Tickets     []OrderTicket `json:"tickets"`
}

type CreateVenueRequestBody struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Capacity     uint   `json:"capacity,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	IsVirtual    bool   `json:"is_virtual,omitempty"`
}

type CreateEventRequestBody struct {
	Title            string  `json:"title" binding:"required"`
	VenueID          string  `json:"venue" binding:"required,uuid"`
	Description      string  `json:"description,omitempty"`
	ShortDescription string  `json:"short_description,omitempty"`
	StartDate        string  `json:"start_date" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndDate          *string `json:"end_date,omitempty" binding:"omitempty,bookabledate,gtdate=StartDate" time_format:"2006-01-02 15:04:05 -07:00"`
	Timezone         string  `json:"timezone,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	Category         string  `json:"category,omitempty"`
	TotalCapacity    uint    `json:"total_capacity,omitempty"`
	Publish          bool    `json:"publish,omitempty"`
}

type CreateTicketTypeRequestBody struct {
	Name                string  `json:"name" binding:"required"`
	Description         string  `json:"description,omitempty"`
	Price               float64 `json:"price" binding:"required,gt=0"`
	Quantity            int     `json:"quantity" binding:"required,min=1"`
	SaleStartDate       *string `json:"sale_start_date,omitempty" binding:"omitempty" time_format:"2006-01-02 15:04:05 -07:00"`
	SaleEndDate         *string `json:"sale_end_date,omitempty" binding:"omitempty,gtdate=SaleStartDate" time_format:"2006-01-02 15:04:05 -07:00"`
	MinQuantityPerOrder int     `json:"min_quantity_per_order,omitempty"`
	MaxQuantityPerOrder int     `json:"max_quantity_per_order,omitempty"`
	SortOrder           int     `json:"sort_order,omitempty"`
}

type CheckInRequestBody struct {
	CheckedInBy string `json:"checked_in_by" binding:"required"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type SlugRequestParams struct {
	Slug string `uri:"slug" binding:"required"`
}

type ListQueryParams struct {
	Cursor string `form:"cursor"`
	Page   int    `form:"page"`
	Prev   string `form:"prev"`
	Jump   bool   `form:"jump"`
}
