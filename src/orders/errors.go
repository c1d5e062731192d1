package orders

import "fmt"

// NotFoundError reports a referenced entity that does not exist or is not
// purchasable, such as an unknown ticket type or an unpublished event.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// LimitExceededError reports a requested quantity above the per-order cap of
// a ticket type.
type LimitExceededError struct {
	TicketTypeName string
	Max            int
	Requested      int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("maximum %d tickets per order for %s, requested %d", e.Max, e.TicketTypeName, e.Requested)
}

// InsufficientInventoryError reports that fewer unclaimed slots remain than
// the order asked for. Available reflects the count observed at claim time
// and may already be stale when the caller reads it.
type InsufficientInventoryError struct {
	TicketTypeName string
	Available      int
	Requested      int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("only %d tickets available for %s, requested %d", e.Available, e.TicketTypeName, e.Requested)
}

// InventoryConflictError reports that a concurrent order claimed one of the
// discovered slots first. The losing order is rolled back whole; the buyer
// should retry.
type InventoryConflictError struct {
	TicketTypeID string
}

func (e *InventoryConflictError) Error() string {
	return fmt.Sprintf("inventory conflict for ticket type %s, please retry", e.TicketTypeID)
}
