package orders

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// NewOrderNumber returns a human-readable order reference like
// ORD-1756351200000-A3F9K2. Uniqueness is enforced by the orders table
// index, not by this generator.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomBase36(6))
}

// NewTicketCode returns a scannable ticket code like
// TKT-1756351200000-7HQ2M4XB. Collisions are resolved by the caller
// regenerating on a unique violation.
func NewTicketCode() string {
	return fmt.Sprintf("TKT-%d-%s", time.Now().UnixMilli(), randomBase36(8))
}

func randomBase36(n int) string {
	var sb strings.Builder
	for sb.Len() < n {
		sb.WriteString(strconv.FormatInt(rand.Int63(), 36))
	}
	return strings.ToUpper(sb.String()[:n])
}
