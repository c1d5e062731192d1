package orders

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{10, 10},
		{10.004, 10.00},
		{10.005, 10.01},
		{10.006, 10.01},
		{2.675, 2.68},
		{0.125, 0.13},
		{99.999, 100.00},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, RoundMoney(c.in), 1e-9, "RoundMoney(%v)", c.in)
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("whole subtotal", func(t *testing.T) {
		totals := ComputeTotals(100)
		assert.InDelta(t, 100.00, totals.Subtotal, 1e-9)
		assert.InDelta(t, 8.00, totals.Tax, 1e-9)
		assert.InDelta(t, 5.00, totals.Fees, 1e-9)
		assert.InDelta(t, 113.00, totals.Total, 1e-9)
	})

	t.Run("fractional subtotal", func(t *testing.T) {
		totals := ComputeTotals(19.99)
		assert.InDelta(t, 19.99, totals.Subtotal, 1e-9)
		assert.InDelta(t, 1.60, totals.Tax, 1e-9)
		assert.InDelta(t, 1.00, totals.Fees, 1e-9)
		assert.InDelta(t, 22.59, totals.Total, 1e-9)
	})

	t.Run("half-cent boundary", func(t *testing.T) {
		totals := ComputeTotals(10.005)
		assert.InDelta(t, 10.01, totals.Subtotal, 1e-9)
		assert.InDelta(t, 0.80, totals.Tax, 1e-9)
		assert.InDelta(t, 0.50, totals.Fees, 1e-9)
		assert.InDelta(t, 11.31, totals.Total, 1e-9)
	})

	t.Run("total is the sum of its parts", func(t *testing.T) {
		for _, sub := range []float64{0.01, 1.11, 24.99, 10.005, 1234.56} {
			totals := ComputeTotals(sub)
			assert.InDelta(t, totals.Subtotal+totals.Tax+totals.Fees, totals.Total, 1e-9)
		}
	})
}

func TestCodes(t *testing.T) {
	orderRe := regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{6}$`)
	ticketRe := regexp.MustCompile(`^TKT-\d+-[0-9A-Z]{8}$`)

	assert.Regexp(t, orderRe, NewOrderNumber())
	assert.Regexp(t, ticketRe, NewTicketCode())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := NewTicketCode()
		assert.Regexp(t, ticketRe, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t,
		&NotFoundError{Entity: "ticket type", ID: "abc"},
		"ticket type not found: abc")
	assert.EqualError(t,
		&LimitExceededError{TicketTypeName: "VIP", Max: 4, Requested: 6},
		"maximum 4 tickets per order for VIP, requested 6")
	assert.EqualError(t,
		&InsufficientInventoryError{TicketTypeName: "GA", Available: 1, Requested: 3},
		"only 1 tickets available for GA, requested 3")
	assert.EqualError(t,
		&InventoryConflictError{TicketTypeID: "tt1"},
		"inventory conflict for ticket type tt1, please retry")
}
