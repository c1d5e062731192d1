package main

import (
	"boxoffice/src/boot"
	"boxoffice/src/config"
	"boxoffice/src/db"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB     *gorm.DB
	Router http.Handler
}

func (s *TestSuite) SetupSuite() {
	registerValidators()

	d, err := gorm.Open(sqlite.Open("file:apitest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error opening test database: %s\n", err.Error())
	}
	inner, err := d.DB()
	if err != nil {
		log.Fatalf("Error accessing inner db instance: %s\n", err.Error())
	}
	inner.SetMaxOpenConns(1)
	db.NewDB(d)
	s.DB = d

	boot.InitDb()

	router := setupRouter()
	registerRoutes(router)
	s.Router = router
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
}

func (s *TestSuite) request(method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = strings.NewReader(string(b))
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestPingRoute() {
	w := s.request("GET", "/", nil)
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestCheckoutFlow() {
	t := s.T()
	startDate := time.Now().Add(72 * time.Hour).Format(config.TIME_PARSE_FORMAT)

	w := s.request("POST", "/api/v1/admin/venues", map[string]any{
		"name": "Riverside Arena",
		"city": "Springfield",
	})
	assert.Equal(t, 201, w.Code)
	venueID := gjson.Get(w.Body.String(), "data.id").String()
	assert.NotEmpty(t, venueID)

	w = s.request("POST", "/api/v1/admin/events", map[string]any{
		"title":      "Summer Jam",
		"venue":      venueID,
		"start_date": startDate,
		"category":   "music",
		"publish":    true,
	})
	assert.Equal(t, 201, w.Code)
	sjson := w.Body.String()
	eventID := gjson.Get(sjson, "data.id").String()
	eventSlug := gjson.Get(sjson, "data.slug").String()
	assert.Equal(t, "summer-jam", eventSlug)
	assert.Equal(t, "published", gjson.Get(sjson, "data.status").String())

	w = s.request("POST", fmt.Sprintf("/api/v1/admin/events/%s/ticket-types", eventID), map[string]any{
		"name":                   "General Admission",
		"price":                  50.00,
		"quantity":               30,
		"max_quantity_per_order": 10,
	})
	assert.Equal(t, 201, w.Code)
	gaID := gjson.Get(w.Body.String(), "data.id").String()
	assert.NotEmpty(t, gaID)

	w = s.request("POST", fmt.Sprintf("/api/v1/admin/events/%s/ticket-types", eventID), map[string]any{
		"name":                   "VIP",
		"price":                  120.00,
		"quantity":               1,
		"max_quantity_per_order": 4,
	})
	assert.Equal(t, 201, w.Code)
	vipID := gjson.Get(w.Body.String(), "data.id").String()

	s.Run("Should list the published event", func() {
		w := s.request("GET", "/api/v1/events", nil)
		assert.Equal(t, 200, w.Code)
		sjson := w.Body.String()
		assert.EqualValues(t, 1, gjson.Get(sjson, "count").Int())
		assert.Equal(t, "Summer Jam", gjson.Get(sjson, "data.0.title").String())
	})

	s.Run("Should return ticket types with availability", func() {
		w := s.request("GET", fmt.Sprintf("/api/v1/events/%s/ticket-types", eventSlug), nil)
		assert.Equal(t, 200, w.Code)
		sjson := w.Body.String()
		assert.EqualValues(t, 2, gjson.Get(sjson, "count").Int())
		for _, tt := range gjson.Get(sjson, "data").Array() {
			switch tt.Get("name").String() {
			case "General Admission":
				assert.EqualValues(t, 30, tt.Get("available").Int())
			case "VIP":
				assert.EqualValues(t, 1, tt.Get("available").Int())
			}
		}
	})

	var orderID, ticketID, ticketCode string
	s.Run("Should complete a checkout", func() {
		w := s.request("POST", "/api/v1/orders", map[string]any{
			"customer": map[string]any{
				"first_name": "Jane",
				"last_name":  "Doe",
				"email":      "jane@example.com",
			},
			"tickets": []map[string]any{
				{"ticket_type": gaID, "qty": 2},
			},
			"payment_method": "card",
		})
		assert.Equal(t, 201, w.Code)
		sjson := w.Body.String()
		assert.True(t, strings.HasPrefix(gjson.Get(sjson, "data.order_number").String(), "ORD-"))
		assert.InDelta(t, 113.00, gjson.Get(sjson, "data.total").Float(), 1e-9)
		assert.EqualValues(t, 2, gjson.Get(sjson, "data.tickets.#").Int())
		orderID = gjson.Get(sjson, "data.order_id").String()
		ticketID = gjson.Get(sjson, "data.tickets.0.id").String()
		ticketCode = gjson.Get(sjson, "data.tickets.0.ticket_code").String()
		assert.True(t, strings.HasPrefix(ticketCode, "TKT-"))
	})

	s.Run("Should return the order details", func() {
		w := s.request("GET", fmt.Sprintf("/api/v1/orders/%s", orderID), nil)
		assert.Equal(t, 200, w.Code)
		sjson := w.Body.String()
		assert.Equal(t, "completed", gjson.Get(sjson, "data.status").String())
		assert.EqualValues(t, 2, gjson.Get(sjson, "data.tickets.#").Int())
	})

	s.Run("Should reject an unknown ticket type with 404", func() {
		w := s.request("POST", "/api/v1/orders", map[string]any{
			"customer": map[string]any{
				"first_name": "Jane",
				"last_name":  "Doe",
				"email":      "jane@example.com",
			},
			"tickets": []map[string]any{
				{"ticket_type": "00000000-0000-0000-0000-000000000000", "qty": 1},
			},
		})
		assert.Equal(t, 404, w.Code)
	})

	s.Run("Should reject an oversized quantity with 422", func() {
		w := s.request("POST", "/api/v1/orders", map[string]any{
			"customer": map[string]any{
				"first_name": "Jane",
				"last_name":  "Doe",
				"email":      "jane@example.com",
			},
			"tickets": []map[string]any{
				{"ticket_type": gaID, "qty": 11},
			},
		})
		assert.Equal(t, 422, w.Code)
		assert.Contains(t, gjson.Get(w.Body.String(), "error").String(), "maximum")
	})

	s.Run("Should report exhausted inventory with 409", func() {
		w := s.request("POST", "/api/v1/orders", map[string]any{
			"customer": map[string]any{
				"first_name": "First",
				"last_name":  "Buyer",
				"email":      "first@example.com",
			},
			"tickets": []map[string]any{
				{"ticket_type": vipID, "qty": 1},
			},
		})
		assert.Equal(t, 201, w.Code)

		w = s.request("POST", "/api/v1/orders", map[string]any{
			"customer": map[string]any{
				"first_name": "Second",
				"last_name":  "Buyer",
				"email":      "second@example.com",
			},
			"tickets": []map[string]any{
				{"ticket_type": vipID, "qty": 1},
			},
		})
		assert.Equal(t, 409, w.Code)
		assert.Contains(t, gjson.Get(w.Body.String(), "error").String(), "available")
	})

	s.Run("Should page the admin ticket listing", func() {
		w := s.request("GET", "/api/v1/admin/tickets", nil)
		assert.Equal(t, 200, w.Code)
		sjson := w.Body.String()
		assert.EqualValues(t, 3, gjson.Get(sjson, "items.#").Int())
		assert.False(t, gjson.Get(sjson, "page_info.has_more").Bool())
		assert.Equal(t, "jane@example.com", gjson.Get(sjson, "items.#(ticket_code==\""+ticketCode+"\").customer_email").String())
	})

	s.Run("Should reject a malformed cursor with 400", func() {
		w := s.request("GET", "/api/v1/admin/tickets?cursor=%21%21%21bogus", nil)
		assert.Equal(t, 400, w.Code)
		assert.Contains(t, gjson.Get(w.Body.String(), "error").String(), "invalid pagination cursor")
	})

	s.Run("Should check a ticket in exactly once", func() {
		w := s.request("PUT", fmt.Sprintf("/api/v1/admin/tickets/%s/check-in", ticketID), map[string]any{
			"checked_in_by": "gate-1",
		})
		assert.Equal(t, 200, w.Code)
		sjson := w.Body.String()
		assert.True(t, gjson.Get(sjson, "data.is_checked_in").Bool())
		assert.Equal(t, "used", gjson.Get(sjson, "data.status").String())

		w = s.request("PUT", fmt.Sprintf("/api/v1/admin/tickets/%s/check-in", ticketID), map[string]any{
			"checked_in_by": "gate-2",
		})
		assert.Equal(t, 409, w.Code)
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
