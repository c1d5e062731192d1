package main

import (
	"boxoffice/src/admin"
	"boxoffice/src/config"
	"boxoffice/src/db"
	"boxoffice/src/models"
	"boxoffice/src/pagination"
	"boxoffice/src/types"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/venues", func(ctx *gin.Context) {
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			venue := models.Venue{
				Name:         body.Name,
				Description:  body.Description,
				AddressLine1: body.AddressLine1,
				AddressLine2: body.AddressLine2,
				City:         body.City,
				State:        body.State,
				Country:      body.Country,
				PostalCode:   body.PostalCode,
				Capacity:     body.Capacity,
				Timezone:     body.Timezone,
				IsVirtual:    body.IsVirtual,
			}
			db := db.GetDb()
			if err := db.Create(&venue).Error; err != nil {
				log.Printf("Error creating venue: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": venue})
		}).
		GET("/venues", func(ctx *gin.Context) {
			db := db.GetDb()
			var venues []models.Venue
			if err := db.Order("name").Find(&venues).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": venues, "count": len(venues)})
		}).
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startDate, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var endDate *time.Time
			if body.EndDate != nil {
				parsed, err := time.Parse(config.TIME_PARSE_FORMAT, *body.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				endDate = &parsed
			}
			status := types.EVENT_DRAFT
			if body.Publish {
				status = types.EVENT_PUBLISHED
			}
			db := db.GetDb()
			var event models.Event
			err = db.Transaction(func(tx *gorm.DB) error {
				var venue models.Venue
				err := tx.
					Model(&models.Venue{}).
					Where("id = ?", body.VenueID).
					First(&venue).
					Error
				if err != nil {
					return err
				}
				event = models.Event{
					Title:            body.Title,
					Slug:             eventSlug(tx, body.Title),
					VenueID:          venue.ID,
					Description:      body.Description,
					ShortDescription: body.ShortDescription,
					StartDate:        startDate,
					EndDate:          endDate,
					Timezone:         body.Timezone,
					Currency:         body.Currency,
					Category:         body.Category,
					TotalCapacity:    body.TotalCapacity,
					Status:           status,
					IsPublished:      body.Publish,
				}
				if body.Publish {
					now := time.Now()
					event.PublishedAt = &now
				}
				return tx.Create(&event).Error
			})
			if err != nil {
				log.Printf("Error creating event: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event})
		}).
		POST("/events/:id/ticket-types", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateTicketTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			saleStart, err := parseOptionalTime(body.SaleStartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			saleEnd, err := parseOptionalTime(body.SaleEndDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var ticketType models.TicketType
			err = db.Transaction(func(tx *gorm.DB) error {
				var event models.Event
				err := tx.
					Model(&models.Event{}).
					Where("id = ?", params.ID).
					First(&event).
					Error
				if err != nil {
					return err
				}
				ticketType = models.TicketType{
					EventID:             event.ID,
					Name:                body.Name,
					Description:         body.Description,
					Price:               body.Price,
					Quantity:            body.Quantity,
					SaleStartDate:       saleStart,
					SaleEndDate:         saleEnd,
					MinQuantityPerOrder: body.MinQuantityPerOrder,
					MaxQuantityPerOrder: body.MaxQuantityPerOrder,
					SortOrder:           body.SortOrder,
					IsActive:            true,
				}
				if err := tx.Create(&ticketType).Error; err != nil {
					return err
				}
				// One slot row per sellable unit. Claiming a slot later is
				// an insert into tickets, never an update here.
				slots := make([]models.InventorySlot, body.Quantity)
				for i := range slots {
					slots[i] = models.InventorySlot{TicketTypeID: ticketType.ID}
				}
				return tx.CreateInBatches(&slots, 500).Error
			})
			if err != nil {
				log.Printf("Error creating ticket type: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": ticketType})
		}).
		GET("/tickets", func(ctx *gin.Context) {
			req, ok := bindListQuery(ctx)
			if !ok {
				return
			}
			db := db.GetDb()
			result, err := admin.ListTickets(db, req)
			if err != nil {
				listErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, result)
		}).
		GET("/orders", func(ctx *gin.Context) {
			req, ok := bindListQuery(ctx)
			if !ok {
				return
			}
			db := db.GetDb()
			result, err := admin.ListOrders(db, req)
			if err != nil {
				listErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, result)
		}).
		GET("/customers", func(ctx *gin.Context) {
			req, ok := bindListQuery(ctx)
			if !ok {
				return
			}
			db := db.GetDb()
			result, err := admin.ListCustomers(db, req)
			if err != nil {
				listErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, result)
		}).
		PUT("/tickets/:id/check-in", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CheckInRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			ticket, err := admin.CheckInTicket(db, params.ID, body.CheckedInBy)
			if err != nil {
				if errors.Is(err, admin.ErrAlreadyCheckedIn) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				orderErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		})
	return g
}

func bindListQuery(ctx *gin.Context) (pagination.Request, bool) {
	var params types.ListQueryParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pagination.Request{}, false
	}
	return pagination.Request{
		Cursor:     params.Cursor,
		Page:       params.Page,
		PrevCursor: params.Prev,
		Jump:       params.Jump,
	}, true
}

func listErrorResponse(ctx *gin.Context, err error) {
	var invalid *pagination.InvalidCursorError
	if errors.As(err, &invalid) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}
	log.Printf("Could not complete request: %s\n", err.Error())
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
}

// eventSlug derives a URL slug from the title, suffixing it when the plain
// form is already taken.
func eventSlug(tx *gorm.DB, title string) string {
	base := slug.Make(title)
	var count int64
	if err := tx.
		Model(&models.Event{}).
		Where("slug = ?", base).
		Count(&count).
		Error; err != nil || count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(config.TIME_PARSE_FORMAT, *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
