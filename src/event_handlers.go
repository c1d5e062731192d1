package main

import (
	"boxoffice/src/db"
	"boxoffice/src/models"
	"boxoffice/src/orders"
	"boxoffice/src/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			db := db.GetDb()
			q := db.
				Model(&models.Event{}).
				Where("status = ?", types.EVENT_PUBLISHED).
				Preload("Venue").
				Order("start_date")
			if category := ctx.Query("category"); category != "" {
				q = q.Where("category = ?", category)
			}
			var events []models.Event
			if err := q.Find(&events).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		GET("/events/:slug", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var event models.Event
			err := db.
				Model(&models.Event{}).
				Where("slug = ?", params.Slug).
				Where("status = ?", types.EVENT_PUBLISHED).
				Preload("Venue").
				First(&event).
				Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "event not found: " + params.Slug})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		GET("/events/:slug/ticket-types", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var event models.Event
			err := db.
				Model(&models.Event{}).
				Where("slug = ?", params.Slug).
				Where("status = ?", types.EVENT_PUBLISHED).
				First(&event).
				Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "event not found: " + params.Slug})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ticketTypes, err := orders.AvailableTicketTypes(db, event.ID)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticketTypes, "count": len(ticketTypes)})
		})
	return g
}
