package main

import (
	"boxoffice/src/db"
	"boxoffice/src/orders"
	"boxoffice/src/types"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders", func(ctx *gin.Context) {
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result, err := orders.CreateOrder(db, &body)
			if err != nil {
				orderErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": result})
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			order, err := orders.GetOrderDetails(db, params.ID)
			if err != nil {
				orderErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		}).
		GET("/tickets/:code/qrcode", func(ctx *gin.Context) {
			code := ctx.Params.ByName("code")
			db := db.GetDb()
			ticket, err := orders.GetTicketByCode(db, code)
			if err != nil {
				orderErrorResponse(ctx, err)
				return
			}
			qrc, err := qrcode.New(ticket.TicketCode)
			if err != nil {
				log.Printf("Error generating qrcode for ticket [%s]: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			filename := fmt.Sprintf("%s.jpeg", ticket.TicketCode)
			filepath := path.Join(os.TempDir(), filename)
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.FileAttachment(filepath, filename)
		})
	return g
}

// orderErrorResponse maps the checkout error taxonomy onto HTTP statuses.
// Unknown references are 404, a rejected quantity is 422, exhausted or
// contested inventory is 409, anything else is an opaque 400.
func orderErrorResponse(ctx *gin.Context, err error) {
	var notFound *orders.NotFoundError
	var limit *orders.LimitExceededError
	var insufficient *orders.InsufficientInventoryError
	var conflict *orders.InventoryConflictError
	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &limit):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": limit.Error()})
	case errors.As(err, &insufficient):
		ctx.JSON(http.StatusConflict, gin.H{"error": insufficient.Error()})
	case errors.As(err, &conflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": conflict.Error(), "retry": true})
	default:
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Error while processing request"})
	}
}
