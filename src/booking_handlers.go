package main

import (
	"errors"
	"log"
	"net/http"
	"tbs/src/common"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingResponse(b *models.Booking) types.APIResponseBooking {
	resp := types.APIResponseBooking{
		ID:             b.ID,
		BookingID:      b.BookingID,
		Status:         string(b.Status),
		NumberOfSeats:  b.NumberOfSeats,
		TotalPrice:     b.TotalPrice,
		UserID:         b.UserID,
		TravelOptionID: b.TravelOptionID,
		CanBeCancelled: b.CanBeCancelled(),
		Timestamps:     b.Timestamps,
	}
	if b.TravelOption != nil {
		option := travelOptionResponse(b.TravelOption)
		resp.TravelOption = &option
	}
	return resp
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var filters types.BookingsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			bookings, err := common.GetOwnBookings(userId, filters.Status)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			booking, err := common.GetBooking(params.ID, userId)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingResponse(booking)})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := common.CreateBooking(&body, userId)
			if err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, models.ErrInsufficientCapacity) {
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/confirm", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			booking, err := common.ConfirmBooking(params.ID, userId)
			if err != nil {
				writeBookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingResponse(booking)})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CancelBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")

			// The cutoff window is a gate at this layer; the state machine
			// itself only enforces the status transition.
			booking, err := common.GetBooking(params.ID, userId)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			if !booking.CanBeCancelled() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "this booking can no longer be cancelled"})
				return
			}

			booking, err = common.CancelBooking(params.ID, userId, body.Reason)
			if err != nil {
				writeBookingError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingResponse(booking)})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		PUT("/bookings/:id/refund", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.RefundBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.RefundBooking(params.ID, body.PaymentReference); err != nil {
				writeBookingError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func writeBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInsufficientCapacity):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCapacityOverflow):
		log.Printf("ALERT: capacity overflow surfaced to handler: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal inconsistency"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
