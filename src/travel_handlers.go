package main

import (
	"net/http"
	"tbs/src/common"
	"tbs/src/models"
	"tbs/src/types"

	"github.com/gin-gonic/gin"
)

func travelOptionResponse(option *models.TravelOption) types.APIResponseTravelOption {
	hours := option.DurationHours()
	return types.APIResponseTravelOption{
		ID:                option.ID,
		TravelID:          option.TravelID,
		Type:              string(option.Type),
		Source:            option.Source,
		Destination:       option.Destination,
		DepartureDatetime: &option.DepartureDatetime,
		ArrivalDatetime:   &option.ArrivalDatetime,
		Price:             &option.Price,
		TotalSeats:        &option.TotalSeats,
		AvailableSeats:    &option.AvailableSeats,
		OperatorName:      option.OperatorName,
		DurationHours:     &hours,
		IsAvailable:       option.IsAvailable(),
	}
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	apiv1.
		GET("/travel", func(ctx *gin.Context) {
			var filters types.TravelQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			options, err := common.SearchTravelOptions(&filters)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": options, "count": len(options)})
		}).
		GET("/travel/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			option, err := common.GetTravelOption(params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": travelOptionResponse(option)})
		}).
		GET("/travel/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			snapshot, err := common.GetSeatAvailability(params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "travel option not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": snapshot})
		})
	return apiv1
}

func travelAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/travel", func(ctx *gin.Context) {
			var body types.CreateTravelOptionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := common.CreateTravelOption(&body)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		PUT("/travel/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateTravelOptionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.UpdateTravelOption(params.ID, &body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/travel/:id/deactivate", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := common.DeactivateTravelOption(params.ID); err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
