package httpserver

import (
	"net/http"

	"marketplace-orders/internal/domain"

	"github.com/gin-gonic/gin"
)

type applyVendorRequest struct {
	ShopName string `json:"shopName" binding:"required"`
	Message  string `json:"message"`
}

type decideVendorRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

func applyVendorRequestHandler(requests vendorRequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyVendorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		vr, err := requests.Apply(c.Request.Context(), currentActor(c), req.ShopName, req.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, vr)
	}
}

func listVendorRequestsHandler(requests vendorRequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *domain.VendorRequestStatus
		if raw := c.Query("status"); raw != "" {
			st := domain.VendorRequestStatus(raw)
			status = &st
		}
		result, err := requests.List(c.Request.Context(), currentActor(c), status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": result})
	}
}

func decideVendorRequestHandler(requests vendorRequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req decideVendorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		vr, err := requests.Decide(c.Request.Context(), currentActor(c), c.Param("requestID"), *req.Approve)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, vr)
	}
}
