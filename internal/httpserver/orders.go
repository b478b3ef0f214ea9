package httpserver

import (
	"net/http"

	"marketplace-orders/internal/domain"

	"github.com/gin-gonic/gin"
)

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func listOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.ListForBuyer(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

func listVendorOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := currentActor(c)
		if actor.Role != domain.RoleVendor && !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		result, err := orders.ListForVendor(c.Request.Context(), actor.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.Get(c.Request.Context(), currentActor(c), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func setOrderStatusHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		o, err := orders.SetStatus(c.Request.Context(), currentActor(c), c.Param("orderID"), domain.OrderStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func markPaymentFailedHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orders.MarkPaymentFailed(c.Request.Context(), currentActor(c), c.Param("orderID")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
