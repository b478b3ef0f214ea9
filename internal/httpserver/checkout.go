package httpserver

import (
	"net/http"

	"marketplace-orders/internal/domain"
	checkoutsvc "marketplace-orders/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
}

// checkoutHandler submits the buyer's current cart. The cart is left in
// place on success; clearing it is a separate, explicit call. A retry after
// an unacknowledged success can therefore place the orders again, so callers
// that care must check /orders first.
func checkoutHandler(carts cartService, checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		buyerID := currentUser(c).ID
		cart, err := carts.Get(c.Request.Context(), buyerID)
		if err != nil {
			respondError(c, err)
			return
		}

		items := make([]checkoutsvc.Item, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			items = append(items, checkoutsvc.Item{ProductID: line.ProductID, Quantity: line.Quantity})
		}

		orderIDs, err := checkout.Checkout(c.Request.Context(), buyerID, items, req.ShippingAddress, domain.PaymentMethod(req.PaymentMethod))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"orderIds": orderIDs})
	}
}
