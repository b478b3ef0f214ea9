package httpserver

import (
	"errors"
	"io"
	"net/http"

	"marketplace-orders/internal/domain"
	paymentsvc "marketplace-orders/internal/service/payment"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Gateway-Signature"

// maxWebhookBody bounds gateway payloads; real events are a few hundred bytes.
const maxWebhookBody = 64 << 10

func paymentWebhookHandler(payments paymentListener) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		res, err := payments.HandleEvent(c.Request.Context(), body, c.GetHeader(signatureHeader))
		if err != nil {
			switch {
			case errors.Is(err, paymentsvc.ErrBadSignature):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "signature verification failed"})
			case errors.Is(err, paymentsvc.ErrInvalidPayload):
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown order"})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, retry the event"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"received":  true,
			"applied":   res.Applied,
			"duplicate": res.Duplicate,
			"ignored":   res.Ignored,
		})
	}
}
