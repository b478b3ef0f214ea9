package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listNotificationsHandler(notifications notificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := notifications.ListFor(c.Request.Context(), currentActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": result})
	}
}

func markNotificationReadHandler(notifications notificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := notifications.MarkRead(c.Request.Context(), currentActor(c), c.Param("notificationID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
