package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	errs "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
	"github.com/techagentng/ecotrack/server/response"
	"github.com/techagentng/ecotrack/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleGetUnreadNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		notifications, err := s.NotificationService.ListUnread(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleAcknowledgeNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID, err := strconv.ParseUint(c.Param("notificationID"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid notification id", http.StatusBadRequest))
			return
		}

		if err := s.NotificationService.Acknowledge(uint(notificationID)); err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Notification marked as read", http.StatusOK, nil, nil)
	}
}

// handleNotificationStream pushes the user's unread notifications over a
// websocket on a fixed poll interval until the client disconnects.
func (s *Server) handleNotificationStream() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		interval := time.Duration(s.Config.NotificationPollSeconds) * time.Second
		poller := services.NewPoller(s.NotificationService, interval)

		err = poller.Run(c.Request.Context(), user.ID, func(notifications []models.Notification) error {
			return conn.WriteJSON(notifications)
		})
		if err != nil {
			log.Printf("notification stream for user %d ended: %v", user.ID, err)
		}
	}
}
