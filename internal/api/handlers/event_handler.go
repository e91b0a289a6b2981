package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	mongorepo "github.com/unedp/careers/internal/repositories/mongo"
	"github.com/unedp/careers/internal/utils"
)

type EventHandler struct {
	events mongorepo.EventRepository
}

func NewEventHandler(events mongorepo.EventRepository) *EventHandler {
	return &EventHandler{events: events}
}

// ListRecent returns the newest audit entries for the admin dashboard.
func (h *EventHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	out, err := h.events.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "EventHandler.ListRecent", "failed to list events", err))
		return
	}

	c.JSON(http.StatusOK, out)
}
