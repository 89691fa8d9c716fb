package handlers

import (
	"net/http"

	"homecollect/models"
	"homecollect/services/booking"

	"github.com/gin-gonic/gin"
)

// SlotHandler serves slot listings for a postal code.
type SlotHandler struct {
	Slots booking.SlotService
}

func NewSlotHandler(svc booking.SlotService) *SlotHandler {
	return &SlotHandler{Slots: svc}
}

// ListSlots handles GET /api/slots.
func (h *SlotHandler) ListSlots(c *gin.Context) {
	var q models.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	listing, err := h.Slots.ListSlots(c.Request.Context(), q.PostalCode, q.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// NextAvailable handles GET /api/slots/next.
func (h *SlotHandler) NextAvailable(c *gin.Context) {
	var q models.NextSlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	next, err := h.Slots.FindNextAvailable(c.Request.Context(), q.PostalCode, q.Date, *q.AfterHour)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, next)
}
