package handlers

import (
	"net/http"

	"homecollect/middleware"
	"homecollect/models"
	"homecollect/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes reservation and lifecycle endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

// BookSlot handles POST /api/bookings.
func (h *BookingHandler) BookSlot(c *gin.Context) {
	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	requester := middleware.RequesterFrom(c)

	conf, err := h.Bookings.BookSlot(c.Request.Context(), booking.BookSlotInput{
		OrderID:    req.OrderID,
		PostalCode: req.PostalCode,
		Date:       req.Date,
		Hour:       *req.Hour,
	}, requester)
	if err != nil {
		writeError(c, err)
		return
	}
	getLogger(c).Info("Slot booked", zap.String("orderId", req.OrderID), zap.String("bookingId", conf.BookingID))
	c.JSON(http.StatusCreated, conf)
}

// GetBooking handles GET /api/bookings/:orderId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), c.Param("orderId"), middleware.RequesterFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles DELETE /api/bookings/:orderId. The body is optional.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req models.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	orderID := c.Param("orderId")
	if err := h.Bookings.CancelBooking(c.Request.Context(), orderID, middleware.RequesterFrom(c), req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "orderId": orderID})
}

// VerifyOTP handles POST /api/bookings/verify-otp.
func (h *BookingHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Bookings.VerifyOTP(c.Request.Context(), req.OrderID, req.OTP, middleware.RequesterFrom(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// UpdateStatus handles PUT /api/bookings/:orderId/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	change, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status, middleware.RequesterFrom(c), req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, change)
}
