package handlers

import (
	"errors"
	"net/http"

	"homecollect/services/booking"
	"homecollect/services/storage"
	"homecollect/services/team"
	"homecollect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var kindStatus = map[booking.ErrorKind]int{
	booking.KindNoServiceAvailable:  http.StatusNotFound,
	booking.KindPastDate:            http.StatusBadRequest,
	booking.KindSlotFull:            http.StatusBadRequest,
	booking.KindForbidden:           http.StatusForbidden,
	booking.KindInvalidOTP:          http.StatusBadRequest,
	booking.KindOTPNotFound:         http.StatusBadRequest,
	booking.KindInvalidStatus:       http.StatusBadRequest,
	booking.KindInvalidTransition:   http.StatusConflict,
	booking.KindNoBooking:           http.StatusBadRequest,
	booking.KindAlreadyBooked:       http.StatusConflict,
	booking.KindOutsideWorkingHours: http.StatusBadRequest,
	booking.KindValidation:          http.StatusBadRequest,
	booking.KindOrderNotFound:       http.StatusNotFound,
	booking.KindConcurrentUpdate:    http.StatusConflict,
}

// writeError maps service errors to status codes and the shared error body.
func writeError(c *gin.Context, err error) {
	if e, ok := booking.AsError(err); ok {
		status, known := kindStatus[e.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		getLogger(c).Info("Request rejected", zap.String("kind", string(e.Kind)), zap.String("message", e.Message))
		resp := utils.ErrorResponse{Kind: string(e.Kind), Message: e.Message}
		if e.NextAvailable != nil {
			resp.NextAvailable = e.NextAvailable
		}
		c.AbortWithStatusJSON(status, resp)
		return
	}

	switch {
	case errors.Is(err, team.ErrInvalidTeam):
		utils.JSONError(c, http.StatusBadRequest, string(booking.KindValidation), err.Error(), "")
	case errors.Is(err, team.ErrTeamNotFound):
		utils.JSONError(c, http.StatusNotFound, "TeamNotFound", err.Error(), "")
	case errors.Is(err, storage.ErrStorageDisabled):
		utils.JSONError(c, http.StatusServiceUnavailable, "StorageDisabled", "Sample image storage is not configured", "")
	default:
		getLogger(c).Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
			Kind:    "Internal",
			Message: "Internal Server Error",
		})
	}
}

// bindError reports a request that failed schema validation.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, string(booking.KindValidation), "Invalid request", err.Error())
}
