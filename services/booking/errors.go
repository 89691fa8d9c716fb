package booking

import (
	"errors"
	"fmt"

	"homecollect/models"
)

// ErrorKind names a domain failure; handlers map kinds to status codes.
type ErrorKind string

const (
	KindNoServiceAvailable  ErrorKind = "NoServiceAvailable"
	KindPastDate            ErrorKind = "PastDate"
	KindSlotFull            ErrorKind = "SlotFull"
	KindForbidden           ErrorKind = "Forbidden"
	KindInvalidOTP          ErrorKind = "InvalidOTP"
	KindOTPNotFound         ErrorKind = "OTPNotFound"
	KindInvalidStatus       ErrorKind = "InvalidStatus"
	KindInvalidTransition   ErrorKind = "InvalidTransition"
	KindNoBooking           ErrorKind = "NoBooking"
	KindAlreadyBooked       ErrorKind = "AlreadyBooked"
	KindOutsideWorkingHours ErrorKind = "OutsideWorkingHours"
	KindValidation          ErrorKind = "Validation"
	KindOrderNotFound       ErrorKind = "OrderNotFound"
	KindConcurrentUpdate    ErrorKind = "ConcurrentUpdate"
)

// Error is a typed booking failure. Two errors match under errors.Is when
// their kinds are equal, so the sentinels below work as match targets.
type Error struct {
	Kind    ErrorKind
	Message string
	// NextAvailable is set on SlotFull.
	NextAvailable *models.NextSlot
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNoServiceAvailable  = &Error{Kind: KindNoServiceAvailable, Message: "home collection is not available for this postal code"}
	ErrPastDate            = &Error{Kind: KindPastDate, Message: "cannot book for a past date"}
	ErrSlotFull            = &Error{Kind: KindSlotFull, Message: "this time slot is fully booked"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "not allowed to act on this order"}
	ErrInvalidOTP          = &Error{Kind: KindInvalidOTP, Message: "invalid OTP"}
	ErrOTPNotFound         = &Error{Kind: KindOTPNotFound, Message: "no OTP has been issued for this booking"}
	ErrInvalidStatus       = &Error{Kind: KindInvalidStatus, Message: "unknown booking status"}
	ErrInvalidTransition   = &Error{Kind: KindInvalidTransition, Message: "status change not allowed"}
	ErrNoBooking           = &Error{Kind: KindNoBooking, Message: "order has no active booking"}
	ErrAlreadyBooked       = &Error{Kind: KindAlreadyBooked, Message: "order already has an active booking"}
	ErrOutsideWorkingHours = &Error{Kind: KindOutsideWorkingHours, Message: "hour is outside the team's working hours"}
	ErrValidation          = &Error{Kind: KindValidation, Message: "invalid request"}
	ErrOrderNotFound       = &Error{Kind: KindOrderNotFound, Message: "order not found"}
	ErrConcurrentUpdate    = &Error{Kind: KindConcurrentUpdate, Message: "booking was changed by another request, retry"}
)

// NewError builds an error of kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func slotFullError(next *models.NextSlot) *Error {
	return &Error{Kind: KindSlotFull, Message: ErrSlotFull.Message, NextAvailable: next}
}

// AsError extracts the typed error, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
