package models

// Request schemas validated at the HTTP boundary.

type SlotQuery struct {
	PostalCode string `form:"postalCode" binding:"required"`
	Date       string `form:"date" binding:"required"`
}

type NextSlotQuery struct {
	PostalCode string `form:"postalCode" binding:"required"`
	Date       string `form:"date" binding:"required"`
	AfterHour  *int   `form:"afterHour" binding:"required,min=-1,max=23"`
}

type BookSlotRequest struct {
	OrderID    string `json:"orderId" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Hour       *int   `json:"hour" binding:"required,min=0,max=23"`
}

type VerifyOTPRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	OTP     string `json:"otp" binding:"required"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type SampleUpdateRequest struct {
	Collected bool   `json:"collected"`
	ImageRef  string `json:"imageRef"`
	Notes     string `json:"notes"`
	IsRandom  bool   `json:"isRandom"`
	NotGiven  bool   `json:"notGiven"`
}

type PaymentRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
	Method string   `json:"method"`
}

type HandoverRequest struct {
	Sample bool `json:"sample"`
	Amount bool `json:"amount"`
}

type RunQuery struct {
	TeamID string `form:"teamId" binding:"required"`
	Date   string `form:"date" binding:"required"`
}

type CreateTeamRequest struct {
	Name               string   `json:"name" binding:"required"`
	PostalCodes        []string `json:"postalCodes" binding:"required,min=1,dive,required"`
	StartHour          *int     `json:"startHour" binding:"required,min=0,max=23"`
	EndHour            *int     `json:"endHour" binding:"required,min=1,max=24"`
	MaxBookingsPerHour int      `json:"maxBookingsPerHour" binding:"required,min=1"`
	Priority           int      `json:"priority"`
	Active             *bool    `json:"active"`
}
