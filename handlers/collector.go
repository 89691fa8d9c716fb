package handlers

import (
	"net/http"

	"homecollect/models"
	"homecollect/services/collector"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxSampleImageBytes caps multipart sample photo uploads.
const maxSampleImageBytes = 10 << 20

// CollectorHandler exposes the field operations of a collection run.
type CollectorHandler struct {
	Collector collector.CollectorService
}

func NewCollectorHandler(svc collector.CollectorService) *CollectorHandler {
	return &CollectorHandler{Collector: svc}
}

// ListRun handles GET /api/collector/runs.
func (h *CollectorHandler) ListRun(c *gin.Context) {
	var q models.RunQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	run, err := h.Collector.ListRun(c.Request.Context(), q.TeamID, q.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// RecordSample handles PUT /api/collector/bookings/:orderId/samples/:type.
func (h *CollectorHandler) RecordSample(c *gin.Context) {
	var req models.SampleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Collector.RecordSample(c.Request.Context(), c.Param("orderId"), c.Param("type"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"samples": b.Samples, "status": b.Status})
}

// UploadSampleImage handles POST /api/collector/bookings/:orderId/samples/:type/image
// with the photo in the "file" form field.
func (h *CollectorHandler) UploadSampleImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSampleImageBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		bindError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		bindError(c, err)
		return
	}
	defer file.Close()

	orderID, sampleType := c.Param("orderId"), c.Param("type")
	b, err := h.Collector.UploadSampleImage(c.Request.Context(), orderID, sampleType, file)
	if err != nil {
		writeError(c, err)
		return
	}
	getLogger(c).Info("Sample image stored", zap.String("orderId", orderID), zap.String("type", sampleType))
	c.JSON(http.StatusOK, gin.H{"samples": b.Samples})
}

// RecordPayment handles PUT /api/collector/bookings/:orderId/payment.
func (h *CollectorHandler) RecordPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.Collector.RecordPayment(c.Request.Context(), c.Param("orderId"), *req.Amount, req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": b.Payment})
}

// Handover handles PUT /api/collector/bookings/:orderId/handover.
func (h *CollectorHandler) Handover(c *gin.Context) {
	var req models.HandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Collector.Handover(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
