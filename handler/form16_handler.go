package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/service"
)

// Form16Handler exposes the extraction pipeline over HTTP.
type Form16Handler struct {
	form16      *service.Form16Service
	maxFileSize int64
	logger      zerolog.Logger
}

func NewForm16Handler(form16 *service.Form16Service, maxFileSize int64, logger zerolog.Logger) *Form16Handler {
	return &Form16Handler{
		form16:      form16,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Extract handles POST /form16/extract. The Form-16 PDF arrives as a
// multipart file under the "file" field.
func (h *Form16Handler) Extract(c *gin.Context) {
	h.logger.Info().Msg("received Form-16 extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, h.logger, http.StatusBadRequest, "EXTRACTION_FAILED", "No file provided", err)
		return
	}
	if fileHeader.Size > h.maxFileSize {
		sendError(c, h.logger, http.StatusRequestEntityTooLarge, "EXTRACTION_FAILED", "File exceeds the size limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		sendError(c, h.logger, http.StatusBadRequest, "EXTRACTION_FAILED", "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, "EXTRACTION_FAILED", "Failed to read uploaded file", err)
		return
	}

	record, err := h.form16.Extract(c.Request.Context(), pdfData)
	if err != nil {
		sendError(c, h.logger, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", "Failed to extract Form-16 data", err)
		return
	}

	h.logger.Info().Bool("filing_ready", record.FilingReady).Msg("Form-16 extraction completed")
	c.JSON(http.StatusOK, dto.ExtractResponse{
		Record:      record,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}
