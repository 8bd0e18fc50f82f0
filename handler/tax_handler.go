package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/tax"
)

// TaxHandler exposes the regime comparison calculator.
type TaxHandler struct {
	calc   *tax.Calculator
	logger zerolog.Logger
}

func NewTaxHandler(calc *tax.Calculator, logger zerolog.Logger) *TaxHandler {
	return &TaxHandler{
		calc:   calc,
		logger: logger,
	}
}

// Compare handles POST /tax/compare.
func (h *TaxHandler) Compare(c *gin.Context) {
	var req dto.TaxCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, "COMPARISON_FAILED", "Invalid request body", err)
		return
	}
	if req.GrossIncome < 0 {
		sendError(c, h.logger, http.StatusBadRequest, "COMPARISON_FAILED", "Gross income must not be negative", nil)
		return
	}

	comparison := h.calc.CompareRegimes(req.GrossIncome, req.Deductions)
	c.JSON(http.StatusOK, comparison)
}
