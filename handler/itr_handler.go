package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/service"
)

// ITRHandler exposes document generation, overrides and the filing
// review over HTTP.
type ITRHandler struct {
	mapper      *service.ITRMapper
	overrides   *service.OverrideService
	recommender *service.Recommender
	logger      zerolog.Logger
}

func NewITRHandler(mapper *service.ITRMapper, overrides *service.OverrideService, recommender *service.Recommender, logger zerolog.Logger) *ITRHandler {
	return &ITRHandler{
		mapper:      mapper,
		overrides:   overrides,
		recommender: recommender,
		logger:      logger,
	}
}

// Generate handles POST /itr/generate.
func (h *ITRHandler) Generate(c *gin.Context) {
	var req dto.GenerateITRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, "GENERATION_FAILED", "Invalid request body", err)
		return
	}

	doc, err := h.mapper.MapToITR(req.Record)
	if err != nil {
		sendError(c, h.logger, http.StatusUnprocessableEntity, "GENERATION_FAILED", "Failed to build ITR document", err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateITRResponse{Document: doc})
}

// ApplyOverrides handles POST /itr/overrides.
func (h *ITRHandler) ApplyOverrides(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, "OVERRIDE_FAILED", "Invalid request body", err)
		return
	}

	doc, skipped, err := h.overrides.Apply(req.Document, req.Overrides)
	if err != nil {
		sendError(c, h.logger, http.StatusInternalServerError, "OVERRIDE_FAILED", "Failed to apply overrides", err)
		return
	}

	if len(skipped) > 0 {
		h.logger.Warn().Strs("skipped", skipped).Msg("some override paths were skipped")
	}
	c.JSON(http.StatusOK, dto.OverrideResponse{Document: doc, Skipped: skipped})
}

// Recommendations handles POST /itr/recommendations.
func (h *ITRHandler) Recommendations(c *gin.Context) {
	var req dto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.logger, http.StatusBadRequest, "RECOMMENDATION_FAILED", "Invalid request body", err)
		return
	}

	recs := h.recommender.Generate(req.Record, req.Document)
	c.JSON(http.StatusOK, recs)
}
