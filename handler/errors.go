package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/dto"
)

// sendError writes a structured error response and logs the cause.
func sendError(c *gin.Context, logger zerolog.Logger, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		logger.Error().Err(err).Str("code", code).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
