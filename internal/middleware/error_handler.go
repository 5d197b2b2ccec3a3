package middleware

import (
	"net/http"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as a dto.MessageResponse body. Domain
// sentinel errors reach here already mapped to echo.HTTPError by the
// handlers; anything else is a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.MessageResponse{Message: msg})
}
