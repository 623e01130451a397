package server

import (
	"errors"

	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError maps an application error to the HTTP status class of the
// response. Anything that is not an AppError is a server failure.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "NOT_FOUND":
			return fiber.StatusNotFound
		}
	}
	return fiber.StatusInternalServerError
}
