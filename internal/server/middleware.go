package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitflow/internal/backup"
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/validation"
)

// requestLogger logs each request through the application logger.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = statusFor(err)
			}
		}
		logger.With("component", "http").Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"ip", c.IP(),
			"duration", time.Since(start),
		)
		return err
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, validation.ErrInvalidHabit),
		errors.Is(err, habits.ErrDuplicateName),
		errors.Is(err, habits.ErrInvalidDate),
		errors.Is(err, stats.ErrMalformedDate),
		errors.Is(err, backup.ErrInvalidExport):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders every error as {"error": "..."}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	msg := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code == fiber.StatusInternalServerError {
		logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		msg = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
