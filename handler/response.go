package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-chat/dto/res"
	"campus-chat/usecase"
)

const genericFailure = "something went wrong, please try again"

func ok[T any](ctx *fiber.Ctx, message string, data T) error {
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewErrorHandler turns every handler failure into a success:false body.
// Only routing errors raised by fiber itself keep their status code.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, message := fiber.StatusOK, failureMessage(err)

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status, message = fiberErr.Code, fiberErr.Message
		case message == genericFailure:
			log.WithError(err).
				WithField("path", ctx.Path()).
				Errorf("Unhandled error: %v", err)
		}

		return ctx.Status(status).JSON(res.ErrorResponse{Success: false, Message: message})
	}
}

func failureMessage(err error) string {
	var appErr *usecase.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return fmt.Sprintf("invalid field %s: failed on %s", first.Field(), first.Tag())
	}
	return genericFailure
}
