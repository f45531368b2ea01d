package serverutils

import (
	"errors"
	"strings"

	"brainmode-be/internal/pkg/logger"
	"brainmode-be/internal/repository/contract"
	"brainmode-be/pkg/brain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to an HTTP status.
func StatusFor(err error) int {
	var brainErr *brain.Error
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, contract.ErrContextNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, contract.ErrContextExists):
		return fiber.StatusConflict
	case errors.As(err, &brainErr):
		switch brainErr.Kind {
		case brain.KindWrongMode:
			return fiber.StatusConflict
		default:
			return fiber.StatusUnprocessableEntity
		}
	case errors.As(err, &validationErrs):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware turns handler errors into JSON error responses. The message is the
// same "Error: ..." text the editor shows, and it lands in the message history.
func ErrorHandlerMiddleware(messenger *logger.Messenger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusFor(err)
		text := err.Error()
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fe.Field()+" failed "+fe.Tag())
			}
			text = "invalid request: " + strings.Join(fields, ", ")
		}
		if status == fiber.StatusInternalServerError {
			// Internal details stay in the log.
			messenger.ErrorFrom(err)
			text = "internal error"
		}

		return ctx.Status(status).JSON(ErrorResponse(status, messenger.Error("%s", text)))
	}
}
