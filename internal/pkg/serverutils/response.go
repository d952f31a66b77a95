package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nix128/asisten-pengawasan-apip/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Code:  code,
		Error: message,
	}
}

var validate = validator.New()

// ValidateRequest menjalankan tag `validate` pada DTO dan membungkus pesan
// pelanggarannya jadi satu error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				msgs = append(msgs, fmt.Sprintf("field %s failed on rule %s", ve.Field(), ve.Tag()))
			}
			return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandlerMiddleware memetakan sentinel error service ke status HTTP.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			code = fiber.StatusUnauthorized
		case errors.Is(err, service.ErrNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, service.ErrUnsupportedFileType),
			errors.Is(err, service.ErrEmptyDocument),
			errors.Is(err, service.ErrEmptyPrompt):
			code = fiber.StatusBadRequest
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
