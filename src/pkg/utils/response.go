package utils

import (
	"errors"

	httpError "finance-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

type BaseResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Response(data any, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(BaseResponse{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	var data any

	var commonErr *httpError.CommonError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &commonErr):
		code = commonErr.Code
		message = commonErr.Message
		data = commonErr.Data
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return ctx.Status(code).JSON(BaseResponse{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	})
}
