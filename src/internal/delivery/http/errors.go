package http

import (
	"errors"

	"finance-service/src/internal/usecase"
	httpError "finance-service/src/pkg/http-error"
	"finance-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// responseError maps ledger errors onto HTTP statuses.
func responseError(err error, ctx *fiber.Ctx) error {
	var (
		validationErr  *usecase.ValidationError
		notFoundErr    *usecase.NotFoundError
		conflictErr    *usecase.ConflictError
		partialErr     *usecase.PartialWriteError
		persistenceErr *usecase.PersistenceError
	)

	var errObj *httpError.CommonError
	switch {
	case errors.As(err, &validationErr):
		errObj = httpError.NewBadRequest()
		errObj.Data = fiber.Map{"field": validationErr.Field}
	case errors.As(err, &notFoundErr):
		errObj = httpError.NewNotFound()
	case errors.As(err, &conflictErr):
		errObj = httpError.NewConflict()
	case errors.As(err, &partialErr):
		errObj = httpError.NewInternalServerError()
		errObj.Data = fiber.Map{"intentId": partialErr.IntentID}
	case errors.As(err, &persistenceErr):
		errObj = httpError.NewServiceUnavailable()
	default:
		return utils.ResponseError(err, ctx)
	}
	errObj.Message = err.Error()
	return utils.ResponseError(errObj, ctx)
}
