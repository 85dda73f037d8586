package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finance-service/src/internal/delivery/http/middleware"
	"finance-service/src/internal/entity"
	"finance-service/src/internal/model"
	"finance-service/src/internal/model/converter"
	"finance-service/src/internal/usecase"
	"finance-service/src/pkg/log"
	"finance-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const streamHeartbeat = 15 * time.Second

type FinanceController struct {
	Log     log.Log
	UseCase *usecase.LedgerUseCase
}

func NewFinanceController(useCase *usecase.LedgerUseCase, logger log.Log) *FinanceController {
	return &FinanceController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *FinanceController) parseDriverMoney(ctx *fiber.Ctx) (*model.DriverMoneyRequest, error) {
	auth := middleware.GetUser(ctx)
	request := new(model.DriverMoneyRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("FinanceController.parseDriverMoney", "Failed to parse request body", "error", err.Error())
		return nil, &usecase.ValidationError{Field: "body", Message: err.Error()}
	}
	request.DriverType = ctx.Params("driverType")
	request.DriverID = ctx.Params("driverId")
	request.ProcessedBy = auth.UserID
	return request, nil
}

func (c *FinanceController) RecordDriverPayment(ctx *fiber.Ctx) error {
	request, err := c.parseDriverMoney(ctx)
	if err != nil {
		return responseError(err, ctx)
	}
	result, err := c.UseCase.RecordDriverPayment(ctx.Context(), request)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(converter.RecordToResponse(result), "Driver Payment Recorded", fiber.StatusCreated, ctx)
}

func (c *FinanceController) RecordDriverCollection(ctx *fiber.Ctx) error {
	request, err := c.parseDriverMoney(ctx)
	if err != nil {
		return responseError(err, ctx)
	}
	result, err := c.UseCase.RecordDriverCollection(ctx.Context(), request)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(converter.RecordToResponse(result), "Driver Collection Recorded", fiber.StatusCreated, ctx)
}

func (c *FinanceController) RecordManualExpense(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.ManualExpenseRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("FinanceController.RecordManualExpense", "Failed to parse request body", "error", err.Error())
		return responseError(&usecase.ValidationError{Field: "body", Message: err.Error()}, ctx)
	}
	request.ProcessedBy = auth.UserID

	result, err := c.UseCase.RecordManualExpense(ctx.Context(), request)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(converter.RecordToResponse(result), "Manual Expense Recorded", fiber.StatusCreated, ctx)
}

func (c *FinanceController) RecordReservationCompletion(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := &model.ReservationCompletionRequest{
		ReservationID: ctx.Params("reservationId"),
		ProcessedBy:   auth.UserID,
	}
	result, err := c.UseCase.RecordReservationCompletion(ctx.Context(), request)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(converter.RecordToResponse(result), "Reservation Completion Recorded", fiber.StatusCreated, ctx)
}

func (c *FinanceController) ListTransactions(ctx *fiber.Ctx) error {
	request := new(model.ListTransactionsRequest)
	if err := ctx.QueryParser(request); err != nil {
		return responseError(&usecase.ValidationError{Field: "query", Message: err.Error()}, ctx)
	}
	txns, err := c.UseCase.ListTransactions(ctx.Context(), request)
	if err != nil {
		return responseError(err, ctx)
	}

	return utils.Response(txns, "List Transactions", fiber.StatusOK, ctx)
}

// StreamLedger pushes appended ledger records as server-sent events.
func (c *FinanceController) StreamLedger(ctx *fiber.Ctx) error {
	records := make(chan entity.LedgerRecord, 64)
	streamCtx, cancel := context.WithCancel(context.Background())
	unsubscribe, err := c.UseCase.SubscribeLedger(streamCtx, func(record entity.LedgerRecord) {
		select {
		case records <- record:
		default:
			c.Log.Error("FinanceController.StreamLedger", "slow consumer, dropping record", "stream", record.ID)
		}
	})
	if err != nil {
		cancel()
		return responseError(err, ctx)
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer unsubscribe()
		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case record := <-records:
				data, err := json.Marshal(record)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: ledger\ndata: %s\n\n", data)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}
