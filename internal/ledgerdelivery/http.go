// Package ledgerdelivery manages delivery layer of ledger operations.
package ledgerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/internal/middleware"
	"github.com/go-fintrack/fintrack/pkg/errorspkg"
	"github.com/go-fintrack/fintrack/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Spend(ctx context.Context, arg domain.SpendParams) (domain.SpendTxResult, error)
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type spendURI struct {
	AccountID int32 `uri:"id" binding:"required,min=1"`
}

type spendRequest struct {
	Description string `json:"description" binding:"required"`
	Source      string `json:"source" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

type spendData struct {
	Account domain.Account     `json:"account"`
	Entry   domain.Transaction `json:"entry"`
}

type spendResponse struct {
	Data spendData `json:"data,omitempty"`
}

// Spend handles http request to debit an account.
func (h *Handler) Spend(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri spendURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	var req spendRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	userID := gctx.MustGet(middleware.UserIDKey).(int32)

	result, err := h.service.Spend(ctx, domain.SpendParams{
		UserID:      userID,
		AccountID:   uri.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		Source:      req.Source,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNegativeAmount, domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, spendResponse{
		Data: spendData{
			Account: result.Account,
			Entry:   result.Entry,
		},
	})
}

type transferRequest struct {
	FromAccount int32  `json:"from_account" binding:"required,min=1"`
	ToAccount   int32  `json:"to_account" binding:"required,min=1"`
	Amount      string `json:"amount" binding:"required"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type transferResponse struct {
	Data transferData `json:"data,omitempty"`
}

// Transfer handles http request to move money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	userID := gctx.MustGet(middleware.UserIDKey).(int32)

	result, err := h.service.Transfer(ctx, domain.TransferParams{
		UserID:        userID,
		FromAccountID: req.FromAccount,
		ToAccountID:   req.ToAccount,
		Amount:        req.Amount,
	})
	if err != nil {
		switch err {
		case domain.ErrSameAccountTransfer, domain.ErrInvalidAmount,
			domain.ErrNegativeAmount, domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrSenderNotFound, domain.ErrRecipientNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, transferResponse{
		Data: transferData{Transfer: result},
	})
}
