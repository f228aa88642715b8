// Package reportdelivery manages delivery layer of dashboard and history reads.
package reportdelivery

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

// Service provides service layer interface needed by report delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package reportdelivery
type Service interface {
	Dashboard(ctx context.Context, userID int32) (domain.Dashboard, error)
	Transactions(ctx context.Context, userID int32, df, dt, search string) ([]domain.Transaction, error)
}

// Handler facilitates report delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns report handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type dashboardResponse struct {
	Data domain.Dashboard `json:"data,omitempty"`
}

// Dashboard handles http request to get the dashboard snapshot.
func (h *Handler) Dashboard(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	userID := gctx.MustGet(middleware.UserIDKey).(int32)

	d, err := h.service.Dashboard(ctx, userID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, dashboardResponse{Data: d})
}

type listRequest struct {
	DateFrom string `form:"df" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"dt" binding:"omitempty,datetime=2006-01-02"`
	Search   string `form:"s"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}
type transactionsResponse struct {
	Data dataTransactions `json:"data,omitempty"`
}

// Transactions handles http request to list history entries.
func (h *Handler) Transactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	transactions, err := h.service.Transactions(ctx, userID, req.DateFrom, req.DateTo, req.Search)
	if err != nil {
		if err == domain.ErrInvalidDate {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, transactionsResponse{Data: dataTransactions{transactions}})
}
