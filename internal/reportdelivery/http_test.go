package reportdelivery

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/internal/middleware"
	"github.com/go-fintrack/fintrack/pkg/errorspkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(service Service) *gin.Engine {
	handler := NewHandler(service)

	engine := gin.New()
	engine.Use(middleware.UserID())
	engine.GET("/dashboard", handler.Dashboard)
	engine.GET("/transactions", handler.Transactions)

	return engine
}

func TestDashboard(t *testing.T) {
	userID := int32(1)

	dashboard := domain.Dashboard{
		AvailableBalance: "70",
		TotalIncome:      "100",
		TotalExpense:     "30",
		Chart: []domain.MonthPoint{
			{Label: "January", Income: "0", Expense: "0"},
		},
	}

	testCases := []struct {
		name           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "OK",
			buildStubs: func(service *MockService) {
				service.EXPECT().Dashboard(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(dashboard, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"available_balance":"70"`,
		},
		{
			name: "InternalError",
			buildStubs: func(service *MockService) {
				service.EXPECT().Dashboard(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(domain.Dashboard{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set(middleware.UserIDHeader, "1")

			recorder := httptest.NewRecorder()
			newRouter(service).ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
			require.Contains(t, recorder.Body.String(), tc.wantBody)
		})
	}
}

func TestTransactions(t *testing.T) {
	userID := int32(1)

	entries := []domain.Transaction{
		{ID: 2, UserID: userID, Description: "groceries"},
		{ID: 1, UserID: userID, Description: "salary"},
	}

	testCases := []struct {
		name           string
		query          string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:  "OK",
			query: "?df=2023-01-01&dt=2023-01-31&s=groc",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transactions(gomock.Any(), gomock.Eq(userID), gomock.Eq("2023-01-01"), gomock.Eq("2023-01-31"), gomock.Eq("groc")).
					Times(1).
					Return(entries, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:  "NoFilters",
			query: "",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transactions(gomock.Any(), gomock.Eq(userID), gomock.Eq(""), gomock.Eq(""), gomock.Eq("")).
					Times(1).
					Return(entries, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:  "MalformedDateFrom",
			query: "?df=01-01-2023",
			buildStubs: func(service *MockService) {
				service.EXPECT().Transactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "DateFrom must match the 2006-01-02 format",
		},
		{
			name:  "InvalidDateRange",
			query: "?df=2023-02-01&dt=2023-01-01",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, domain.ErrInvalidDate)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidDate.Error(),
		},
		{
			name:  "InternalError",
			query: "",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transactions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			req := httptest.NewRequest(http.MethodGet, "/transactions"+tc.query, nil)
			req.Header.Set(middleware.UserIDHeader, "1")

			recorder := httptest.NewRecorder()
			newRouter(service).ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantError != "" {
				require.Contains(t, recorder.Body.String(), tc.wantError)
			}
		})
	}
}
