package accountdelivery

import (
	"bytes"
	"encoding/json"
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
	engine.POST("/accounts", handler.Create)
	engine.GET("/accounts/:id", handler.Get)
	engine.GET("/accounts", handler.List)

	return engine
}

func TestCreate(t *testing.T) {
	userID := int32(1)

	account := domain.Account{ID: 1, UserID: userID, Name: "Main", Balance: "100"}

	type requestBody struct {
		Name    string `json:"name,omitempty"`
		Balance string `json:"balance,omitempty"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			requestBody: requestBody{
				Name:    "Main",
				Balance: "100",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateAccountParams{
						UserID:  userID,
						Name:    "Main",
						Balance: "100",
					})).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MissingName",
			requestBody: requestBody{
				Balance: "100",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name is required",
		},
		{
			name: "NegativeBalance",
			requestBody: requestBody{
				Name:    "Main",
				Balance: "-100",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrNegativeAmount)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrNegativeAmount.Error(),
		},
		{
			name: "InternalError",
			requestBody: requestBody{
				Name:    "Main",
				Balance: "100",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
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

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
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

func TestGet(t *testing.T) {
	userID := int32(1)

	account := domain.Account{ID: 10, UserID: userID, Name: "Main", Balance: "100"}

	testCases := []struct {
		name           string
		url            string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			url:  "/accounts/10",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Eq(int32(10)), gomock.Eq(userID)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidID",
			url:  "/accounts/-1",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ID must be greater or equal to 1",
		},
		{
			name: "NotFound",
			url:  "/accounts/10",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name: "InternalError",
			url:  "/accounts/10",
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
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

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
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

func TestList(t *testing.T) {
	userID := int32(1)

	accounts := []domain.Account{
		{ID: 1, UserID: userID, Name: "Main", Balance: "100"},
		{ID: 2, UserID: userID, Name: "Savings", Balance: "500"},
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
			query: "?page_id=1&page_size=10",
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any(), gomock.Eq(userID), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Times(1).
					Return(accounts, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:  "MissingPageID",
			query: "?page_size=10",
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "PageID is required",
		},
		{
			name:  "PageSizeTooLarge",
			query: "?page_id=1&page_size=500",
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "PageSize must be less or equal to 100",
		},
		{
			name:  "InternalError",
			query: "?page_id=1&page_size=10",
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
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

			req := httptest.NewRequest(http.MethodGet, "/accounts"+tc.query, nil)
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
