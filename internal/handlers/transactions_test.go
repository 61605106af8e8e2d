package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/sbilibin2017/finance-planner/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(method, pattern, target string, body []byte, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestListTransactionsHandler(t *testing.T) {
	tests := []struct {
		name               string
		setupMocks         func(m *MockTransactionLister)
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name: "transactions found",
			setupMocks: func(m *MockTransactionLister) {
				m.EXPECT().ListTransactions(gomock.Any(), "alice").Return([]models.Transaction{
					{TransactionID: "tra:1", ProfileID: "pro:1", Label: "Salary", Amount: 1000, Tags: []string{"work"}},
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"data":[{"id":"tra:1","label":"Salary","amount":1000,"tags":["work"]}]}`,
		},
		{
			name: "no transactions",
			setupMocks: func(m *MockTransactionLister) {
				m.EXPECT().ListTransactions(gomock.Any(), "alice").Return(nil, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"data":[]}`,
		},
		{
			name: "service error",
			setupMocks: func(m *MockTransactionLister) {
				m.EXPECT().ListTransactions(gomock.Any(), "alice").Return(nil, assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody:       `{"code":"UnknownError","error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLister := NewMockTransactionLister(ctrl)
			tt.setupMocks(mockLister)

			rr := serve(http.MethodGet, "/{profile}/transactions", "/alice/transactions", nil, NewListTransactionsHandler(mockLister))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestAddTransactionHandler(t *testing.T) {
	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(m *MockTransactionAdder)
		expectedStatusCode int
		expectedCode       string
	}{
		{
			name:        "transaction created",
			requestBody: AddTransactionRequest{Label: "Groceries", Amount: -2500, Tags: []string{"food"}},
			setupMocks: func(m *MockTransactionAdder) {
				m.EXPECT().AddTransaction(gomock.Any(), "alice", "Groceries", int64(-2500), []string{"food"}).
					Return(&models.Transaction{TransactionID: "tra:1", Label: "Groceries", Amount: -2500, Tags: []string{"food"}}, nil)
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "invalid request body",
			requestBody:        "invalid-json",
			setupMocks:         func(m *MockTransactionAdder) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       CodeInvalidRequest,
		},
		{
			name:        "invalid label",
			requestBody: AddTransactionRequest{Amount: 10},
			setupMocks: func(m *MockTransactionAdder) {
				m.EXPECT().AddTransaction(gomock.Any(), "alice", "", int64(10), gomock.Nil()).Return(nil, services.ErrInvalidLabel)
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       CodeInvalidLabel,
		},
		{
			name:        "invalid amount",
			requestBody: AddTransactionRequest{Label: "x"},
			setupMocks: func(m *MockTransactionAdder) {
				m.EXPECT().AddTransaction(gomock.Any(), "alice", "x", int64(0), gomock.Nil()).Return(nil, services.ErrInvalidAmount)
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       CodeInvalidAmount,
		},
		{
			name:        "invalid tag",
			requestBody: AddTransactionRequest{Label: "x", Amount: 1, Tags: []string{""}},
			setupMocks: func(m *MockTransactionAdder) {
				m.EXPECT().AddTransaction(gomock.Any(), "alice", "x", int64(1), []string{""}).
					Return(nil, fmt.Errorf("%w: transaction tag [0] must not be empty", services.ErrInvalidTag))
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       CodeInvalidTag,
		},
		{
			name:        "internal server error",
			requestBody: AddTransactionRequest{Label: "x", Amount: 1},
			setupMocks: func(m *MockTransactionAdder) {
				m.EXPECT().AddTransaction(gomock.Any(), "alice", "x", int64(1), gomock.Nil()).Return(nil, assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       CodeUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAdder := NewMockTransactionAdder(ctrl)
			tt.setupMocks(mockAdder)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			rr := serve(http.MethodPost, "/{profile}/transactions", "/alice/transactions", bodyBytes, NewAddTransactionHandler(mockAdder))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if tt.expectedCode == "" {
				var tr models.Transaction
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&tr))
				assert.Equal(t, "tra:1", tr.TransactionID)
				return
			}
			assert.Equal(t, tt.expectedCode, decodeError(t, rr).Code)
		})
	}
}

func TestUpdateTransactionHandler(t *testing.T) {
	tests := []struct {
		name               string
		requestBody        string
		setupMocks         func(m *MockTransactionUpdater)
		expectedStatusCode int
		expectedCode       string
	}{
		{
			name:        "transaction updated",
			requestBody: `{"amount":-3500}`,
			setupMocks: func(m *MockTransactionUpdater) {
				m.EXPECT().UpdateTransaction(gomock.Any(), "alice", "tra:1", models.TransactionUpdate{Amount: -3500}).
					Return(&models.Transaction{TransactionID: "tra:1", Label: "Gym", Amount: -3500, Tags: []string{}}, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "invalid request body",
			requestBody:        `{"amount":"lots"}`,
			setupMocks:         func(m *MockTransactionUpdater) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       CodeInvalidRequest,
		},
		{
			name:        "unknown profile",
			requestBody: `{"label":"x"}`,
			setupMocks: func(m *MockTransactionUpdater) {
				m.EXPECT().UpdateTransaction(gomock.Any(), "alice", "tra:1", gomock.Any()).Return(nil, services.ErrProfileNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       CodeUnknownProfile,
		},
		{
			name:        "unknown transaction",
			requestBody: `{"label":"x"}`,
			setupMocks: func(m *MockTransactionUpdater) {
				m.EXPECT().UpdateTransaction(gomock.Any(), "alice", "tra:1", gomock.Any()).Return(nil, services.ErrTransactionNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       CodeUnknownTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUpdater := NewMockTransactionUpdater(ctrl)
			tt.setupMocks(mockUpdater)

			rr := serve(http.MethodPut, "/{profile}/transactions/{id}", "/alice/transactions/tra:1", []byte(tt.requestBody), NewUpdateTransactionHandler(mockUpdater))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			if tt.expectedCode == "" {
				assert.JSONEq(t, `{"id":"tra:1","label":"Gym","amount":-3500,"tags":[]}`, rr.Body.String())
				return
			}
			assert.Equal(t, tt.expectedCode, decodeError(t, rr).Code)
		})
	}
}

func TestGetStatsHandler(t *testing.T) {
	tests := []struct {
		name               string
		profile            string
		setupMocks         func(m *MockStatsGetter)
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:    "stats computed",
			profile: "alice",
			setupMocks: func(m *MockStatsGetter) {
				m.EXPECT().GetStats(gomock.Any(), "alice").Return(&models.TransactionStats{Sum: 97, In: 302, Out: -205, Count: 5}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"sum":97,"in":302,"out":-205,"count":5}`,
		},
		{
			name:    "escaped profile name",
			profile: "Jane%20Doe",
			setupMocks: func(m *MockStatsGetter) {
				m.EXPECT().GetStats(gomock.Any(), "Jane Doe").Return(&models.TransactionStats{}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"sum":0,"in":0,"out":0,"count":0}`,
		},
		{
			name:    "invalid profile name",
			profile: "%20",
			setupMocks: func(m *MockStatsGetter) {
				m.EXPECT().GetStats(gomock.Any(), " ").Return(nil, services.ErrInvalidProfileName)
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       `{"code":"InvalidName","error":"missing profile name"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockGetter := NewMockStatsGetter(ctrl)
			tt.setupMocks(mockGetter)

			rr := serve(http.MethodGet, "/{profile}/transactions/stats", "/"+tt.profile+"/transactions/stats", nil, NewGetStatsHandler(mockGetter))

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestHandlers_EscapedSlashInParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLister := NewMockTransactionLister(ctrl)
	mockLister.EXPECT().ListTransactions(gomock.Any(), "home/rent").Return(nil, nil)

	rr := serve(http.MethodGet, "/{profile}/transactions", "/home%2Frent/transactions", nil, NewListTransactionsHandler(mockLister))
	assert.Equal(t, http.StatusOK, rr.Code)

	mockUpdater := NewMockTransactionUpdater(ctrl)
	mockUpdater.EXPECT().UpdateTransaction(gomock.Any(), "home/rent", "tra:a/b", models.TransactionUpdate{Label: "Rent"}).
		Return(&models.Transaction{TransactionID: "tra:a/b", Label: "Rent", Amount: -900, Tags: []string{}}, nil)

	rr = serve(http.MethodPut, "/{profile}/transactions/{id}", "/home%2Frent/transactions/tra:a%2Fb", []byte(`{"label":"Rent"}`), NewUpdateTransactionHandler(mockUpdater))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlers_MalformedEscapeInProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := chi.NewRouter()
	r.Get("/{profile}/transactions/stats", NewGetStatsHandler(NewMockStatsGetter(ctrl)))

	req := httptest.NewRequest(http.MethodGet, "/x/transactions/stats", nil)
	req.URL.RawPath = "/a%2F%zz/transactions/stats"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeInvalidName, decodeError(t, rr).Code)
}

func TestWriteError_LogsRequestID(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	original := logger.Log
	logger.Log = zap.New(core).Sugar()
	defer func() { logger.Log = original }()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGetter := NewMockStatsGetter(ctrl)
	mockGetter.EXPECT().GetStats(gomock.Any(), "alice").Return(nil, assert.AnError)

	r := chi.NewRouter()
	r.Use(middlewares.LoggingMiddleware(zap.NewNop().Sugar()))
	r.Get("/{profile}/transactions/stats", NewGetStatsHandler(mockGetter))

	req := httptest.NewRequest(http.MethodGet, "/alice/transactions/stats", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}
