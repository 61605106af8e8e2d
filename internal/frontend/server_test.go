package frontend

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/finance-planner/internal/client"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, loader OverviewLoader) http.Handler {
	t.Helper()
	srv, err := NewServer(loader, "http://localhost:8080/")
	require.NoError(t, err)

	r := chi.NewRouter()
	srv.RegisterRoutes(r)
	return r
}

func postLogin(h http.Handler, profile string) *httptest.ResponseRecorder {
	form := url.Values{"profile": {profile}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_Index(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newTestRouter(t, NewMockOverviewLoader(ctrl))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="page-login" class="page active"`)
	assert.Contains(t, body, `id="page-profile-overview" class="page"`)
	assert.NotContains(t, body, `class="alert"`)
}

func TestServer_Login(t *testing.T) {
	tests := []struct {
		name               string
		profile            string
		setupMocks         func(m *MockOverviewLoader)
		expectedStatusCode int
		expectedContains   []string
	}{
		{
			name:               "empty profile",
			profile:            "",
			setupMocks:         func(m *MockOverviewLoader) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedContains:   []string{AlertEmptyProfile, `id="page-login" class="page active"`},
		},
		{
			name:    "overview loaded",
			profile: "alice",
			setupMocks: func(m *MockOverviewLoader) {
				m.EXPECT().LoadOverview(gomock.Any(), "alice").Return(&client.Overview{
					Transactions: []models.Transaction{
						{TransactionID: "tra:1", Label: "Salary", Amount: 1000, Tags: []string{"work"}},
						{TransactionID: "tra:2", Label: "Rent", Amount: -900, Tags: []string{}},
					},
					Stats: models.TransactionStats{Sum: 100, In: 1000, Out: -900, Count: 2},
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedContains: []string{
				`id="page-profile-overview" class="page active"`,
				`id="page-login" class="page"`,
				"<li>Salary: 1000 [work]</li>",
				"<li>Rent: 900</li>",
				"<li>Sum: 100</li>",
				"<li>Count: 2</li>",
			},
		},
		{
			name:    "backend failure",
			profile: "alice",
			setupMocks: func(m *MockOverviewLoader) {
				m.EXPECT().LoadOverview(gomock.Any(), "alice").Return(nil, &client.APIError{Status: 500, Code: "UnknownError", Message: "boom"})
			},
			expectedStatusCode: http.StatusBadGateway,
			expectedContains:   []string{`class="alert"`, "boom", `id="page-login" class="page active"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLoader := NewMockOverviewLoader(ctrl)
			tt.setupMocks(mockLoader)

			rr := postLogin(newTestRouter(t, mockLoader), tt.profile)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
			body := rr.Body.String()
			for _, s := range tt.expectedContains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestServer_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := NewMockOverviewLoader(ctrl)
	mockLoader.EXPECT().LoadOverview(gomock.Any(), "Jane Doe").Return(&client.Overview{}, nil)

	rr := httptest.NewRecorder()
	newTestRouter(t, mockLoader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profiles/Jane%20Doe", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="page-profile-overview" class="page active"`)
	assert.Contains(t, rr.Body.String(), "<li>Sum: 0</li>")
}

func TestServer_VarsJS(t *testing.T) {
	ctrl := gomock.NewController(t)
	rr := httptest.NewRecorder()
	newTestRouter(t, NewMockOverviewLoader(ctrl)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/vars.js", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/javascript", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `"http://localhost:8080"`)
	assert.NotContains(t, rr.Body.String(), BackendURLPlaceholder)
}

func TestServer_StaticAndHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newTestRouter(t, NewMockOverviewLoader(ctrl))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/script.js", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), "function showPage(id)")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
