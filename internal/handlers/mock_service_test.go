package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockAuth accepts the tokens in tokens and maps each to its user id.
type mockAuth struct {
	signUpID  int
	signUpErr error
	token     string
	tokenErr  error
	tokens    map[string]int
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	return m.token, m.tokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	id, ok := m.tokens[token]
	if !ok {
		return 0, service.ErrInvalidToken
	}
	return id, nil
}

// operator returns a mockAuth that accepts "valid" as user id.
func operator(id int) *mockAuth {
	return &mockAuth{tokens: map[string]int{"valid": id}}
}

type mockDashboard struct {
	refreshRes service.RefreshResult
	refreshErr error
	view       service.View
	viewErr    error
	topics     []string
	topicsErr  error

	refreshCalls int
	lastUser     int
	lastTopic    string
	calls        []string // "op:user", in order
}

func (m *mockDashboard) Refresh(ctx context.Context, userID int) (service.RefreshResult, error) {
	m.refreshCalls++
	m.lastUser = userID
	m.calls = append(m.calls, fmt.Sprintf("refresh:%d", userID))
	return m.refreshRes, m.refreshErr
}
func (m *mockDashboard) View(ctx context.Context, userID int, topic string) (service.View, error) {
	m.lastUser = userID
	m.lastTopic = topic
	m.calls = append(m.calls, fmt.Sprintf("view:%d", userID))
	return m.view, m.viewErr
}
func (m *mockDashboard) Topics(userID int) ([]string, error) {
	m.lastUser = userID
	m.calls = append(m.calls, fmt.Sprintf("topics:%d", userID))
	return m.topics, m.topicsErr
}

type mockComments struct {
	history []models.Comment
	addErr  error

	addCalls  int
	lastUser  int
	lastTopic string
	lastText  string
}

func (m *mockComments) Load(ctx context.Context) []models.Comment { return m.history }
func (m *mockComments) Add(ctx context.Context, userID int, topic, text string) error {
	m.addCalls++
	m.lastUser = userID
	m.lastTopic = topic
	m.lastText = text
	return m.addErr
}
func (m *mockComments) History(ctx context.Context, topic string) []models.Comment {
	m.lastTopic = topic
	return m.history
}
func (m *mockComments) Latest(ctx context.Context) map[string]models.Comment {
	return map[string]models.Comment{}
}

type mockActivity struct {
	resp     []models.ActivityEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockActivity) List(ctx context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// do sends a request through r, with a bearer token when token is non-empty.
func do(r http.Handler, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
