package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser string
	registerErr  error
	authUser     string
	authErr      error
	issueToken   string
	issueErr     error
	parseUser    string
	parseErr     error

	lastRegisterUsername string
	lastRegisterPassword string
	lastAuthUsername     string
	lastAuthPassword     string
	lastIssueUsername    string
	lastParseToken       string
}

func (m *mockAuth) Register(username, password string) (string, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Authenticate(username, password string) (string, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.authUser, m.authErr
}
func (m *mockAuth) IssueSession(username string) (string, error) {
	m.lastIssueUsername = username
	return m.issueToken, m.issueErr
}
func (m *mockAuth) ParseSession(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

type mockNotes struct {
	listResp []models.Note
	listErr  error
	getNote  models.Note
	getFound bool
	getErr   error

	lastListUser   string
	lastCreateUser string
	lastCreateText string
	lastEditUser   string
	lastEditID     int
	lastEditText   string
	lastToggleID   int
	lastToggleUser string
	lastDeleteID   int
	lastDeleteUser string
	createCalls    int
	editCalls      int
	toggleCalls    int
	deleteCalls    int
}

func (m *mockNotes) List(username string) ([]models.Note, error) {
	m.lastListUser = username
	return m.listResp, m.listErr
}
func (m *mockNotes) Get(username string, id int) (models.Note, bool, error) {
	return m.getNote, m.getFound, m.getErr
}
func (m *mockNotes) Create(username, text string) error {
	m.createCalls++
	m.lastCreateUser = username
	m.lastCreateText = text
	return nil
}
func (m *mockNotes) Edit(username string, id int, text string) error {
	m.editCalls++
	m.lastEditUser = username
	m.lastEditID = id
	m.lastEditText = text
	return nil
}
func (m *mockNotes) TogglePin(username string, id int) error {
	m.toggleCalls++
	m.lastToggleUser = username
	m.lastToggleID = id
	return nil
}
func (m *mockNotes) Delete(username string, id int) error {
	m.deleteCalls++
	m.lastDeleteUser = username
	m.lastDeleteID = id
	return nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func postForm(r *gin.Engine, path, form string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}
