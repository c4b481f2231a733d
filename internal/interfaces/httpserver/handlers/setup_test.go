package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/requests"
	v1 "github.com/janhq/mirror-server/internal/interfaces/httpserver/routes/v1"
)

const testOwner = "00000000-0000-0000-0000-0000000000aa"

type testDeps struct {
	flows      *MockFlows
	profiles   *MockProfileService
	sessions   *MockSessionService
	journal    *MockJournalService
	meditation *MockMeditationService
}

func newTestDeps() *testDeps {
	return &testDeps{
		flows:      &MockFlows{},
		profiles:   &MockProfileService{},
		sessions:   &MockSessionService{},
		journal:    &MockJournalService{},
		meditation: &MockMeditationService{},
	}
}

// setupTestRouter registers the v1 routes behind the owner middleware.
func setupTestRouter(t *testing.T, deps *testDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := requests.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}

	log := zerolog.Nop()
	provider := &handlers.Provider{
		Profile:    handlers.NewProfileHandler(deps.profiles, log),
		Chat:       handlers.NewChatHandler(deps.flows, deps.sessions, log),
		Journal:    handlers.NewJournalHandler(deps.flows, deps.journal, handlers.JournalSettings{SearchThreshold: 0.3, SearchLimit: 5}, log),
		Meditation: handlers.NewMeditationHandler(deps.flows, deps.meditation, log),
	}

	router := gin.New()
	router.Use(middlewares.RequestID(log))
	v1.NewRoutes(provider).Register(router, middlewares.Owner(testOwner))
	return router
}

func doRequest(router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal error response: %v (%s)", err, w.Body.String())
	}
	return body
}
