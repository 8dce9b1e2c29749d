package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/api"
	v1 "github.com/vietanh2810/eventdesk/internal/api/handler/v1"
	"github.com/vietanh2810/eventdesk/internal/config"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/facade"
	"github.com/vietanh2810/eventdesk/internal/pkg/jwthelper"
	"github.com/vietanh2810/eventdesk/internal/service"
)

const signingKey = "test-signing-key"

// stubFacade answers the actions a test sets and panics on the rest.
type stubFacade struct {
	v1.Facade
	calls []string

	listEvents facade.Result
	addEvent   facade.Result
	login      facade.Result
}

func (f *stubFacade) ListEvents(context.Context) facade.Result {
	f.calls = append(f.calls, "ListEvents")
	return f.listEvents
}

func (f *stubFacade) AddEvent(_ context.Context, _ domain.Session, _ service.EventInput) facade.Result {
	f.calls = append(f.calls, "AddEvent")
	return f.addEvent
}

func (f *stubFacade) OrganiserLogin(_ context.Context, _, _ string) facade.Result {
	f.calls = append(f.calls, "OrganiserLogin")
	return f.login
}

type noFeed struct{}

func (noFeed) Subscribe() (<-chan domain.Change, func()) {
	ch := make(chan domain.Change)
	return ch, func() {}
}

func newTestServer(f v1.Facade) *api.Server {
	conf := &config.AppConfig{
		API: &config.APIConfig{
			BaseURL:            "127.0.0.1:8765",
			AllowedCORSDomains: []string{"http://localhost"},
			JWTSigningKey:      signingKey,
			TokenTTL:           time.Hour,
		},
		Gin: &config.GinConfig{Mode: gin.TestMode},
	}
	return api.NewServer(conf, f, noFeed{})
}

func token(t *testing.T, session domain.Session) string {
	tok, err := jwthelper.GenerateToken([]byte(signingKey), session, "test", time.Hour)
	require.NoError(t, err)
	return tok
}

type resultJSON struct {
	OK      bool            `json:"ok"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

func do(t *testing.T, s *api.Server, method, path, body, bearer string) (*httptest.ResponseRecorder, resultJSON) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	var res resultJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return rec, res
}

var organiser = domain.Session{UserID: 101, Role: domain.RoleOrganiser, Username: "alice", Name: "Alice"}

func TestHealthcheck(t *testing.T) {
	rec, res := do(t, newTestServer(&stubFacade{}), http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.OK)
	assert.Equal(t, "ok", res.Code)
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	f := &stubFacade{}
	rec, res := do(t, newTestServer(f), http.MethodGet, "/api/v1/events", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", res.Code)
	assert.Empty(t, f.calls)

	rec, _ = do(t, newTestServer(f), http.MethodGet, "/api/v1/events", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListEvents(t *testing.T) {
	f := &stubFacade{listEvents: facade.Result{OK: true, Code: facade.CodeOK, Payload: []domain.Event{{ID: 300, Name: "Summer Fest"}}}}
	rec, res := do(t, newTestServer(f), http.MethodGet, "/api/v1/events", "", token(t, organiser))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.OK)

	var events []domain.Event
	require.NoError(t, json.Unmarshal(res.Payload, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Summer Fest", events[0].Name)
}

func TestCreateEvent(t *testing.T) {
	t.Run("invalid body never reaches the facade", func(t *testing.T) {
		f := &stubFacade{}
		rec, res := do(t, newTestServer(f), http.MethodPost, "/api/v1/events", `{"name":"Gala","type":"PARTY"}`, token(t, organiser))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", res.Code)
		assert.Empty(t, f.calls)
	})

	t.Run("result code sets the status", func(t *testing.T) {
		f := &stubFacade{addEvent: facade.Result{Code: facade.CodeForbidden, Message: "an organiser session is required"}}
		body := `{"name":"Gala","venue":"Hall","startDate":"2025-01-01","endDate":"2025-01-02","totalSeats":10,"type":"CEREMONY"}`
		rec, res := do(t, newTestServer(f), http.MethodPost, "/api/v1/events", body, token(t, organiser))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, res.OK)
		assert.Equal(t, []string{"AddEvent"}, f.calls)
	})

	t.Run("created", func(t *testing.T) {
		f := &stubFacade{addEvent: facade.Result{OK: true, Code: facade.CodeOK, Payload: domain.Event{ID: 412}}}
		body := `{"name":"Gala","venue":"Hall","startDate":"2025-01-01","endDate":"2025-01-02","totalSeats":10,"type":"ceremony"}`
		rec, res := do(t, newTestServer(f), http.MethodPost, "/api/v1/events", body, token(t, organiser))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, res.OK)
	})
}

func TestLoginIssuesToken(t *testing.T) {
	f := &stubFacade{login: facade.Result{OK: true, Code: facade.CodeOK, Payload: facade.LoginPayload{
		User:    domain.User{ID: 101, Name: "Alice", Username: "alice", Role: domain.RoleOrganiser},
		Session: organiser,
	}}}

	rec, res := do(t, newTestServer(f), http.MethodPost, "/api/v1/auth/organiser/login", `{"username":"alice","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Payload, &payload))
	claims, err := jwthelper.ParseToken([]byte(signingKey), payload.Token)
	require.NoError(t, err)
	session, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, organiser, session)
}

func TestLoginUnknownRole(t *testing.T) {
	f := &stubFacade{}
	rec, _ := do(t, newTestServer(f), http.MethodPost, "/api/v1/auth/admin/login", `{"username":"a","password":"b"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.calls)
}

func TestRegisterRequiresCustomer(t *testing.T) {
	f := &stubFacade{}
	rec, res := do(t, newTestServer(f), http.MethodPost, "/api/v1/events/300/registrations", "", token(t, organiser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", res.Code)
	assert.Empty(t, f.calls)
}

func TestPathIDBeyondRecordRange(t *testing.T) {
	f := &stubFacade{}
	for _, id := range []string{"4294967614", "2147483648", "-3", "abc"} {
		rec, res := do(t, newTestServer(f), http.MethodGet, "/api/v1/events/"+id, "", token(t, organiser))
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		assert.Equal(t, "validation", res.Code, id)
	}
	assert.Empty(t, f.calls)
}

func TestCreateEventSeatsBeyondRecordRange(t *testing.T) {
	f := &stubFacade{}
	body := `{"name":"Stadium Tour","venue":"Arena","startDate":"2025-07-01","endDate":"2025-07-02","totalSeats":3000000000,"type":"CONCERT"}`
	rec, _ := do(t, newTestServer(f), http.MethodPost, "/api/v1/events", body, token(t, organiser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.calls)
}
