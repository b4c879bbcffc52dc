package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/contact/contacttest"
)

type testServer struct {
	router   *gin.Engine
	sessions *Sessions
	sched    *contacttest.Scheduler
	cookie   *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logs.GetLoggerFromLevel(slog.LevelError)
	sched := contacttest.NewScheduler()
	sessions := NewSessions(log, time.Minute, func(string) *contact.Controller {
		return contact.NewController(contact.WithScheduler(sched), contact.WithLogger(log))
	})
	t.Cleanup(sessions.CloseAll)

	content, err := loadContent()
	require.NoError(t, err)
	router, err := newRouter(&server{content: content, sessions: sessions, log: log})
	require.NoError(t, err)

	return &testServer{router: router, sessions: sessions, sched: sched}
}

// do sends a request carrying the current session cookie and keeps any
// cookie the response sets.
func (ts *testServer) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			if c.MaxAge < 0 {
				ts.cookie = nil
			} else {
				ts.cookie = c
			}
		}
	}
	return rec
}

func validForm() url.Values {
	return url.Values{
		"fullName": {"Sam"},
		"email":    {"sam@example.com"},
		"message":  {"Hello there, how are you?"},
	}
}
