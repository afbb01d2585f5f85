package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbelong/internal/api"
	"unbelong/internal/auth"
	"unbelong/internal/mockapi"
	"unbelong/internal/web"
	"unbelong/pkg/database"
	"unbelong/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	handler  http.Handler
	upstream *httptest.Server
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fixture, err := mockapi.LoadFixture(filepath.Join("..", "..", "data", "fixtures.json"))
	require.NoError(t, err)
	upstream := httptest.NewServer(mockapi.New(fixture).Handler())
	t.Cleanup(upstream.Close)

	client, err := api.NewClient(upstream.URL)
	require.NoError(t, err)

	cfg := utils.DefaultConfig()
	cfg.Server.AllowedOrigins = []string{"https://allowed.example"}
	cfg.Session.DBPath = filepath.Join(t.TempDir(), "sessions.db")

	db, err := database.OpenAndMigrate(database.Config{Path: cfg.Session.DBPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	creds, err := auth.NewCredentials(cfg.Admin.Username, cfg.Admin.Password, "")
	require.NoError(t, err)
	sessions := auth.NewSessions(auth.TokenService{
		Secret:   []byte(cfg.Session.Secret),
		Issuer:   cfg.Session.Issuer,
		Duration: time.Hour,
	}, auth.NewRepo(db))

	logs := &bytes.Buffer{}
	h, err := NewHandler(Deps{
		Config:      cfg,
		DB:          db,
		API:         client,
		Credentials: creds,
		Sessions:    sessions,
		Logger:      slog.New(slog.NewTextHandler(logs, nil)),
	})
	require.NoError(t, err)

	return &testEnv{handler: h, upstream: upstream, logs: logs}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReady(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])

	env.upstream.Close()
	w = env.get("/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "error", body["api"])
	assert.Equal(t, "ok", body["db"])
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/healthz")
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = env.do(req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Contains(t, env.logs.String(), "request_id=abc-123")
	assert.Contains(t, env.logs.String(), "path=/healthz")
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/image-url?id=ab12", nil)
	req.Header.Set("Origin", "https://allowed.example")
	w := env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/image-url?id=ab12", nil)
	req.Header.Set("Origin", "https://other.example")
	w = env.do(req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPublicPagesAgainstFixture(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "夕焼けの帰り道")
	assert.Contains(t, body, "雨上がり")
	assert.NotContains(t, body, "ラフスケッチ")
	assert.NotContains(t, body, "昔の絵")

	w = env.get("/illustrations/sunset-road")
	require.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	assert.Contains(t, body, "季節の景色")
	assert.Equal(t, 2, strings.Count(body, `class="chip"`))
	assert.Contains(t, body, "1,234")

	w = env.get("/illustrations/rough-sketch")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), web.MsgNotFound)

	w = env.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), web.MsgPageNotFound)
}

func TestAdminFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/admin/illustrations")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `action="/admin/login"`)

	form := url.Values{"username": {"mn"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), web.MsgInvalidCredentials)

	form = url.Values{"username": {"mn"}, "password": {"39"}, "next": {"/admin/illustrations?status=draft"}}
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = env.do(req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/illustrations?status=draft", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/admin/illustrations?status=draft", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ラフスケッチ")
	assert.NotContains(t, body, "夕焼けの帰り道")
	assert.Contains(t, body, `href="https://unbelong-hono-admin.pages.dev/illustrations/ill-0003"`)

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessLogLevels(t *testing.T) {
	logs := &bytes.Buffer{}
	r := gin.New()
	r.Use(RequestID(), AccessLog(slog.New(slog.NewTextHandler(logs, nil))))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/fine", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fine", nil))

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=ERROR")
	assert.Contains(t, lines[0], "status=500")
	assert.Contains(t, lines[1], "level=INFO")
}
