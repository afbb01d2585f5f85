package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"unbelong/internal/web"
)

const defaultLanding = "/admin/dashboard"

type Handler struct {
	Creds        Credentials
	Sessions     *Sessions
	CookieSecure bool
	Logger       *slog.Logger
}

func NewHandler(creds Credentials, sessions *Sessions, cookieSecure bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Creds: creds, Sessions: sessions, CookieSecure: cookieSecure, Logger: logger}
}

// RegisterRoutes mounts the gate's own routes on the admin group. They must
// stay outside RequireSession.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/login", h.showLogin)
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
}

// Middleware guards the admin pages, answering with the login form.
func (h *Handler) Middleware() gin.HandlerFunc {
	return RequireSession(h.Sessions, h.Logger, h.Deny)
}

// Deny renders the login form in place of a protected page.
func (h *Handler) Deny(c *gin.Context) {
	c.HTML(http.StatusUnauthorized, web.PageLogin, web.LoginPage{Next: safeNext(c.Request.URL.RequestURI())})
}

func (h *Handler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageLogin, web.LoginPage{Next: safeNext(c.Query("next"))})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	if !h.Creds.Check(username, password) {
		h.Logger.Warn("admin login rejected", slog.String("username", username), slog.String("ip", c.ClientIP()))
		c.HTML(http.StatusUnauthorized, web.PageLogin, web.LoginPage{
			Username: username,
			Next:     next,
			Error:    web.MsgInvalidCredentials,
		})
		return
	}

	token, sess, err := h.Sessions.Start(c.Request.Context(), username)
	if err != nil {
		h.Logger.Error("start admin session", slog.Any("error", err))
		c.HTML(http.StatusInternalServerError, web.PageLogin, web.LoginPage{
			Username: username,
			Next:     next,
			Error:    web.MsgLoginFailed,
		})
		return
	}

	h.setCookie(c, token, 0)
	h.Logger.Info("admin login", slog.String("username", username), slog.String("session", sess.ID))
	c.Redirect(http.StatusSeeOther, next)
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(CookieName)
	if err := h.Sessions.End(c.Request.Context(), token); err != nil {
		h.Logger.Error("end admin session", slog.Any("error", err))
	}
	h.setCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// maxAge 0 leaves Max-Age unset so the cookie dies with the browser
// session; negative deletes it.
func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/admin", "", h.CookieSecure, true)
}

// safeNext only allows redirects back into the admin area.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/admin") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return defaultLanding
	}
	path := next
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch path {
	case "/admin/login", "/admin/logout":
		return defaultLanding
	}
	return next
}
