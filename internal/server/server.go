package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"unbelong/internal/admin"
	"unbelong/internal/api"
	"unbelong/internal/auth"
	"unbelong/internal/gallery"
	"unbelong/internal/web"
	"unbelong/pkg/utils"
)

const readyTimeout = 2 * time.Second

// Upstream is the remote API as the server uses it.
type Upstream interface {
	api.Fetcher
	Ping(ctx context.Context) error
}

// Deps is everything NewRouter wires together.
type Deps struct {
	Config      utils.Config
	DB          *sql.DB
	API         Upstream
	Credentials auth.Credentials
	Sessions    *auth.Sessions
	Logger      *slog.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	router := gin.New()
	router.Use(RequestID(), AccessLog(d.Logger), gin.Recovery())
	if err := router.SetTrustedProxies(d.Config.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	router.HTMLRender = renderer

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", readyHandler(d))

	images := d.Config.Images.Resolver()

	// Public
	gallery.NewHandler(d.API, images, d.Logger).RegisterRoutes(router.Group(""))

	// Admin: login/logout are open, the rest sits behind the session gate
	authHandler := auth.NewHandler(d.Credentials, d.Sessions, d.Config.Session.CookieSecure, d.Logger)
	adminGroup := router.Group("/admin")
	authHandler.RegisterRoutes(adminGroup)

	links := web.Links{
		PublicSiteURL: d.Config.Links.PublicSiteURL,
		AdminEditURL:  d.Config.Links.AdminEditURL,
	}
	protected := adminGroup.Group("")
	protected.Use(authHandler.Middleware())
	admin.NewHandler(d.API, images, links, d.Logger).RegisterRoutes(protected)

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, web.PageError, web.ErrorPage{Message: web.MsgPageNotFound})
	})

	return router, nil
}

// NewHandler is NewRouter wrapped in the CORS policy. An empty origin list
// allows every origin; only reads are allowed either way.
func NewHandler(d Deps) (http.Handler, error) {
	router, err := NewRouter(d)
	if err != nil {
		return nil, err
	}
	c := cors.New(cors.Options{
		AllowedOrigins: d.Config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposedHeaders: []string{HeaderRequestID},
	})
	return c.Handler(router), nil
}

func readyHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		resp := gin.H{"status": "ready", "db": "ok", "api": "ok"}
		status := http.StatusOK

		if d.DB == nil {
			resp["db"] = "not configured"
			status = http.StatusServiceUnavailable
		} else if err := d.DB.PingContext(ctx); err != nil {
			resp["db"] = "error"
			resp["db_error"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := d.API.Ping(ctx); err != nil {
			resp["api"] = "error"
			resp["api_error"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		if status != http.StatusOK {
			resp["status"] = "not_ready"
		}
		c.JSON(status, resp)
	}
}
