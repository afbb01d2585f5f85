package gallery

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"unbelong/internal/api"
	"unbelong/internal/web"
	"unbelong/pkg/imageurl"
	"unbelong/pkg/models"
)

var (
	cardImage   = imageurl.Options{Width: 400, Height: 400, Fit: imageurl.FitCover}
	detailImage = imageurl.Options{Width: 1200}
	ogImage     = imageurl.Options{Width: 1200, Height: 630, Fit: imageurl.FitCover}
)

// Handler serves the public gallery pages.
type Handler struct {
	API    api.Fetcher
	Images imageurl.Resolver
	Logger *slog.Logger
}

func NewHandler(fetcher api.Fetcher, images imageurl.Resolver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{API: fetcher, Images: images, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.home)                    // GET /
	rg.GET("/illustrations/:id", h.detail) // GET /illustrations/:id (id or slug)
	rg.GET("/api/image-url", h.imageURL)   // GET /api/image-url?id=...
}

func (h *Handler) home(c *gin.Context) {
	items, err := h.API.ListIllustrations(c.Request.Context())
	if err != nil {
		h.Logger.Error("list illustrations", slog.Any("error", err))
		c.HTML(http.StatusBadGateway, web.PageHome, web.HomePage{Error: web.MsgLoadFailed})
		return
	}

	published := models.PublishedOnly(items)
	cards := make([]web.GalleryCard, 0, len(published))
	for _, it := range published {
		cards = append(cards, web.GalleryCard{
			Title:       it.Title,
			Description: it.DescriptionText(),
			Href:        web.IllustrationPath(it.Slug),
			ImageURL:    h.Images.URL(it.ImageID, cardImage),
		})
	}
	c.HTML(http.StatusOK, web.PageHome, web.HomePage{Cards: cards, EmptyText: web.MsgNoIllustrations})
}

func (h *Handler) detail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	ill, err := h.API.GetIllustration(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			h.Logger.Info("illustration not found", slog.String("id", id))
			h.notFound(c)
			return
		}
		h.Logger.Error("get illustration", slog.String("id", id), slog.Any("error", err))
		c.HTML(http.StatusBadGateway, web.PageError, web.ErrorPage{Message: web.MsgLoadFailed})
		return
	}
	// drafts and archived items look exactly like missing ones
	if !ill.IsPublished() {
		h.notFound(c)
		return
	}

	page := web.DetailPage{
		Title:       ill.Title,
		Description: ill.DescriptionText(),
		ImageURL:    h.Images.URL(ill.ImageID, detailImage),
		OGImageURL:  h.Images.URL(ogRef(ill), ogImage),
		ViewCount:   web.FormatCount(ill.ViewCount),
		PostedAt:    web.FormatDate(ill.CreatedAt),
	}

	tags, err := ill.ParsedTags()
	if err != nil {
		h.Logger.Warn("ignoring malformed tags", slog.String("id", ill.ID), slog.Any("error", err))
	}
	page.Tags = tags

	page.WorkTitle = h.workTitle(ctx, ill.WorkID)

	c.HTML(http.StatusOK, web.PageIllustration, page)
}

// workTitle is only called once the illustration has loaded. Failures leave
// the work section out.
func (h *Handler) workTitle(ctx context.Context, workID string) string {
	if strings.TrimSpace(workID) == "" {
		return ""
	}
	work, err := h.API.GetWork(ctx, workID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			h.Logger.Warn("get work", slog.String("work_id", workID), slog.Any("error", err))
		}
		return ""
	}
	return work.Title
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, web.PageError, web.ErrorPage{Message: web.MsgNotFound})
}

func ogRef(ill *models.Illustration) imageurl.Ref {
	if ill.OGImageID != nil && !ill.OGImageID.IsZero() {
		return *ill.OGImageID
	}
	return ill.ImageID
}

func (h *Handler) imageURL(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	var opts imageurl.Options
	var err error
	if opts.Width, err = parseDim(c.Query("width")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid width"})
		return
	}
	if opts.Height, err = parseDim(c.Query("height")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid height"})
		return
	}
	if opts.Quality, err = parseDim(c.Query("quality")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quality"})
		return
	}
	if fit := imageurl.Fit(c.Query("fit")); fit != "" {
		if !fit.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fit"})
			return
		}
		opts.Fit = fit
	}
	if format := imageurl.Format(c.Query("format")); format != "" {
		if !format.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format"})
			return
		}
		opts.Format = format
	}

	ref := imageurl.Parse(id)
	c.JSON(http.StatusOK, gin.H{
		"id":   ref.ID(),
		"kind": ref.Kind().String(),
		"url":  h.Images.URL(ref, opts),
	})
}

// parseDim reads an optional non-negative integer; "" means unset.
func parseDim(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("not a non-negative integer")
	}
	return n, nil
}
