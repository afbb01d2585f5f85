package admin

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"unbelong/internal/api"
	"unbelong/internal/web"
	"unbelong/pkg/imageurl"
	"unbelong/pkg/models"
)

const (
	filterAll   = "all"
	recentLimit = 5
	listPath    = "/admin/illustrations"
)

var cardImage = imageurl.Options{Width: 600, Height: 400, Fit: imageurl.FitCover}

// Handler serves the admin pages. Routes are expected to sit behind the
// session gate.
type Handler struct {
	API    api.Fetcher
	Images imageurl.Resolver
	Links  web.Links
	Logger *slog.Logger
}

func NewHandler(fetcher api.Fetcher, images imageurl.Resolver, links web.Links, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{API: fetcher, Images: images, Links: links, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.index)                       // GET /admin
	rg.GET("/dashboard", h.dashboard)         // GET /admin/dashboard
	rg.GET("/illustrations", h.illustrations) // GET /admin/illustrations?status=
}

func (h *Handler) index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.API.ListIllustrations(ctx)
	if err != nil {
		h.Logger.Error("list illustrations", slog.Any("error", err))
		c.HTML(http.StatusBadGateway, web.PageDashboard, web.DashboardPage{Error: web.MsgLoadFailed})
		return
	}

	page := web.DashboardPage{Total: len(items), EmptyText: web.MsgAdminNoItems}
	byStatus := models.CountByStatus(items)
	for _, s := range models.IllustrationStatuses {
		page.StatusCounts = append(page.StatusCounts, web.LabeledCount{
			Key:   string(s),
			Label: web.StatusLabel(s),
			Count: byStatus[s],
		})
	}

	works, err := h.API.ListWorks(ctx, "")
	if err != nil {
		h.Logger.Warn("list works", slog.Any("error", err))
		page.WorksError = web.MsgWorksLoadFailed
	} else {
		page.WorksTotal = len(works)
		byCategory := models.CountByCategory(works)
		for _, cat := range models.Categories {
			page.WorkCounts = append(page.WorkCounts, web.LabeledCount{
				Key:   string(cat),
				Label: web.CategoryLabel(cat),
				Count: byCategory[cat],
			})
		}
	}

	titles := workTitles(works)
	for _, it := range recent(items, recentLimit) {
		page.Recent = append(page.Recent, h.card(it, titles))
	}

	c.HTML(http.StatusOK, web.PageDashboard, page)
}

func (h *Handler) illustrations(c *gin.Context) {
	ctx := c.Request.Context()
	filter := parseFilter(c.Query("status"))

	items, err := h.API.ListIllustrations(ctx)
	if err != nil {
		h.Logger.Error("list illustrations", slog.Any("error", err))
		c.HTML(http.StatusBadGateway, web.PageAdminIllustrations, web.AdminIllustrationsPage{
			Error: web.MsgLoadFailed,
			Tabs:  tabs(nil, filter),
		})
		return
	}

	// work titles are looked up only once the list itself has loaded
	works, err := h.API.ListWorks(ctx, models.CategoryIllustration)
	if err != nil {
		h.Logger.Warn("list works", slog.Any("error", err))
	}
	titles := workTitles(works)

	shown := items
	if filter != filterAll {
		shown = models.FilterByStatus(items, models.IllustrationStatus(filter))
	}

	page := web.AdminIllustrationsPage{
		Tabs:      tabs(items, filter),
		Cards:     make([]web.AdminCard, 0, len(shown)),
		EmptyText: web.MsgAdminNoItems,
	}
	for _, it := range shown {
		page.Cards = append(page.Cards, h.card(it, titles))
	}
	c.HTML(http.StatusOK, web.PageAdminIllustrations, page)
}

func (h *Handler) card(it models.Illustration, titles map[string]string) web.AdminCard {
	return web.AdminCard{
		ID:          it.ID,
		Title:       it.Title,
		Status:      string(it.Status),
		StatusLabel: web.StatusLabel(it.Status),
		WorkTitle:   titles[it.WorkID],
		Slug:        it.Slug,
		ImageID:     it.ImageID.ID(),
		ImageURL:    h.Images.URL(it.ImageID, cardImage),
		ViewCount:   web.FormatCount(it.ViewCount),
		PostedAt:    web.FormatDate(it.CreatedAt),
		PublicURL:   h.Links.PublicURL(it.Slug),
		EditURL:     h.Links.EditURL(it.ID),
	}
}

// parseFilter maps the status query to a known filter, falling back to all.
func parseFilter(raw string) string {
	if s := models.IllustrationStatus(raw); s.Valid() {
		return raw
	}
	return filterAll
}

func tabs(items []models.Illustration, active string) []web.FilterTab {
	counts := models.CountByStatus(items)
	out := []web.FilterTab{{
		Key:    filterAll,
		Label:  web.MsgAll,
		Href:   listPath,
		Count:  len(items),
		Active: active == filterAll,
	}}
	for _, s := range models.IllustrationStatuses {
		out = append(out, web.FilterTab{
			Key:    string(s),
			Label:  web.StatusLabel(s),
			Href:   listPath + "?status=" + string(s),
			Count:  counts[s],
			Active: active == string(s),
		})
	}
	return out
}

func workTitles(works []models.Work) map[string]string {
	titles := make(map[string]string, len(works))
	for id, w := range models.IndexWorks(works) {
		titles[id] = w.Title
	}
	return titles
}

// recent returns up to n illustrations, most recently updated first.
func recent(items []models.Illustration, n int) []models.Illustration {
	sorted := make([]models.Illustration, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt > sorted[j].UpdatedAt
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
