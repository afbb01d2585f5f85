// Package mockapi is a fixture-backed stand-in for the gallery API, used for
// local development and handler tests.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"unbelong/pkg/models"
)

// Fixture is the whole data set served by a Server.
type Fixture struct {
	Illustrations []models.Illustration `json:"illustrations"`
	Works         []models.Work         `json:"works"`
}

// LoadFixture reads a fixture file and checks it decodes, so a bad file is
// reported at startup instead of on the first request.
func LoadFixture(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("fixture %s invalid JSON: %w", path, err)
	}
	return f, nil
}

type Server struct {
	fixture Fixture
}

func New(f Fixture) *Server {
	return &Server{fixture: f}
}

// Handler returns the routes of the upstream API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	s.RegisterRoutes(r.Group("/api"))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Fail[any]("Not found"))
	})
	return r
}

func (s *Server) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/illustrations", s.listIllustrations)   // GET /api/illustrations
	rg.GET("/illustrations/:id", s.getIllustration) // GET /api/illustrations/:idOrSlug
	rg.GET("/works", s.listWorks)                   // GET /api/works?type=
	rg.GET("/works/:id", s.getWork)                 // GET /api/works/:id
}

func (s *Server) listIllustrations(c *gin.Context) {
	items := s.fixture.Illustrations
	if items == nil {
		items = []models.Illustration{}
	}
	c.JSON(http.StatusOK, models.OK(items))
}

func (s *Server) getIllustration(c *gin.Context) {
	id := c.Param("id")
	for _, it := range s.fixture.Illustrations {
		if it.ID == id || it.Slug == id {
			c.JSON(http.StatusOK, models.OK(it))
			return
		}
	}
	c.JSON(http.StatusNotFound, models.Fail[models.Illustration]("Illustration not found"))
}

func (s *Server) listWorks(c *gin.Context) {
	category := models.Category(c.Query("type"))
	works := make([]models.Work, 0, len(s.fixture.Works))
	for _, w := range s.fixture.Works {
		if category == "" || w.Type == category {
			works = append(works, w)
		}
	}
	c.JSON(http.StatusOK, models.OK(works))
}

func (s *Server) getWork(c *gin.Context) {
	id := c.Param("id")
	for _, w := range s.fixture.Works {
		if w.ID == id {
			c.JSON(http.StatusOK, models.OK(w))
			return
		}
	}
	c.JSON(http.StatusNotFound, models.Fail[models.Work]("Work not found"))
}
