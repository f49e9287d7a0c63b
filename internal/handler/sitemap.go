package handler

import (
	"net/http"
	"sort"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/labstack/echo/v4"
)

// SitemapHandler lists every route registered on the router.
type SitemapHandler struct {
	Handler
}

func NewSitemapHandler(s *server.Server) *SitemapHandler {
	return &SitemapHandler{
		Handler: NewHandler(s),
	}
}

// Route is one entry of the sitemap.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Routes returns the routes of e sorted by path, then method.
func Routes(e *echo.Echo) []Route {
	routes := make([]Route, 0, len(e.Routes()))
	for _, r := range e.Routes() {
		routes = append(routes, Route{Method: r.Method, Path: r.Path})
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return routes
}

func (h *SitemapHandler) ServeSitemap(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	return c.JSON(http.StatusOK, Response{Msg: "ok", Data: Routes(c.Echo())})
}
