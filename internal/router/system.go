package router

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the catalogue.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Sitemap.ServeSitemap)

	// Used by load balancers and monitors.
	r.GET("/status", h.Health.CheckHealth)
}
