package handler

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
)

// Handlers is the container of every HTTP handler the router mounts.
type Handlers struct {
	Health     *HealthHandler  // Health serves the /status endpoint.
	Sitemap    *SitemapHandler // Sitemap lists the registered routes at /.
	Users      *UserHandler
	Planets    *PlanetHandler
	Characters *CharacterHandler
	Favorites  *FavoriteHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Sitemap:    NewSitemapHandler(s),
		Users:      NewUserHandler(s, services.Users, services.Favorites),
		Planets:    NewPlanetHandler(s, services.Planets),
		Characters: NewCharacterHandler(s, services.Characters),
		Favorites:  NewFavoriteHandler(s, services.Favorites),
	}
}
