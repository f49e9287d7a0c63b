// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/handler"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/middleware"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with every middleware and route mounted.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Runs before routing so "/planets/" matches "/planets".
	router.Pre(middlewares.Global.RemoveTrailingSlash())

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerUserRoutes(router, h.Users)
	registerPlanetRoutes(router, h.Planets)
	registerCharacterRoutes(router, h.Characters)
	registerFavoriteRoutes(router, h.Favorites)

	return router
}

func registerUserRoutes(r *echo.Echo, h *handler.UserHandler) {
	r.GET("/users", handler.Handle(h.Handler, h.ListUsers, http.StatusOK, &model.ListPayload{}))
	r.GET("/user/:id", handler.Handle(h.Handler, h.GetUser, http.StatusOK, &model.ByIDPayload{}))
	r.GET("/user/:id/favorites", handler.Handle(h.Handler, h.GetFavorites, http.StatusOK, &model.ByIDPayload{}))
	r.POST("/user", handler.Handle(h.Handler, h.CreateUser, http.StatusCreated, &model.CreateUserPayload{}))
	r.PUT("/users/:id", handler.Handle(h.Handler, h.UpdateUser, http.StatusOK, &model.UpdateUserPayload{}))
	r.DELETE("/user/:id", handler.HandleNoContent(h.Handler, h.DeleteUser, http.StatusNoContent, &model.ByIDPayload{}))
}

func registerPlanetRoutes(r *echo.Echo, h *handler.PlanetHandler) {
	r.GET("/planets", handler.Handle(h.Handler, h.ListPlanets, http.StatusOK, &model.ListPayload{}))
	r.GET("/planet/:id", handler.Handle(h.Handler, h.GetPlanet, http.StatusOK, &model.ByIDPayload{}))
	r.POST("/planets", handler.Handle(h.Handler, h.CreatePlanet, http.StatusCreated, &model.CreatePlanetPayload{}))
	r.PUT("/planet/:id", handler.Handle(h.Handler, h.UpdatePlanet, http.StatusOK, &model.UpdatePlanetPayload{}))
	r.DELETE("/planet/:id", handler.HandleNoContent(h.Handler, h.DeletePlanet, http.StatusNoContent, &model.ByIDPayload{}))
}

func registerCharacterRoutes(r *echo.Echo, h *handler.CharacterHandler) {
	r.GET("/characters", handler.Handle(h.Handler, h.ListCharacters, http.StatusOK, &model.ListPayload{}))
	r.GET("/character/:id", handler.Handle(h.Handler, h.GetCharacter, http.StatusOK, &model.ByIDPayload{}))
	r.POST("/characters", handler.Handle(h.Handler, h.CreateCharacter, http.StatusCreated, &model.CreateCharacterPayload{}))
	r.PUT("/character/:id", handler.Handle(h.Handler, h.UpdateCharacter, http.StatusOK, &model.UpdateCharacterPayload{}))
	r.DELETE("/character/:id", handler.HandleNoContent(h.Handler, h.DeleteCharacter, http.StatusNoContent, &model.ByIDPayload{}))
}

// Adding and removing use different path prefixes (plural vs singular).
func registerFavoriteRoutes(r *echo.Echo, h *handler.FavoriteHandler) {
	r.POST("/favorite/planets/:planet_id/:user_id", handler.Handle(h.Handler, h.AddPlanet, http.StatusOK, &model.FavoritePlanetPayload{}))
	r.DELETE("/favorite/planet/:planet_id/:user_id", handler.HandleNoContent(h.Handler, h.RemovePlanet, http.StatusNoContent, &model.FavoritePlanetPayload{}))
	r.POST("/favorite/characters/:character_id/:user_id", handler.Handle(h.Handler, h.AddCharacter, http.StatusOK, &model.FavoriteCharacterPayload{}))
	r.DELETE("/favorite/character/:character_id/:user_id", handler.HandleNoContent(h.Handler, h.RemoveCharacter, http.StatusNoContent, &model.FavoriteCharacterPayload{}))
}
