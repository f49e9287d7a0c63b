package handler

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	Handler
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(s *server.Server, favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		Handler:         NewHandler(s),
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) AddPlanet(c echo.Context, payload *model.FavoritePlanetPayload) (Response, error) {
	favorite, err := h.favoriteService.AddPlanet(c.Request().Context(), payload.UserID, payload.PlanetID)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "planet added to favorites", Data: favorite.Serialize()}, nil
}

func (h *FavoriteHandler) RemovePlanet(c echo.Context, payload *model.FavoritePlanetPayload) error {
	return h.favoriteService.RemovePlanet(c.Request().Context(), payload.UserID, payload.PlanetID)
}

func (h *FavoriteHandler) AddCharacter(c echo.Context, payload *model.FavoriteCharacterPayload) (Response, error) {
	favorite, err := h.favoriteService.AddCharacter(c.Request().Context(), payload.UserID, payload.CharacterID)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "character added to favorites", Data: favorite.Serialize()}, nil
}

func (h *FavoriteHandler) RemoveCharacter(c echo.Context, payload *model.FavoriteCharacterPayload) error {
	return h.favoriteService.RemoveCharacter(c.Request().Context(), payload.UserID, payload.CharacterID)
}
