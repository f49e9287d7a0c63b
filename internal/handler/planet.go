package handler

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/labstack/echo/v4"
)

type PlanetHandler struct {
	Handler
	planetService *service.PlanetService
}

func NewPlanetHandler(s *server.Server, planetService *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		Handler:       NewHandler(s),
		planetService: planetService,
	}
}

func (h *PlanetHandler) ListPlanets(c echo.Context, _ *model.ListPayload) (Response, error) {
	planets, err := h.planetService.List(c.Request().Context())
	if err != nil {
		return Response{}, err
	}

	data := make([]model.PlanetResponse, 0, len(planets))
	for i := range planets {
		data = append(data, planets[i].Serialize())
	}
	return Response{Msg: "ok", Data: data}, nil
}

func (h *PlanetHandler) GetPlanet(c echo.Context, payload *model.ByIDPayload) (Response, error) {
	planet, err := h.planetService.Get(c.Request().Context(), payload.ID)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "ok", Data: planet}, nil
}

func (h *PlanetHandler) CreatePlanet(c echo.Context, payload *model.CreatePlanetPayload) (Response, error) {
	planet, err := h.planetService.Create(c.Request().Context(), payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "planet created successfully", Data: planet.Serialize()}, nil
}

func (h *PlanetHandler) UpdatePlanet(c echo.Context, payload *model.UpdatePlanetPayload) (Response, error) {
	planet, err := h.planetService.Update(c.Request().Context(), payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "planet updated successfully", Data: planet.Serialize()}, nil
}

func (h *PlanetHandler) DeletePlanet(c echo.Context, payload *model.ByIDPayload) error {
	return h.planetService.Delete(c.Request().Context(), payload.ID)
}
