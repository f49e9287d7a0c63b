package handler

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/labstack/echo/v4"
)

type CharacterHandler struct {
	Handler
	characterService *service.CharacterService
}

func NewCharacterHandler(s *server.Server, characterService *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{
		Handler:          NewHandler(s),
		characterService: characterService,
	}
}

func (h *CharacterHandler) ListCharacters(c echo.Context, _ *model.ListPayload) (Response, error) {
	characters, err := h.characterService.List(c.Request().Context())
	if err != nil {
		return Response{}, err
	}

	data := make([]model.CharacterResponse, 0, len(characters))
	for i := range characters {
		data = append(data, characters[i].Serialize())
	}
	return Response{Msg: "ok", Data: data}, nil
}

func (h *CharacterHandler) GetCharacter(c echo.Context, payload *model.ByIDPayload) (Response, error) {
	character, err := h.characterService.Get(c.Request().Context(), payload.ID)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "ok", Data: character}, nil
}

func (h *CharacterHandler) CreateCharacter(c echo.Context, payload *model.CreateCharacterPayload) (Response, error) {
	character, err := h.characterService.Create(c.Request().Context(), payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "character created successfully", Data: character.Serialize()}, nil
}

func (h *CharacterHandler) UpdateCharacter(c echo.Context, payload *model.UpdateCharacterPayload) (Response, error) {
	character, err := h.characterService.Update(c.Request().Context(), payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "character updated successfully", Data: character.Serialize()}, nil
}

func (h *CharacterHandler) DeleteCharacter(c echo.Context, payload *model.ByIDPayload) error {
	return h.characterService.Delete(c.Request().Context(), payload.ID)
}
