package handler

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService     *service.UserService
	favoriteService *service.FavoriteService
}

func NewUserHandler(s *server.Server, userService *service.UserService, favoriteService *service.FavoriteService) *UserHandler {
	return &UserHandler{
		Handler:         NewHandler(s),
		userService:     userService,
		favoriteService: favoriteService,
	}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.ListPayload) (Response, error) {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return Response{}, err
	}

	data := make([]model.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, users[i].Serialize())
	}
	return Response{Msg: "ok", Data: data}, nil
}

func (h *UserHandler) GetUser(c echo.Context, payload *model.ByIDPayload) (Response, error) {
	user, err := h.userService.Get(c.Request().Context(), payload.ID)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "ok", Data: user.Serialize()}, nil
}

func (h *UserHandler) GetFavorites(c echo.Context, payload *model.ByIDPayload) (Response, error) {
	favorites, err := h.favoriteService.List(c.Request().Context(), payload.ID)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "ok", Data: favorites}, nil
}

func (h *UserHandler) CreateUser(c echo.Context, payload *model.CreateUserPayload) (Response, error) {
	user, err := h.userService.Create(c.Request().Context(), payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "user created successfully", Data: user.Serialize()}, nil
}

func (h *UserHandler) UpdateUser(c echo.Context, payload *model.UpdateUserPayload) (Response, error) {
	user, err := h.userService.Update(c.Request().Context(), payload)
	if err != nil {
		return Response{}, err
	}
	return Response{Msg: "user updated successfully", Data: user.Serialize()}, nil
}

func (h *UserHandler) DeleteUser(c echo.Context, payload *model.ByIDPayload) error {
	return h.userService.Delete(c.Request().Context(), payload.ID)
}
