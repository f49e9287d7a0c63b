package service

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
)

type Services struct {
	Users      *UserService
	Planets    *PlanetService
	Characters *CharacterService
	Favorites  *FavoriteService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users:      NewUserService(s, repos),
		Planets:    NewPlanetService(s, repos),
		Characters: NewCharacterService(s, repos),
		Favorites:  NewFavoriteService(s, repos),
	}, nil
}
