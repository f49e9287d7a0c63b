package service

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/errs"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
)

type FavoriteService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewFavoriteService(s *server.Server, repos *repository.Repositories) *FavoriteService {
	return &FavoriteService{server: s, repos: repos}
}

// List returns the user's favorites. The user is looked up by id, so a user
// without favorites still gets a listing.
func (s *FavoriteService) List(ctx context.Context, userID uint) (*model.UserFavorites, error) {
	var favorites model.UserFavorites

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return notFound("user", userID)
		}

		planets, err := tx.Favorites.ListPlanets(ctx, userID)
		if err != nil {
			return err
		}
		characters, err := tx.Favorites.ListCharacters(ctx, userID)
		if err != nil {
			return err
		}

		favorites = model.NewUserFavorites(user, planets, characters)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &favorites, nil
}

func (s *FavoriteService) AddPlanet(ctx context.Context, userID, planetID uint) (*model.FavoritePlanet, error) {
	favorite := &model.FavoritePlanet{UserID: userID, PlanetID: planetID}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := requirePlanet(ctx, tx, planetID); err != nil {
			return err
		}

		existing, err := tx.Favorites.GetPlanet(ctx, userID, planetID)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("planet %d is already a favorite of user %d", planetID, userID)
		}

		return tx.Favorites.CreatePlanet(ctx, favorite)
	})
	if err != nil {
		return nil, err
	}

	s.server.Logger.Debug().Uint("user_id", userID).Uint("planet_id", planetID).Msg("favorite planet added")

	return favorite, nil
}

func (s *FavoriteService) RemovePlanet(ctx context.Context, userID, planetID uint) error {
	return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := requirePlanet(ctx, tx, planetID); err != nil {
			return err
		}

		existing, err := tx.Favorites.GetPlanet(ctx, userID, planetID)
		if err != nil {
			return err
		}
		if existing == nil {
			return errs.NewNotFoundError("favorite not found", true, nil)
		}

		return tx.Favorites.DeletePlanet(ctx, existing.ID)
	})
}

func (s *FavoriteService) AddCharacter(ctx context.Context, userID, characterID uint) (*model.FavoriteCharacter, error) {
	favorite := &model.FavoriteCharacter{UserID: userID, CharacterID: characterID}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := requireCharacter(ctx, tx, characterID); err != nil {
			return err
		}

		existing, err := tx.Favorites.GetCharacter(ctx, userID, characterID)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("character %d is already a favorite of user %d", characterID, userID)
		}

		return tx.Favorites.CreateCharacter(ctx, favorite)
	})
	if err != nil {
		return nil, err
	}

	s.server.Logger.Debug().Uint("user_id", userID).Uint("character_id", characterID).Msg("favorite character added")

	return favorite, nil
}

func (s *FavoriteService) RemoveCharacter(ctx context.Context, userID, characterID uint) error {
	return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := requireCharacter(ctx, tx, characterID); err != nil {
			return err
		}

		existing, err := tx.Favorites.GetCharacter(ctx, userID, characterID)
		if err != nil {
			return err
		}
		if existing == nil {
			return errs.NewNotFoundError("favorite not found", true, nil)
		}

		return tx.Favorites.DeleteCharacter(ctx, existing.ID)
	})
}

func requireUser(ctx context.Context, tx *repository.Repositories, id uint) error {
	user, err := tx.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user", id)
	}
	return nil
}

func requirePlanet(ctx context.Context, tx *repository.Repositories, id uint) error {
	planet, err := tx.Planets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if planet == nil {
		return notFound("planet", id)
	}
	return nil
}

func requireCharacter(ctx context.Context, tx *repository.Repositories, id uint) error {
	character, err := tx.Characters.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if character == nil {
		return notFound("character", id)
	}
	return nil
}
