package service

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
)

type CharacterService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewCharacterService(s *server.Server, repos *repository.Repositories) *CharacterService {
	return &CharacterService{server: s, repos: repos}
}

func (s *CharacterService) List(ctx context.Context) ([]model.Character, error) {
	return s.repos.Characters.List(ctx)
}

// Get returns the character with its planet nested.
func (s *CharacterService) Get(ctx context.Context, id uint) (*model.CharacterDetail, error) {
	character, err := s.repos.Characters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, notFound("character", id)
	}

	detail := model.NewCharacterDetail(character, character.Planet)
	return &detail, nil
}

func (s *CharacterService) Create(ctx context.Context, payload *model.CreateCharacterPayload) (*model.Character, error) {
	character := &model.Character{
		Name:     *payload.Name,
		Specie:   *payload.Specie,
		Gender:   *payload.Gender,
		Age:      *payload.Age,
		Height:   *payload.Height,
		Weight:   *payload.Weight,
		PlanetID: *payload.PlanetID,
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		planet, err := tx.Planets.GetByID(ctx, character.PlanetID)
		if err != nil {
			return err
		}
		if planet == nil {
			return notFound("planet", character.PlanetID)
		}

		existing, err := tx.Characters.GetByName(ctx, character.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("character %s already exists", character.Name)
		}

		return tx.Characters.Create(ctx, character)
	})
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().Uint("character_id", character.ID).Msg("character created")

	return character, nil
}

// Update applies the fields present in payload and keeps the others.
func (s *CharacterService) Update(ctx context.Context, payload *model.UpdateCharacterPayload) (*model.Character, error) {
	var character *model.Character

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		character, err = tx.Characters.GetByID(ctx, payload.ID)
		if err != nil {
			return err
		}
		if character == nil {
			return notFound("character", payload.ID)
		}

		if payload.Name != nil && *payload.Name != character.Name {
			existing, err := tx.Characters.GetByName(ctx, *payload.Name)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != character.ID {
				return conflict("character %s already exists", *payload.Name)
			}
			character.Name = *payload.Name
		}
		if payload.PlanetID != nil && *payload.PlanetID != character.PlanetID {
			planet, err := tx.Planets.GetByID(ctx, *payload.PlanetID)
			if err != nil {
				return err
			}
			if planet == nil {
				return notFound("planet", *payload.PlanetID)
			}
			character.PlanetID = planet.ID
			character.Planet = planet
		}
		if payload.Specie != nil {
			character.Specie = *payload.Specie
		}
		if payload.Gender != nil {
			character.Gender = *payload.Gender
		}
		if payload.Age != nil {
			character.Age = *payload.Age
		}
		if payload.Height != nil {
			character.Height = *payload.Height
		}
		if payload.Weight != nil {
			character.Weight = *payload.Weight
		}

		return tx.Characters.Save(ctx, character)
	})
	if err != nil {
		return nil, err
	}

	return character, nil
}

// Delete removes the character and the favorites pointing at it.
func (s *CharacterService) Delete(ctx context.Context, id uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		character, err := tx.Characters.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if character == nil {
			return notFound("character", id)
		}

		if err := tx.Favorites.DeleteByCharacter(ctx, id); err != nil {
			return err
		}
		return tx.Characters.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.server.Logger.Info().Uint("character_id", id).Msg("character deleted")

	return nil
}
