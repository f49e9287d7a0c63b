package service

import (
	"context"
	"fmt"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/errs"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
)

type PlanetService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPlanetService(s *server.Server, repos *repository.Repositories) *PlanetService {
	return &PlanetService{server: s, repos: repos}
}

func (s *PlanetService) List(ctx context.Context) ([]model.Planet, error) {
	return s.repos.Planets.List(ctx)
}

// Get returns the planet with its residents ordered by id.
func (s *PlanetService) Get(ctx context.Context, id uint) (*model.PlanetDetail, error) {
	var detail model.PlanetDetail

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		planet, err := tx.Planets.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if planet == nil {
			return notFound("planet", id)
		}

		residents, err := tx.Planets.ListResidents(ctx, id)
		if err != nil {
			return err
		}

		detail = model.NewPlanetDetail(planet, residents)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (s *PlanetService) Create(ctx context.Context, payload *model.CreatePlanetPayload) (*model.Planet, error) {
	planet := &model.Planet{
		Name:       *payload.Name,
		Population: *payload.Population,
		Diameter:   *payload.Diameter,
		Climated:   *payload.Climated,
		Terrain:    *payload.Terrain,
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Planets.GetByName(ctx, planet.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("planet %s already exists", planet.Name)
		}
		return tx.Planets.Create(ctx, planet)
	})
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().Uint("planet_id", planet.ID).Msg("planet created")

	return planet, nil
}

// Update applies the fields present in payload and keeps the others.
func (s *PlanetService) Update(ctx context.Context, payload *model.UpdatePlanetPayload) (*model.Planet, error) {
	var planet *model.Planet

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		planet, err = tx.Planets.GetByID(ctx, payload.ID)
		if err != nil {
			return err
		}
		if planet == nil {
			return notFound("planet", payload.ID)
		}

		if payload.Name != nil && *payload.Name != planet.Name {
			existing, err := tx.Planets.GetByName(ctx, *payload.Name)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != planet.ID {
				return conflict("planet %s already exists", *payload.Name)
			}
			planet.Name = *payload.Name
		}
		if payload.Population != nil {
			planet.Population = *payload.Population
		}
		if payload.Diameter != nil {
			planet.Diameter = *payload.Diameter
		}
		if payload.Climated != nil {
			planet.Climated = *payload.Climated
		}
		if payload.Terrain != nil {
			planet.Terrain = *payload.Terrain
		}

		return tx.Planets.Save(ctx, planet)
	})
	if err != nil {
		return nil, err
	}

	return planet, nil
}

// Delete removes the planet and the favorites pointing at it. A planet that
// still has residents is kept.
func (s *PlanetService) Delete(ctx context.Context, id uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		planet, err := tx.Planets.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if planet == nil {
			return notFound("planet", id)
		}

		residents, err := tx.Planets.CountResidents(ctx, id)
		if err != nil {
			return err
		}
		if residents > 0 {
			code := "PLANET_HAS_RESIDENTS"
			return errs.NewConflictError(fmt.Sprintf("planet %d still has residents", id), &code)
		}

		if err := tx.Favorites.DeleteByPlanet(ctx, id); err != nil {
			return err
		}
		return tx.Planets.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.server.Logger.Info().Uint("planet_id", id).Msg("planet deleted")

	return nil
}
