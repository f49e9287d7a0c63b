package service

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/pkg/errors"
)

type UserService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{server: s, repos: repos}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repos.Users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", id)
	}
	return user, nil
}

// Create stores a new user with a hashed password. is_active defaults to true.
func (s *UserService) Create(ctx context.Context, payload *model.CreateUserPayload) (*model.User, error) {
	user := &model.User{
		Name:     *payload.Name,
		Email:    *payload.Email,
		Password: *payload.Password,
		IsActive: true,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := user.HashPassword(); err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("user with email %s already exists", user.Email)
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().Uint("user_id", user.ID).Msg("user created")

	return user, nil
}

// Update applies the fields present in payload and keeps the others.
func (s *UserService) Update(ctx context.Context, payload *model.UpdateUserPayload) (*model.User, error) {
	var user *model.User

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		user, err = tx.Users.GetByID(ctx, payload.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return notFound("user", payload.ID)
		}

		if payload.Email != nil && *payload.Email != user.Email {
			existing, err := tx.Users.GetByEmail(ctx, *payload.Email)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != user.ID {
				return conflict("user with email %s already exists", *payload.Email)
			}
			user.Email = *payload.Email
		}
		if payload.Name != nil {
			user.Name = *payload.Name
		}
		if payload.IsActive != nil {
			user.IsActive = *payload.IsActive
		}
		if payload.Password != nil {
			user.Password = *payload.Password
			if err := user.HashPassword(); err != nil {
				return errors.Wrap(err, "hashing password")
			}
		}

		return tx.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the user and its favorites.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return notFound("user", id)
		}

		if err := tx.Favorites.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.server.Logger.Info().Uint("user_id", id).Msg("user deleted")

	return nil
}
