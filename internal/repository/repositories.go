package repository

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"gorm.io/gorm"
)

type Repositories struct {
	db *gorm.DB

	Users      *UserRepository
	Planets    *PlanetRepository
	Characters *CharacterRepository
	Favorites  *FavoriteRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Gorm)
}

// New builds every repository on top of db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Users:      NewUserRepository(db),
		Planets:    NewPlanetRepository(db),
		Characters: NewCharacterRepository(db),
		Favorites:  NewFavoriteRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
