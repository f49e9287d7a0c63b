// Package testutil builds servers backed by a throwaway SQLite database and
// seeds catalogue records for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/config"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/database"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/logger"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewConfig returns the default configuration pointed at a fresh SQLite file
// in t's temp dir, with rate limiting off.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Server.RateLimit = 0
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "starwars_test.db")
	cfg.Observability.Environment = "test"
	cfg.Observability.Logging.Level = "error"

	return cfg
}

// NewServer migrates and opens the database described by cfg. A nil cfg
// means NewConfig(t). The database is closed when the test ends.
func NewServer(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	if cfg == nil {
		cfg = NewConfig(t)
	}

	log := zerolog.Nop()

	require.NoError(t, database.Migrate(context.Background(), &log, cfg))

	srv, err := server.New(cfg, &log, &logger.LoggerService{})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = srv.DB.Close()
	})

	return srv
}

func ptr[T any](v T) *T { return &v }

// CreateUser stores an active user named name with email <name>@example.com.
func CreateUser(t *testing.T, repos *repository.Repositories, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret",
		IsActive: true,
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, repos.Users.Create(context.Background(), user))

	return user
}

// CreatePlanet stores a planet named name.
func CreatePlanet(t *testing.T, repos *repository.Repositories, name string) *model.Planet {
	t.Helper()

	planet := &model.Planet{
		Name:       name,
		Population: 200000,
		Diameter:   10465,
		Climated:   "arid",
		Terrain:    "desert",
	}
	require.NoError(t, repos.Planets.Create(context.Background(), planet))

	return planet
}

// CreateCharacter stores a character named name living on planetID.
func CreateCharacter(t *testing.T, repos *repository.Repositories, name string, planetID uint) *model.Character {
	t.Helper()

	character := &model.Character{
		Name:     name,
		Specie:   "human",
		Gender:   "male",
		Age:      19,
		Height:   172,
		Weight:   77,
		PlanetID: planetID,
	}
	require.NoError(t, repos.Characters.Create(context.Background(), character))

	return character
}

// CharacterPayload returns a complete create payload for a character.
func CharacterPayload(name string, planetID uint) *model.CreateCharacterPayload {
	return &model.CreateCharacterPayload{
		Name:     ptr(name),
		Specie:   ptr("human"),
		Gender:   ptr("female"),
		Age:      ptr(int64(27)),
		Height:   ptr(int64(150)),
		Weight:   ptr(int64(49)),
		PlanetID: ptr(planetID),
	}
}

// PlanetPayload returns a complete create payload for a planet.
func PlanetPayload(name string) *model.CreatePlanetPayload {
	return &model.CreatePlanetPayload{
		Name:       ptr(name),
		Population: ptr(int64(2000000000)),
		Diameter:   ptr(int64(12500)),
		Climated:   ptr("temperate"),
		Terrain:    ptr("grasslands"),
	}
}

// UserPayload returns a complete create payload for a user.
func UserPayload(name string) *model.CreateUserPayload {
	return &model.CreateUserPayload{
		Name:     ptr(name),
		Email:    ptr(name + "@example.com"),
		Password: ptr("secret"),
	}
}
