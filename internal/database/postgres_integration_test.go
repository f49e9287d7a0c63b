//go:build integration

package database_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/database"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/errs"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/logger"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/sqlerr"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway PostgreSQL container and returns its URL.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("starwars"),
		postgres.WithUsername("starwars"),
		postgres.WithPassword("starwars"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return url
}

func TestPostgres(t *testing.T) {
	ctx := context.Background()

	cfg := testutil.NewConfig(t)
	cfg.Database.URL = startPostgres(t)
	require.Equal(t, database.DriverPostgres, cfg.Database.Driver())

	log := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &log, cfg))
	require.NoError(t, database.Migrate(ctx, &log, cfg))

	db, err := database.New(cfg, &log, &logger.LoggerService{})
	require.NoError(t, err)
	defer db.Close()

	require.NotNil(t, db.Pool)
	require.NoError(t, db.Ping(ctx))

	repos := repository.New(db.Gorm)

	tatooine := testutil.CreatePlanet(t, repos, "Tatooine")
	testutil.CreateCharacter(t, repos, "Luke", tatooine.ID)

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		err := repos.Planets.Create(ctx, &model.Planet{Name: "Tatooine", Climated: "arid", Terrain: "desert"})
		require.Error(t, err)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, sqlerr.HandleError(err), &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, errs.CodeConflict, httpErr.Code)
		assert.Equal(t, "A Planet with this Name already exists", httpErr.Message)
	})

	t.Run("residents block planet deletion", func(t *testing.T) {
		err := repos.Planets.Delete(ctx, tatooine.ID)
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
	})

	t.Run("transactions roll back", func(t *testing.T) {
		_ = repos.Transaction(ctx, func(tx *repository.Repositories) error {
			testutil.CreatePlanet(t, tx, "Hoth")
			return errs.NewInternalServerError()
		})

		planet, err := repos.Planets.GetByName(ctx, "Hoth")
		require.NoError(t, err)
		assert.Nil(t, planet)
	})
}
