package service_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/errs"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/service"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newServices(t *testing.T) (*service.Services, *repository.Repositories) {
	t.Helper()

	srv := testutil.NewServer(t, nil)
	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	require.NoError(t, err)

	return services, repos
}

func requireHTTPError(t *testing.T, err error, status int, msg string) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	if msg != "" {
		assert.Equal(t, msg, httpErr.Message)
	}
	return httpErr
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	user, err := services.Users.Create(ctx, testutil.UserPayload("luke"))
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	stored, err := repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.Password)
	assert.True(t, stored.CheckPassword("secret"))

	inactive := testutil.UserPayload("leia")
	inactive.IsActive = ptr(false)
	user, err = services.Users.Create(ctx, inactive)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = services.Users.Create(ctx, testutil.UserPayload("luke"))
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "user with email luke@example.com already exists")
	assert.Equal(t, errs.CodeConflict, httpErr.Code)
}

func TestUserServiceUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	user, err := services.Users.Create(ctx, testutil.UserPayload("luke"))
	require.NoError(t, err)

	updated, err := services.Users.Update(ctx, &model.UpdateUserPayload{ID: user.ID, Name: ptr("skywalker")})
	require.NoError(t, err)
	assert.Equal(t, "skywalker", updated.Name)
	assert.Equal(t, "luke@example.com", updated.Email)
	assert.True(t, updated.IsActive)

	updated, err = services.Users.Update(ctx, &model.UpdateUserPayload{ID: user.ID, IsActive: ptr(false), Password: ptr("new-secret")})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	stored, err := repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "skywalker", stored.Name)
	assert.True(t, stored.CheckPassword("new-secret"))

	_, err = services.Users.Update(ctx, &model.UpdateUserPayload{ID: 999, Name: ptr("nobody")})
	requireHTTPError(t, err, http.StatusNotFound, "user with id 999 does not exist")
}

func TestUserServiceUpdateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	services, _ := newServices(t)

	luke, err := services.Users.Create(ctx, testutil.UserPayload("luke"))
	require.NoError(t, err)
	_, err = services.Users.Create(ctx, testutil.UserPayload("leia"))
	require.NoError(t, err)

	_, err = services.Users.Update(ctx, &model.UpdateUserPayload{ID: luke.ID, Email: ptr("leia@example.com")})
	requireHTTPError(t, err, http.StatusBadRequest, "user with email leia@example.com already exists")

	// Re-submitting the current email is not a conflict.
	_, err = services.Users.Update(ctx, &model.UpdateUserPayload{ID: luke.ID, Email: ptr("luke@example.com")})
	require.NoError(t, err)
}

func TestUserServiceDeleteRemovesFavorites(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	user := testutil.CreateUser(t, repos, "han")
	planet := testutil.CreatePlanet(t, repos, "Corellia")
	character := testutil.CreateCharacter(t, repos, "Chewbacca", planet.ID)

	_, err := services.Favorites.AddPlanet(ctx, user.ID, planet.ID)
	require.NoError(t, err)
	_, err = services.Favorites.AddCharacter(ctx, user.ID, character.ID)
	require.NoError(t, err)

	require.NoError(t, services.Users.Delete(ctx, user.ID))

	favorites, err := repos.Favorites.ListPlanets(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	err = services.Users.Delete(ctx, user.ID)
	requireHTTPError(t, err, http.StatusNotFound, "user with id 1 does not exist")
}

func TestPlanetServiceGetIncludesResidents(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	planet, err := services.Planets.Create(ctx, testutil.PlanetPayload("Alderaan"))
	require.NoError(t, err)

	detail, err := services.Planets.Get(ctx, planet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alderaan", detail.Name)
	assert.NotNil(t, detail.Residents)
	assert.Empty(t, detail.Residents)

	testutil.CreateCharacter(t, repos, "Leia", planet.ID)
	testutil.CreateCharacter(t, repos, "Bail", planet.ID)

	detail, err = services.Planets.Get(ctx, planet.ID)
	require.NoError(t, err)
	require.Len(t, detail.Residents, 2)
	assert.Equal(t, "Leia", detail.Residents[0].Name)
	assert.Equal(t, "Bail", detail.Residents[1].Name)

	_, err = services.Planets.Get(ctx, 404)
	requireHTTPError(t, err, http.StatusNotFound, "planet with id 404 does not exist")
}

func TestPlanetServiceCreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	services, _ := newServices(t)

	_, err := services.Planets.Create(ctx, testutil.PlanetPayload("Hoth"))
	require.NoError(t, err)

	_, err = services.Planets.Create(ctx, testutil.PlanetPayload("Hoth"))
	requireHTTPError(t, err, http.StatusBadRequest, "planet Hoth already exists")
}

func TestPlanetServiceUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	services, _ := newServices(t)

	planet, err := services.Planets.Create(ctx, testutil.PlanetPayload("Alderaan"))
	require.NoError(t, err)

	updated, err := services.Planets.Update(ctx, &model.UpdatePlanetPayload{ID: planet.ID, Name: ptr("Hoth")})
	require.NoError(t, err)

	assert.Equal(t, "Hoth", updated.Name)
	assert.Equal(t, planet.Population, updated.Population)
	assert.Equal(t, planet.Diameter, updated.Diameter)
	assert.Equal(t, planet.Climated, updated.Climated)
	assert.Equal(t, planet.Terrain, updated.Terrain)

	updated, err = services.Planets.Update(ctx, &model.UpdatePlanetPayload{ID: planet.ID, Population: ptr(int64(0))})
	require.NoError(t, err)
	assert.Zero(t, updated.Population)
	assert.Equal(t, "Hoth", updated.Name)
}

func TestPlanetServiceDelete(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	inhabited := testutil.CreatePlanet(t, repos, "Tatooine")
	testutil.CreateCharacter(t, repos, "Luke", inhabited.ID)

	err := services.Planets.Delete(ctx, inhabited.ID)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "planet 1 still has residents")
	assert.Equal(t, "PLANET_HAS_RESIDENTS", httpErr.Code)

	empty := testutil.CreatePlanet(t, repos, "Hoth")
	user := testutil.CreateUser(t, repos, "rey")
	_, err = services.Favorites.AddPlanet(ctx, user.ID, empty.ID)
	require.NoError(t, err)

	require.NoError(t, services.Planets.Delete(ctx, empty.ID))

	favorites, err := services.Favorites.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites.FavoritePlanets)

	err = services.Planets.Delete(ctx, empty.ID)
	requireHTTPError(t, err, http.StatusNotFound, "")
}

func TestCharacterServiceCreate(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	planet := testutil.CreatePlanet(t, repos, "Alderaan")

	character, err := services.Characters.Create(ctx, testutil.CharacterPayload("Leia", planet.ID))
	require.NoError(t, err)

	detail, err := services.Characters.Get(ctx, character.ID)
	require.NoError(t, err)
	assert.Equal(t, character.Serialize(), detail.CharacterResponse)
	require.NotNil(t, detail.Planet)
	assert.Equal(t, planet.Serialize(), *detail.Planet)

	_, err = services.Characters.Create(ctx, testutil.CharacterPayload("Leia", planet.ID))
	requireHTTPError(t, err, http.StatusBadRequest, "character Leia already exists")

	_, err = services.Characters.Create(ctx, testutil.CharacterPayload("Ghost", 77))
	requireHTTPError(t, err, http.StatusNotFound, "planet with id 77 does not exist")

	// A missing planet wins over a taken name.
	_, err = services.Characters.Create(ctx, testutil.CharacterPayload("Leia", 77))
	requireHTTPError(t, err, http.StatusNotFound, "planet with id 77 does not exist")
}

func TestServicesLogMutations(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	srv := testutil.NewServer(t, nil)
	srv.Logger = &log
	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	require.NoError(t, err)

	planet, err := services.Planets.Create(ctx, testutil.PlanetPayload("Hoth"))
	require.NoError(t, err)
	user, err := services.Users.Create(ctx, testutil.UserPayload("han"))
	require.NoError(t, err)
	_, err = services.Favorites.AddPlanet(ctx, user.ID, planet.ID)
	require.NoError(t, err)
	require.NoError(t, services.Users.Delete(ctx, user.ID))

	out := buf.String()
	assert.Contains(t, out, `"message":"planet created"`)
	assert.Contains(t, out, `"message":"user created"`)
	assert.Contains(t, out, `"message":"favorite planet added"`)
	assert.Contains(t, out, `"message":"user deleted"`)
	assert.NotContains(t, out, "password")
}

func TestCharacterServiceUpdate(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	tatooine := testutil.CreatePlanet(t, repos, "Tatooine")
	dagobah := testutil.CreatePlanet(t, repos, "Dagobah")
	luke := testutil.CreateCharacter(t, repos, "Luke", tatooine.ID)

	updated, err := services.Characters.Update(ctx, &model.UpdateCharacterPayload{ID: luke.ID, PlanetID: ptr(dagobah.ID)})
	require.NoError(t, err)
	assert.Equal(t, dagobah.ID, updated.PlanetID)
	assert.Equal(t, luke.Name, updated.Name)
	assert.Equal(t, luke.Age, updated.Age)

	_, err = services.Characters.Update(ctx, &model.UpdateCharacterPayload{ID: luke.ID, PlanetID: ptr(uint(50))})
	requireHTTPError(t, err, http.StatusNotFound, "planet with id 50 does not exist")

	_, err = services.Characters.Update(ctx, &model.UpdateCharacterPayload{ID: 50, Age: ptr(int64(1))})
	requireHTTPError(t, err, http.StatusNotFound, "character with id 50 does not exist")
}

func TestCharacterServiceDeleteRemovesFavorites(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	planet := testutil.CreatePlanet(t, repos, "Kashyyyk")
	chewie := testutil.CreateCharacter(t, repos, "Chewbacca", planet.ID)
	user := testutil.CreateUser(t, repos, "han")

	_, err := services.Favorites.AddCharacter(ctx, user.ID, chewie.ID)
	require.NoError(t, err)

	require.NoError(t, services.Characters.Delete(ctx, chewie.ID))

	favorites, err := services.Favorites.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites.FavoriteCharacters)

	// The planet is free to go once its last resident is gone.
	require.NoError(t, services.Planets.Delete(ctx, planet.ID))
}

func TestFavoriteServicePlanets(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	user := testutil.CreateUser(t, repos, "luke")
	planet := testutil.CreatePlanet(t, repos, "Dagobah")

	favorite, err := services.Favorites.AddPlanet(ctx, user.ID, planet.ID)
	require.NoError(t, err)
	assert.NotZero(t, favorite.ID)

	_, err = services.Favorites.AddPlanet(ctx, user.ID, planet.ID)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "planet 1 is already a favorite of user 1")
	assert.Equal(t, errs.CodeConflict, httpErr.Code)

	_, err = services.Favorites.AddPlanet(ctx, 9, planet.ID)
	requireHTTPError(t, err, http.StatusNotFound, "user with id 9 does not exist")

	_, err = services.Favorites.AddPlanet(ctx, user.ID, 9)
	requireHTTPError(t, err, http.StatusNotFound, "planet with id 9 does not exist")

	listing, err := services.Favorites.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listing.FavoritePlanets, 1)
	assert.Equal(t, "Dagobah", listing.FavoritePlanets[0].Name)

	require.NoError(t, services.Favorites.RemovePlanet(ctx, user.ID, planet.ID))

	err = services.Favorites.RemovePlanet(ctx, user.ID, planet.ID)
	requireHTTPError(t, err, http.StatusNotFound, "favorite not found")
}

func TestFavoriteServiceCharacters(t *testing.T) {
	ctx := context.Background()
	services, repos := newServices(t)

	user := testutil.CreateUser(t, repos, "leia")
	planet := testutil.CreatePlanet(t, repos, "Corellia")
	han := testutil.CreateCharacter(t, repos, "Han", planet.ID)

	_, err := services.Favorites.AddCharacter(ctx, user.ID, han.ID)
	require.NoError(t, err)

	_, err = services.Favorites.AddCharacter(ctx, user.ID, han.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "character 1 is already a favorite of user 1")

	// Only favorite characters: the listing still works.
	listing, err := services.Favorites.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, listing.FavoritePlanets)
	require.Len(t, listing.FavoriteCharacters, 1)
	assert.Equal(t, "Han", listing.FavoriteCharacters[0].Name)
	assert.Equal(t, "leia", listing.UserData.Name)

	err = services.Favorites.RemoveCharacter(ctx, user.ID, 33)
	requireHTTPError(t, err, http.StatusNotFound, "character with id 33 does not exist")

	require.NoError(t, services.Favorites.RemoveCharacter(ctx, user.ID, han.ID))

	_, err = services.Favorites.List(ctx, 77)
	requireHTTPError(t, err, http.StatusNotFound, "user with id 77 does not exist")
}
