package repository

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FavoriteRepository manages both favorite join tables.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListPlanets returns the user's favorite planets with the planet preloaded.
func (r *FavoriteRepository) ListPlanets(ctx context.Context, userID uint) ([]model.FavoritePlanet, error) {
	favorites := make([]model.FavoritePlanet, 0)
	err := r.db.WithContext(ctx).
		Preload("Planet").
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error
	if err != nil {
		return nil, errors.Wrapf(err, "listing favorite planets of user %d", userID)
	}
	return favorites, nil
}

// ListCharacters returns the user's favorite characters with the character preloaded.
func (r *FavoriteRepository) ListCharacters(ctx context.Context, userID uint) ([]model.FavoriteCharacter, error) {
	favorites := make([]model.FavoriteCharacter, 0)
	err := r.db.WithContext(ctx).
		Preload("Character").
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error
	if err != nil {
		return nil, errors.Wrapf(err, "listing favorite characters of user %d", userID)
	}
	return favorites, nil
}

func (r *FavoriteRepository) GetPlanet(ctx context.Context, userID, planetID uint) (*model.FavoritePlanet, error) {
	var favorite model.FavoritePlanet
	err := r.db.WithContext(ctx).Where("user_id = ? AND planet_id = ?", userID, planetID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting favorite planet")
	}
	return &favorite, nil
}

func (r *FavoriteRepository) GetCharacter(ctx context.Context, userID, characterID uint) (*model.FavoriteCharacter, error) {
	var favorite model.FavoriteCharacter
	err := r.db.WithContext(ctx).Where("user_id = ? AND character_id = ?", userID, characterID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting favorite character")
	}
	return &favorite, nil
}

func (r *FavoriteRepository) CreatePlanet(ctx context.Context, favorite *model.FavoritePlanet) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("Planet").Create(favorite).Error, "creating favorite planet")
}

func (r *FavoriteRepository) CreateCharacter(ctx context.Context, favorite *model.FavoriteCharacter) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("Character").Create(favorite).Error, "creating favorite character")
}

func (r *FavoriteRepository) DeletePlanet(ctx context.Context, id uint) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&model.FavoritePlanet{}, id).Error, "deleting favorite planet %d", id)
}

func (r *FavoriteRepository) DeleteCharacter(ctx context.Context, id uint) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&model.FavoriteCharacter{}, id).Error, "deleting favorite character %d", id)
}

// DeleteByUser removes every favorite row of the user.
func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&model.FavoritePlanet{}).Error; err != nil {
		return errors.Wrapf(err, "deleting favorite planets of user %d", userID)
	}
	if err := db.Where("user_id = ?", userID).Delete(&model.FavoriteCharacter{}).Error; err != nil {
		return errors.Wrapf(err, "deleting favorite characters of user %d", userID)
	}
	return nil
}

// DeleteByPlanet removes every favorite row pointing at the planet.
func (r *FavoriteRepository) DeleteByPlanet(ctx context.Context, planetID uint) error {
	err := r.db.WithContext(ctx).Where("planet_id = ?", planetID).Delete(&model.FavoritePlanet{}).Error
	return errors.Wrapf(err, "deleting favorites of planet %d", planetID)
}

// DeleteByCharacter removes every favorite row pointing at the character.
func (r *FavoriteRepository) DeleteByCharacter(ctx context.Context, characterID uint) error {
	err := r.db.WithContext(ctx).Where("character_id = ?", characterID).Delete(&model.FavoriteCharacter{}).Error
	return errors.Wrapf(err, "deleting favorites of character %d", characterID)
}
