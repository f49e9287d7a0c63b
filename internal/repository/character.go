package repository

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CharacterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) List(ctx context.Context) ([]model.Character, error) {
	characters := make([]model.Character, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&characters).Error; err != nil {
		return nil, errors.Wrap(err, "listing characters")
	}
	return characters, nil
}

// GetByID loads the character together with its planet.
func (r *CharacterRepository) GetByID(ctx context.Context, id uint) (*model.Character, error) {
	var character model.Character
	if err := r.db.WithContext(ctx).Preload("Planet").Where("id = ?", id).First(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "getting character %d", id)
	}
	return &character, nil
}

func (r *CharacterRepository) GetByName(ctx context.Context, name string) (*model.Character, error) {
	var character model.Character
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting character by name")
	}
	return &character, nil
}

func (r *CharacterRepository) Create(ctx context.Context, character *model.Character) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("Planet").Create(character).Error, "creating character")
}

func (r *CharacterRepository) Save(ctx context.Context, character *model.Character) error {
	return errors.Wrapf(r.db.WithContext(ctx).Omit("Planet").Save(character).Error, "saving character %d", character.ID)
}

func (r *CharacterRepository) Delete(ctx context.Context, id uint) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&model.Character{}, id).Error, "deleting character %d", id)
}
