package repository

import (
	"context"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PlanetRepository struct {
	db *gorm.DB
}

func NewPlanetRepository(db *gorm.DB) *PlanetRepository {
	return &PlanetRepository{db: db}
}

func (r *PlanetRepository) List(ctx context.Context) ([]model.Planet, error) {
	planets := make([]model.Planet, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&planets).Error; err != nil {
		return nil, errors.Wrap(err, "listing planets")
	}
	return planets, nil
}

func (r *PlanetRepository) GetByID(ctx context.Context, id uint) (*model.Planet, error) {
	var planet model.Planet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&planet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "getting planet %d", id)
	}
	return &planet, nil
}

func (r *PlanetRepository) GetByName(ctx context.Context, name string) (*model.Planet, error) {
	var planet model.Planet
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&planet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting planet by name")
	}
	return &planet, nil
}

// ListResidents returns the characters living on the planet, ordered by id.
func (r *PlanetRepository) ListResidents(ctx context.Context, planetID uint) ([]model.Character, error) {
	residents := make([]model.Character, 0)
	if err := r.db.WithContext(ctx).Where("planet_id = ?", planetID).Order("id").Find(&residents).Error; err != nil {
		return nil, errors.Wrapf(err, "listing residents of planet %d", planetID)
	}
	return residents, nil
}

func (r *PlanetRepository) CountResidents(ctx context.Context, planetID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Character{}).Where("planet_id = ?", planetID).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "counting residents of planet %d", planetID)
	}
	return count, nil
}

func (r *PlanetRepository) Create(ctx context.Context, planet *model.Planet) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(planet).Error, "creating planet")
}

func (r *PlanetRepository) Save(ctx context.Context, planet *model.Planet) error {
	return errors.Wrapf(r.db.WithContext(ctx).Save(planet).Error, "saving planet %d", planet.ID)
}

func (r *PlanetRepository) Delete(ctx context.Context, id uint) error {
	return errors.Wrapf(r.db.WithContext(ctx).Delete(&model.Planet{}, id).Error, "deleting planet %d", id)
}
