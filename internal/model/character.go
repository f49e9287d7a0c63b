package model

import "github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/validation"

// Character lives on exactly one planet.
type Character struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:20;not null;uniqueIndex"`
	Specie   string `gorm:"size:20;not null"`
	Gender   string `gorm:"size:20;not null"`
	Age      int64  `gorm:"not null"`
	Height   int64  `gorm:"not null"`
	Weight   int64  `gorm:"not null"`
	PlanetID uint   `gorm:"not null;index"`

	Planet *Planet `gorm:"foreignKey:PlanetID"`
}

func (Character) TableName() string { return "characters" }

type CharacterResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Specie   string `json:"specie"`
	Gender   string `json:"gender"`
	Age      int64  `json:"age"`
	Height   int64  `json:"height"`
	Weight   int64  `json:"weight"`
	PlanetID uint   `json:"planet_id"`
}

func (c *Character) Serialize() CharacterResponse {
	return CharacterResponse{
		ID:       c.ID,
		Name:     c.Name,
		Specie:   c.Specie,
		Gender:   c.Gender,
		Age:      c.Age,
		Height:   c.Height,
		Weight:   c.Weight,
		PlanetID: c.PlanetID,
	}
}

// CharacterDetail is a character with its home planet nested under "planet".
type CharacterDetail struct {
	CharacterResponse
	Planet *PlanetResponse `json:"planet"`
}

func NewCharacterDetail(c *Character, planet *Planet) CharacterDetail {
	detail := CharacterDetail{CharacterResponse: c.Serialize()}
	if planet != nil {
		p := planet.Serialize()
		detail.Planet = &p
	}
	return detail
}

// ------------------------------------------------------------

type CreateCharacterPayload struct {
	Name     *string `json:"name" validate:"required,max=20"`
	Specie   *string `json:"specie" validate:"required,max=20"`
	Gender   *string `json:"gender" validate:"required,max=20"`
	Age      *int64  `json:"age" validate:"required,min=0"`
	Height   *int64  `json:"height" validate:"required,min=0"`
	Weight   *int64  `json:"weight" validate:"required,min=0"`
	PlanetID *uint   `json:"planet_id" validate:"required"`
}

func (p *CreateCharacterPayload) Validate() error {
	return validation.Struct(p)
}

func (p *CreateCharacterPayload) RequiresBody() bool { return true }

// ------------------------------------------------------------

type UpdateCharacterPayload struct {
	ID       uint    `param:"id" json:"-"`
	Name     *string `json:"name" validate:"omitempty,max=20"`
	Specie   *string `json:"specie" validate:"omitempty,max=20"`
	Gender   *string `json:"gender" validate:"omitempty,max=20"`
	Age      *int64  `json:"age" validate:"omitempty,min=0"`
	Height   *int64  `json:"height" validate:"omitempty,min=0"`
	Weight   *int64  `json:"weight" validate:"omitempty,min=0"`
	PlanetID *uint   `json:"planet_id"`
}

func (p *UpdateCharacterPayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdateCharacterPayload) RequiresBody() bool { return true }
