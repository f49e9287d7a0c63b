package model

import "github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/validation"

// Planet is a world characters live on.
type Planet struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:20;not null;uniqueIndex"`
	Population int64  `gorm:"not null"`
	Diameter   int64  `gorm:"not null"`
	Climated   string `gorm:"size:20;not null"`
	Terrain    string `gorm:"size:20;not null"`
}

func (Planet) TableName() string { return "planets" }

type PlanetResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Population int64  `json:"population"`
	Diameter   int64  `json:"diameter"`
	Climated   string `json:"climated"`
	Terrain    string `json:"terrain"`
}

func (p *Planet) Serialize() PlanetResponse {
	return PlanetResponse{
		ID:         p.ID,
		Name:       p.Name,
		Population: p.Population,
		Diameter:   p.Diameter,
		Climated:   p.Climated,
		Terrain:    p.Terrain,
	}
}

// PlanetDetail is a planet with its resident characters ordered by id.
type PlanetDetail struct {
	PlanetResponse
	Residents []CharacterResponse `json:"residents"`
}

func NewPlanetDetail(p *Planet, residents []Character) PlanetDetail {
	detail := PlanetDetail{
		PlanetResponse: p.Serialize(),
		Residents:      make([]CharacterResponse, 0, len(residents)),
	}
	for i := range residents {
		detail.Residents = append(detail.Residents, residents[i].Serialize())
	}
	return detail
}

// ------------------------------------------------------------

type CreatePlanetPayload struct {
	Name       *string `json:"name" validate:"required,max=20"`
	Population *int64  `json:"population" validate:"required,min=0"`
	Diameter   *int64  `json:"diameter" validate:"required,min=0"`
	Climated   *string `json:"climated" validate:"required,max=20"`
	Terrain    *string `json:"terrain" validate:"required,max=20"`
}

func (p *CreatePlanetPayload) Validate() error {
	return validation.Struct(p)
}

func (p *CreatePlanetPayload) RequiresBody() bool { return true }

// ------------------------------------------------------------

type UpdatePlanetPayload struct {
	ID         uint    `param:"id" json:"-"`
	Name       *string `json:"name" validate:"omitempty,max=20"`
	Population *int64  `json:"population" validate:"omitempty,min=0"`
	Diameter   *int64  `json:"diameter" validate:"omitempty,min=0"`
	Climated   *string `json:"climated" validate:"omitempty,max=20"`
	Terrain    *string `json:"terrain" validate:"omitempty,max=20"`
}

func (p *UpdatePlanetPayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdatePlanetPayload) RequiresBody() bool { return true }
