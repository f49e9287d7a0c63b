package model

import "github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/validation"

// FavoritePlanet marks a planet as liked by a user. A pair is stored once.
type FavoritePlanet struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_favorite_planets_user_planet"`
	PlanetID uint `gorm:"not null;uniqueIndex:idx_favorite_planets_user_planet"`

	Planet *Planet `gorm:"foreignKey:PlanetID"`
}

func (FavoritePlanet) TableName() string { return "favorite_planets" }

type FavoritePlanetResponse struct {
	ID       uint `json:"id"`
	UserID   uint `json:"user_id"`
	PlanetID uint `json:"planet_id"`
}

func (f *FavoritePlanet) Serialize() FavoritePlanetResponse {
	return FavoritePlanetResponse{
		ID:       f.ID,
		UserID:   f.UserID,
		PlanetID: f.PlanetID,
	}
}

// FavoriteCharacter marks a character as liked by a user. A pair is stored once.
type FavoriteCharacter struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_favorite_characters_user_character"`
	CharacterID uint `gorm:"not null;uniqueIndex:idx_favorite_characters_user_character"`

	Character *Character `gorm:"foreignKey:CharacterID"`
}

func (FavoriteCharacter) TableName() string { return "favorite_characters" }

type FavoriteCharacterResponse struct {
	ID          uint `json:"id"`
	UserID      uint `json:"user_id"`
	CharacterID uint `json:"character_id"`
}

func (f *FavoriteCharacter) Serialize() FavoriteCharacterResponse {
	return FavoriteCharacterResponse{
		ID:          f.ID,
		UserID:      f.UserID,
		CharacterID: f.CharacterID,
	}
}

// UserFavorites is the favorites listing of one user.
type UserFavorites struct {
	UserData           UserResponse        `json:"user_data"`
	FavoritePlanets    []PlanetResponse    `json:"favorite_planets"`
	FavoriteCharacters []CharacterResponse `json:"favorite_characters"`
}

func NewUserFavorites(u *User, planets []FavoritePlanet, characters []FavoriteCharacter) UserFavorites {
	favorites := UserFavorites{
		UserData:           u.Serialize(),
		FavoritePlanets:    make([]PlanetResponse, 0, len(planets)),
		FavoriteCharacters: make([]CharacterResponse, 0, len(characters)),
	}
	for i := range planets {
		if planets[i].Planet != nil {
			favorites.FavoritePlanets = append(favorites.FavoritePlanets, planets[i].Planet.Serialize())
		}
	}
	for i := range characters {
		if characters[i].Character != nil {
			favorites.FavoriteCharacters = append(favorites.FavoriteCharacters, characters[i].Character.Serialize())
		}
	}
	return favorites
}

// ------------------------------------------------------------

type FavoritePlanetPayload struct {
	PlanetID uint `param:"planet_id" json:"-"`
	UserID   uint `param:"user_id" json:"-"`
}

func (p *FavoritePlanetPayload) Validate() error {
	return validation.Struct(p)
}

type FavoriteCharacterPayload struct {
	CharacterID uint `param:"character_id" json:"-"`
	UserID      uint `param:"user_id" json:"-"`
}

func (p *FavoriteCharacterPayload) Validate() error {
	return validation.Struct(p)
}
