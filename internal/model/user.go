package model

import (
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// User is an account that can mark planets and characters as favorites.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:20;not null"`
	Email    string `gorm:"size:120;not null;uniqueIndex"`
	Password string `gorm:"size:80;not null"`
	IsActive bool   `gorm:"not null"`
}

func (User) TableName() string { return "users" }

// UserResponse is the public view of a User. The password never leaves the store.
type UserResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func (u *User) Serialize() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// ------------------------------------------------------------

type CreateUserPayload struct {
	Name     *string `json:"name" validate:"required,max=20"`
	Email    *string `json:"email" validate:"required,email,max=120"`
	Password *string `json:"password" validate:"required,min=1,max=72"`
	IsActive *bool   `json:"is_active"`
}

func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

func (p *CreateUserPayload) RequiresBody() bool { return true }

// ------------------------------------------------------------

type UpdateUserPayload struct {
	ID       uint    `param:"id" json:"-"`
	Name     *string `json:"name" validate:"omitempty,max=20"`
	Email    *string `json:"email" validate:"omitempty,email,max=120"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
	IsActive *bool   `json:"is_active"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdateUserPayload) RequiresBody() bool { return true }
