package models

import (
	"time"

	"amora/tools"
)

const USER_GENDER_MALE = "male"
const USER_GENDER_FEMALE = "female"
const USER_GENDER_OTHER = "other"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// User representa um usuario no sistema.
// Latitude/Longitude são opcionais; sem coordenadas o filtro de distância
// simplesmente não se aplica.
type User struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name            string     `gorm:"not null" json:"name" form:"name"`
	Email           string     `gorm:"not null;unique" json:"email" form:"email"`
	Gender          string     `gorm:"not null" json:"gender" form:"gender"`
	Birthdate       string     `gorm:"default:''" json:"birthdate" form:"birthdate"` // YYYY-MM-DD
	Latitude        *float64   `json:"latitude" form:"latitude"`
	Longitude       *float64   `json:"longitude" form:"longitude"`
	Bio             string     `gorm:"type:text" json:"bio" form:"bio"`
	ProfileImageURL string     `gorm:"column:profile_image_url" json:"profile_image_url" form:"profile_image_url"`
	Status          int        `gorm:"default:0" json:"status" form:"status"`
	Platform        string     `gorm:"default:''" json:"platform" form:"platform"`
	CreatedAt       *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at" form:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Gender == "" {
		return "gender"
	} else if user.Birthdate == "" {
		return "birthdate"
	}
	return ""
}

// Age calcula a idade a partir do birthdate (YYYY-MM-DD).
// Retorna (0, false) se o campo estiver vazio ou inválido.
func (user User) Age(now time.Time) (int, bool) {
	return tools.AgeFromBirthdate(user.Birthdate, now)
}

// HasCoordinates diz se o usuário informou localização.
func (user User) HasCoordinates() bool {
	return user.Latitude != nil && user.Longitude != nil
}
