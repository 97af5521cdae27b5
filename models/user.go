package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Nome     string `json:"nome"`
	Cognome  string `json:"cognome"`
	Telefono string `json:"telefono"`
	Role     Role   `json:"role"`
}

// DisplayName is the denormalized name attributed to bookings.
func (u User) DisplayName() string {
	return u.Nome + " " + u.Cognome
}

func UserFromRecord(rec *core.Record) User {
	role := Role(rec.GetString("role"))
	if role == "" {
		role = RoleUser
	}
	return User{
		UID:      rec.Id,
		Email:    rec.GetString("email"),
		Nome:     rec.GetString("nome"),
		Cognome:  rec.GetString("cognome"),
		Telefono: rec.GetString("telefono"),
		Role:     role,
	}
}

type RoleForm struct {
	Role Role `json:"role"`
}

func (f *RoleForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Role, validation.Required, validation.In(RoleUser, RoleAdmin)),
	)
}
