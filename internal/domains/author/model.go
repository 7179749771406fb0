package author

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of an author account.
type Role string

const (
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Author is the identity record behind every account.
// PasswordHash never leaves the service: json:"-" keeps it out of every
// response payload. GoogleID is set for accounts provisioned through the
// external identity bridge; those accounts have no password.
type Author struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	Role         Role      `json:"role"`
	GoogleID     *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthorDTO is the public representation, safe to expose.
type AuthorDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDTO converts the entity to its public representation.
func (a *Author) ToDTO() AuthorDTO {
	return AuthorDTO{
		ID:        a.ID,
		Name:      a.Name,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
