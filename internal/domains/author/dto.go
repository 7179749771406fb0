package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest carries the self-registration payload.
// Role is optional and defaults to "author".
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"last_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Role,
			validation.In(RoleAuthor, RoleAdmin),
		),
	)
}

// LoginRequest carries password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse returns the access token; the refresh token travels in an
// HttpOnly cookie, never in the body.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"-"`
	Author       AuthorDTO `json:"author"`
}

// ExternalProfile is the verified profile the identity bridge hands over
// after the provider authenticated the user out-of-band.
type ExternalProfile struct {
	Email      string
	GivenName  string
	FamilyName string
	ExternalID string
}

func (p ExternalProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.ExternalID, validation.Required),
	)
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateAuthorRequest is shared by the self-service PUT /authors/me and the
// admin PUT /authors/:id. Provided fields are validated with the same rules
// as registration; absent fields are retained.
type UpdateAuthorRequest struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"last_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(1, 100)),
		),
		validation.Field(&r.LastName,
			validation.When(r.LastName != nil, validation.Length(1, 100)),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != nil, is.Email, validation.Length(5, 255)),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != nil, validation.Length(8, 128)),
		),
	)
}

// RegisteredResponse is the 201 payload: the new author's id only.
type RegisteredResponse struct {
	ID uuid.UUID `json:"id"`
}
