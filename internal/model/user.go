package model

import (
	"unicode/utf8"

	"github.com/deppfellow/daca-chatbot/internal/validation"
)

// MinNameLength is the shortest name, in characters, a user may have.
const MinNameLength = 2

// Address is a postal address attached to a user.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// NewAddress builds an Address from its data representation.
func NewAddress(raw map[string]any) (*Address, error) {
	a := &Address{}
	if err := validation.Decode(raw, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Address) Validate() error {
	return validation.Struct(a)
}

// User is a registered user. Age may be absent.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"email"`
	Age   *int   `json:"age,omitempty"`
}

// NewUser builds a User from its data representation.
func NewUser(raw map[string]any) (*User, error) {
	u := &User{}
	if err := validation.Decode(raw, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	return validation.Collect(validation.Struct(u), validateName(u.Name))
}

// UserWithAddress is a User carrying its addresses; each one is validated
// along with the user.
type UserWithAddress struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email" validate:"email"`
	Addresses []Address `json:"addresses" validate:"dive"`
}

// NewUserWithAddress builds a UserWithAddress from its data representation.
func NewUserWithAddress(raw map[string]any) (*UserWithAddress, error) {
	u := &UserWithAddress{}
	if err := validation.Decode(raw, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UserWithAddress) Validate() error {
	return validation.Collect(validation.Struct(u), validateName(u.Name))
}

// validateName is the custom name rule shared by the user records. It counts
// characters, not bytes.
func validateName(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return validation.Errors{{
			Field:      "name",
			Constraint: "min_length",
			Error:      "Name must be at least 2 characters long",
			Value:      name,
		}}
	}
	return nil
}

// GetUserRequest is bound from GET /users/:user_id?role=...
type GetUserRequest struct {
	UserID string `param:"user_id"`
	Role   string `query:"role"`
}

// Validate accepts any text for both fields.
func (r *GetUserRequest) Validate() error {
	return nil
}

// UserRole is the result of a user lookup.
type UserRole struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
