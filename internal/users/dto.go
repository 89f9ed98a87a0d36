package users

import (
	"strings"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	"github.com/DragonsUnit/AeroCommerce/pkg/types"
)

// UserDTO is the public user shape returned by the API.
type UserDTO struct {
	ID        uuid.UUID            `json:"id"`
	Email     string               `json:"email"`
	FirstName string               `json:"first_name"`
	LastName  string               `json:"last_name"`
	Plan      enums.MembershipPlan `json:"plan"`
}

// FromModel converts a user row to its public shape.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Plan:      user.Plan,
	}
}

// CreateUserDTO carries the fields needed to register an account.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Plan         enums.MembershipPlan
}

// ToModel converts the DTO into a persistable user row.
func (d CreateUserDTO) ToModel() *models.User {
	plan := d.Plan
	if !plan.IsValid() {
		plan = enums.MembershipPlanFree
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(d.Email)),
		PasswordHash: d.PasswordHash,
		FirstName:    strings.TrimSpace(d.FirstName),
		LastName:     strings.TrimSpace(d.LastName),
		Plan:         plan,
		Cart:         types.CartContents{},
		IsActive:     true,
	}
}
