package auth

import (
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the payload carried by access tokens. Plan is
// embedded so membership checks do not need a user lookup per request.
type AccessTokenClaims struct {
	UserID uuid.UUID            `json:"uid"`
	Email  string               `json:"email"`
	Plan   enums.MembershipPlan `json:"plan"`
	jwt.RegisteredClaims
}
