package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
)

// AccessTokenClaims is the JWT payload the upstream auth layer mints for API
// callers. The core only consumes the actor role.
type AccessTokenClaims struct {
	UserID uuid.UUID       `json:"uid"`
	Role   enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// AccessTokenPayload carries the fields minted into a new token.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.ActorRole
	JTI    string
}
