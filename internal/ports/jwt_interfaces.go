package ports

import (
	"shortform-server/internal/model"
	"shortform-server/internal/security"
	"time"
)

type JWTServiceInterface interface {
	GenerateAccessRefreshTokens(userUUID, email string, roles []string) (*model.TokensPair, error)
	ValidateJWT(tokenString string, secret []byte) (*security.Claims, error)
	ParseAccessToken(tokenStr string) (*security.Claims, error)
	RemainingTTL(tokenStr string) (time.Duration, error)
}
