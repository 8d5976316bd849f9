package ports

import (
	"context"
	"shortform-server/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.TokensPair, error)
	Reissue(ctx context.Context, accessToken, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, accessToken string) error
	SignOut(ctx context.Context, userUUID string) error
	IsRevoked(ctx context.Context, accessToken string) (bool, error)
}
