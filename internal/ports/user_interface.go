package ports

import (
	"context"
	"shortform-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (bool, error)
	DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type UserService interface {
	SignUp(ctx context.Context, email, nickname, password string) (*model.User, error)
	GetProfile(ctx context.Context, uuid string) (*model.User, error)
}
