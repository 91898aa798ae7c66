package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	List(ctx context.Context, f ListFilter) ([]*entity.User, int, error)
	Delete(ctx context.Context, id string) error
}

// WebConfigRepository persistencia del registro único de configuración web.
type WebConfigRepository interface {
	Get(ctx context.Context) (*entity.WebConfig, error)
	Save(ctx context.Context, cfg *entity.WebConfig) error
}
