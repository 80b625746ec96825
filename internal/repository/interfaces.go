package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/maya/media-user-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)

	// List operations are atomic single-row updates with membership-set
	// semantics; each returns the resulting set.
	GetList(ctx context.Context, userID uuid.UUID, kind domain.ListKind) ([]string, error)
	AddListItem(ctx context.Context, userID uuid.UUID, kind domain.ListKind, itemID string) ([]string, error)
	RemoveListItem(ctx context.Context, userID uuid.UUID, kind domain.ListKind, itemID string) ([]string, error)
}

type Repositories struct {
	User UserRepository
}
