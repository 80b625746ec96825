package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/repository"
)

// ListService manages the favourites and history membership sets. Both
// operations are idempotent: re-adding a present item and removing an
// absent one are success no-ops.
type ListService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

func NewListService(userRepo repository.UserRepository, logger *slog.Logger) *ListService {
	return &ListService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *ListService) Get(ctx context.Context, userID uuid.UUID, kind domain.ListKind) ([]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownList
	}
	return s.userRepo.GetList(ctx, userID, kind)
}

func (s *ListService) Add(ctx context.Context, userID uuid.UUID, kind domain.ListKind, itemID string) ([]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownList
	}
	if itemID == "" {
		return nil, domain.ErrValidation
	}

	items, err := s.userRepo.AddListItem(ctx, userID, kind, itemID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("list item added", "user_id", userID.String(), "list", string(kind), "item_id", itemID)
	return items, nil
}

func (s *ListService) Remove(ctx context.Context, userID uuid.UUID, kind domain.ListKind, itemID string) ([]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownList
	}
	if itemID == "" {
		return nil, domain.ErrValidation
	}

	items, err := s.userRepo.RemoveListItem(ctx, userID, kind, itemID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("list item removed", "user_id", userID.String(), "list", string(kind), "item_id", itemID)
	return items, nil
}
