package service

import (
	"log/slog"

	"github.com/maya/media-user-api/internal/config"
	"github.com/maya/media-user-api/internal/repository"
	"github.com/maya/media-user-api/internal/token"
)

type Services struct {
	Auth  *AuthService
	Lists *ListService
}

func NewServices(repos *repository.Repositories, issuer *token.Issuer, cfg *config.Config, logger *slog.Logger) *Services {
	return &Services{
		Auth:  NewAuthService(repos.User, issuer, cfg, logger),
		Lists: NewListService(repos.User, logger),
	}
}
