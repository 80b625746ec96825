package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maya/media-user-api/internal/config"
	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/repository"
	"github.com/maya/media-user-api/internal/token"
)

// dummyHash is compared against when a login names an unknown user, so the
// unknown-user path costs a bcrypt verification just like the known-user
// path and the two failures stay indistinguishable.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("media-user-api-dummy"), bcrypt.MinCost)

type AuthService struct {
	userRepo repository.UserRepository
	issuer   *token.Issuer
	cost     int
	logger   *slog.Logger
}

func NewAuthService(userRepo repository.UserRepository, issuer *token.Issuer, cfg *config.Config, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		cost:     cfg.BcryptCost,
		logger:   logger,
	}
}

type Credentials struct {
	UserName string
	Password string
}

type LoginResult struct {
	Identity domain.Identity
	Token    string
}

func (s *AuthService) Register(ctx context.Context, creds Credentials) error {
	if creds.UserName == "" || creds.Password == "" {
		return domain.ErrValidation
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.New(),
		UserName:     creds.UserName,
		PasswordHash: string(hashedPassword),
		Favourites:   []byte("[]"),
		History:      []byte("[]"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", "user_id", user.ID.String())
	return nil
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if creds.UserName == "" || creds.Password == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.userRepo.GetByUserName(ctx, creds.UserName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	identity := domain.Identity{
		ID:       user.ID,
		UserName: user.UserName,
	}

	signed, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Identity: identity,
		Token:    signed,
	}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
