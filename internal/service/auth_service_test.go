package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/repository/postgres"
	"github.com/maya/media-user-api/internal/service"
	"github.com/maya/media-user-api/internal/testutil"
	"github.com/maya/media-user-api/internal/token"
)

func newAuthService(t *testing.T, testDB *testutil.TestDB) (*service.AuthService, *token.Issuer) {
	t.Helper()
	cfg := testutil.TestConfig()
	repos := postgres.NewRepositories(testDB.DB)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	return service.NewAuthService(repos.User, issuer, cfg, testutil.TestLogger()), issuer
}

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	ctx := context.Background()

	tests := []struct {
		name    string
		creds   service.Credentials
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			creds: service.Credentials{
				UserName: "newuser",
				Password: "password123",
			},
		},
		{
			name: "duplicate username",
			creds: service.Credentials{
				UserName: "existinguser",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUserName("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrDuplicateUser,
		},
		{
			name: "missing username",
			creds: service.Credentials{
				Password: "password123",
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "missing password",
			creds: service.Credentials{
				UserName: "nopassword",
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			err := authService.Register(ctx, tt.creds)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAuthService_Register_DuplicateLeavesFirstIntact(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	require.NoError(t, authService.Register(ctx, service.Credentials{
		UserName: "alice",
		Password: "pw1",
	}))

	first, err := repos.User.GetByUserName(ctx, "alice")
	require.NoError(t, err)

	err = authService.Register(ctx, service.Credentials{
		UserName: "alice",
		Password: "pw2",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)

	// First record unaffected: same ID, original password still works
	again, err := repos.User.GetByUserName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.PasswordHash, again.PasswordHash)

	_, err = authService.Login(ctx, service.Credentials{UserName: "alice", Password: "pw1"})
	assert.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, issuer := newAuthService(t, testDB)
	ctx := context.Background()

	// Create a user for login tests
	user, rawPassword := testutil.NewUserBuilder().
		WithUserName("loginuser").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		creds   service.Credentials
		wantErr error
	}{
		{
			name: "successful login",
			creds: service.Credentials{
				UserName: user.UserName,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			creds: service.Credentials{
				UserName: user.UserName,
				Password: "wrongpassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "non-existent user",
			creds: service.Credentials{
				UserName: "nonexistent",
				Password: "anypassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "missing fields",
			creds: service.Credentials{
				UserName: "",
				Password: "",
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.creds)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.Identity.ID)
			assert.Equal(t, user.UserName, result.Identity.UserName)
			assert.NotEmpty(t, result.Token)

			// Token round-trips to the same identity
			identity, err := issuer.Verify(result.Token)
			require.NoError(t, err)
			assert.Equal(t, result.Identity, identity)
		})
	}
}
