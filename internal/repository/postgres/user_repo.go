package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maya/media-user-api/internal/domain"
)

// uniqueViolation is the SQLSTATE postgres reports for unique index conflicts.
const uniqueViolation = "23505"

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "user_name = ?", userName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetList(ctx context.Context, userID uuid.UUID, kind domain.ListKind) ([]string, error) {
	column, err := listColumn(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ?", column)
	return r.scanList(r.db.WithContext(ctx).Raw(query, userID))
}

// AddListItem appends itemID to the list unless it is already a member. The
// whole mutation is one UPDATE, so concurrent adds cannot produce
// duplicates; the store's row-update atomicity is the only lock.
func (r *userRepository) AddListItem(ctx context.Context, userID uuid.UUID, kind domain.ListKind, itemID string) ([]string, error) {
	column, err := listColumn(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = CASE WHEN %[1]s @> to_jsonb(?::text) THEN %[1]s ELSE %[1]s || to_jsonb(?::text) END,
		    updated_at = now()
		WHERE id = ?
		RETURNING %[1]s`, column)

	return r.scanList(r.db.WithContext(ctx).Raw(query, itemID, itemID, userID))
}

// RemoveListItem deletes itemID from the list; removing an absent item
// leaves the row unchanged and is still a success.
func (r *userRepository) RemoveListItem(ctx context.Context, userID uuid.UUID, kind domain.ListKind, itemID string) ([]string, error) {
	column, err := listColumn(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = %[1]s - ?::text,
		    updated_at = now()
		WHERE id = ?
		RETURNING %[1]s`, column)

	return r.scanList(r.db.WithContext(ctx).Raw(query, itemID, userID))
}

// scanList reads the single JSONB column a list query returns. No row means
// the user ID did not resolve.
func (r *userRepository) scanList(tx *gorm.DB) ([]string, error) {
	var raw datatypes.JSON
	if err := tx.Row().Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	items := []string{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// listColumn maps a list kind to its column. Kinds are a closed enum, never
// caller input, so interpolating the column name into SQL is safe.
func listColumn(kind domain.ListKind) (string, error) {
	if !kind.Valid() {
		return "", domain.ErrUnknownList
	}
	return string(kind), nil
}
