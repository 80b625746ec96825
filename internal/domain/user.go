package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the account record. Favourites and History are membership sets of
// opaque item IDs stored as JSONB arrays on the row itself, so list
// mutations are single-row updates.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserName     string         `json:"userName" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Favourites   datatypes.JSON `json:"favourites" gorm:"type:jsonb;not null;default:'[]'"`
	History      datatypes.JSON `json:"history" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Identity is the authenticated principal carried by a session token.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"userName"`
}

// ListKind selects which membership set an operation targets.
type ListKind string

const (
	ListFavourites ListKind = "favourites"
	ListHistory    ListKind = "history"
)

// Valid reports whether the kind names a known list column.
func (k ListKind) Valid() bool {
	return k == ListFavourites || k == ListHistory
}
