package security

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Identity is the externally stored record the gateway resolves for a token
// subject.
type Identity struct {
	ID        uint
	Role      Role
	AdminRole AdminRole
	Status    Status
}

var ErrIdentityNotFound = errors.New("identity not found")

// IdentityStore looks up the identity record for a token subject.
type IdentityStore interface {
	Lookup(ctx context.Context, subjectID uint) (*Identity, error)
}

// GormIdentityStore resolves identities from the users table.
type GormIdentityStore struct {
	db *gorm.DB
}

func NewGormIdentityStore(db *gorm.DB) *GormIdentityStore {
	return &GormIdentityStore{db: db}
}

func (s *GormIdentityStore) Lookup(ctx context.Context, subjectID uint) (*Identity, error) {
	var row struct {
		ID        uint
		Role      string
		AdminRole string
		Status    string
	}
	err := s.db.WithContext(ctx).
		Table("users").
		Select("id", "role", "admin_role", "status").
		Where("id = ?", subjectID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("identity lookup %d: %w", subjectID, err)
	}
	return &Identity{
		ID:        row.ID,
		Role:      Role(row.Role),
		AdminRole: ParseAdminRole(row.AdminRole),
		Status:    Status(row.Status),
	}, nil
}
