package app

import (
	"context"
	"strings"
	"time"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/kanditextile/kandipos/pkg/common"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrBadCredentials is returned for any username/password mismatch. The
// caller never learns whether the username or the password was wrong.
var ErrBadCredentials = errors.New("invalid credentials")

// CredentialStore verifies operator credentials. The policy behind it is
// swappable without touching the login handler.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) (*domain.SysOpr, error)
}

// GormCredentialStore checks operators against the sys_opr table with
// bcrypt password hashes.
type GormCredentialStore struct {
	db *gorm.DB
}

func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

func (s *GormCredentialStore) Verify(ctx context.Context, username, password string) (*domain.SysOpr, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrBadCredentials
	}

	var operator domain.SysOpr
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&operator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "query operator")
	}

	if !strings.EqualFold(operator.Status, common.ENABLED) {
		return nil, ErrBadCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}

	s.db.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now())

	return &operator, nil
}
