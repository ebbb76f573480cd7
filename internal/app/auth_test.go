package app

import (
	"context"
	"testing"
	"time"

	"github.com/kanditextile/kandipos/internal/domain"
	"github.com/kanditextile/kandipos/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedOperator(t *testing.T, db *gorm.DB, username, password, status string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.SysOpr{
		ID:       common.UUIDint64(),
		Username: username,
		Password: string(hash),
		Level:    "super",
		Status:   status,
	}).Error)
}

func TestCredentialStoreVerify(t *testing.T) {
	db := newTestDB(t)
	seedOperator(t, db, "KANDI-TEXTILE", "1234", common.ENABLED)
	store := NewGormCredentialStore(db)
	ctx := context.Background()

	operator, err := store.Verify(ctx, "KANDI-TEXTILE", "1234")
	require.NoError(t, err)
	assert.Equal(t, "KANDI-TEXTILE", operator.Username)

	_, err = store.Verify(ctx, "KANDI-TEXTILE", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = store.Verify(ctx, "nobody", "1234")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = store.Verify(ctx, "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestCredentialStoreRejectsDisabledOperator(t *testing.T) {
	db := newTestDB(t)
	seedOperator(t, db, "KANDI-TEXTILE", "1234", common.DISABLED)
	store := NewGormCredentialStore(db)

	_, err := store.Verify(context.Background(), "KANDI-TEXTILE", "1234")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestCredentialStoreUpdatesLastLogin(t *testing.T) {
	db := newTestDB(t)
	seedOperator(t, db, "KANDI-TEXTILE", "1234", common.ENABLED)
	store := NewGormCredentialStore(db)

	before := time.Now().Add(-time.Second)
	_, err := store.Verify(context.Background(), "KANDI-TEXTILE", "1234")
	require.NoError(t, err)

	var operator domain.SysOpr
	require.NoError(t, db.Where("username = ?", "KANDI-TEXTILE").First(&operator).Error)
	assert.True(t, operator.LastLogin.After(before))
}
