// file: services/password_reset_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xFraylin/Hackong-ctf/models"
)

func TestPasswordResetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	_, rdb := newTestRedis(t)
	svc := NewPasswordResetService(db, rdb)

	profile := seedProfile(t, db, "alice")

	token, err := svc.Request(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.Confirm(context.Background(), token, "nueva-clave"))

	var updated models.Profile
	require.NoError(t, db.First(&updated, "id = ?", profile.ID).Error)
	assert.True(t, updated.CheckPassword("nueva-clave"))
	assert.False(t, updated.CheckPassword("secret123"))
}

func TestPasswordResetUnknownUsername(t *testing.T) {
	db := newTestDB(t)
	_, rdb := newTestRedis(t)
	svc := NewPasswordResetService(db, rdb)

	_, err := svc.Request(context.Background(), "nadie")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPasswordResetTokenIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	_, rdb := newTestRedis(t)
	svc := NewPasswordResetService(db, rdb)

	seedProfile(t, db, "alice")
	token, err := svc.Request(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), token, "nueva-clave"))
	err = svc.Confirm(context.Background(), token, "otra-clave")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordResetTokenExpires(t *testing.T) {
	db := newTestDB(t)
	mr, rdb := newTestRedis(t)
	svc := NewPasswordResetService(db, rdb)

	seedProfile(t, db, "alice")
	token, err := svc.Request(context.Background(), "alice")
	require.NoError(t, err)

	mr.FastForward(resetTokenTTL + time.Minute)

	err = svc.Confirm(context.Background(), token, "nueva-clave")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordResetGarbageToken(t *testing.T) {
	db := newTestDB(t)
	_, rdb := newTestRedis(t)
	svc := NewPasswordResetService(db, rdb)

	err := svc.Confirm(context.Background(), "no-es-un-token", "nueva-clave")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
