// file: services/password_reset_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xFraylin/Hackong-ctf/models"
	"gorm.io/gorm"
)

const resetTokenTTL = 30 * time.Minute

var (
	ErrProfileNotFound   = errors.New("usuario no encontrado")
	ErrInvalidResetToken = errors.New("el enlace de restablecimiento no es válido o ha caducado")
)

// PasswordResetService issues single-use reset tokens kept in redis with a
// 30 minute TTL. Token delivery (mail, etc.) is the caller's concern.
type PasswordResetService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewPasswordResetService(db *gorm.DB, rdb *redis.Client) *PasswordResetService {
	return &PasswordResetService{db: db, rdb: rdb}
}

func (s *PasswordResetService) Request(ctx context.Context, username string) (string, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProfileNotFound
		}
		return "", err
	}

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, resetKey(token), profile.ID, resetTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *PasswordResetService) Confirm(ctx context.Context, token, newPassword string) error {
	profileID, err := s.rdb.Get(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashed, err := models.HashPassword(newPassword)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}

	// Single use.
	s.rdb.Del(ctx, resetKey(token))
	return nil
}

func resetKey(token string) string {
	return "pwreset:" + token
}
