package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_api/internal/models"
)

type TokenService struct {
	DB *gorm.DB
}

func newTokenKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetOrCreate returns the user's token, creating it on first login. Repeated
// logins return the same key. Concurrent first logins are settled by the
// unique index on user_id: the loser of the race re-reads the winner's row.
func (t *TokenService) GetOrCreate(ctx context.Context, userID uint) (*models.AuthToken, error) {
	token := models.AuthToken{UserID: userID, Key: newTokenKey()}
	res := t.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&token)
	if res.Error == nil {
		return &token, nil
	}

	var existing models.AuthToken
	if err := t.DB.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, res.Error
	}
	return &existing, nil
}

func (t *TokenService) DeleteForUser(ctx context.Context, userID uint) error {
	return t.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
