package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/voxpop-app/voxpop/pkg/internal/models"
	"gorm.io/gorm"
)

type GormAccountStore struct {
	db *gorm.DB
}

func NewGormAccountStore(db *gorm.DB) *GormAccountStore {
	return &GormAccountStore{db: db}
}

func (s *GormAccountStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNameTaken
		}
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormAccountStore) GetAccount(ctx context.Context, id uint) (models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, models.ErrAccountNotFound
		}
		return account, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return account, nil
}

func (s *GormAccountStore) GetAccountByName(ctx context.Context, name string) (models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, models.ErrAccountNotFound
		}
		return account, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return account, nil
}
