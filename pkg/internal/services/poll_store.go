package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/voxpop-app/voxpop/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPollStore struct {
	db *gorm.DB
}

func NewGormPollStore(db *gorm.DB) *GormPollStore {
	return &GormPollStore{db: db}
}

func (s *GormPollStore) CreatePoll(ctx context.Context, poll *models.Poll) error {
	if err := s.db.WithContext(ctx).Create(poll).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormPollStore) GetPoll(ctx context.Context, id uint) (models.Poll, error) {
	var poll models.Poll
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&poll).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return poll, models.ErrPollNotFound
		}
		return poll, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return poll, nil
}

func (s *GormPollStore) ListPolls(ctx context.Context) ([]models.PollSummary, error) {
	var summaries []models.PollSummary
	if err := s.db.WithContext(ctx).Model(&models.Poll{}).
		Select("id", "title", "created_at").
		Order("created_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return summaries, nil
}

// CastVote runs the whole vote transition inside one transaction holding a
// row lock on the poll, so two in-flight votes on the same poll serialize
// while votes on different polls never contend. Any failure rolls the
// transaction back; the counter and the voter set always move together.
func (s *GormPollStore) CastVote(ctx context.Context, pollID uint, optionIndex int, voterID uint) (models.Poll, error) {
	var poll models.Poll
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", pollID).First(&poll).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrPollNotFound
			}
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		if err := poll.ApplyVote(optionIndex, voterID); err != nil {
			return err
		}

		if err := tx.Model(&poll).Updates(map[string]any{
			"options": poll.Options,
			"voters":  poll.Voters,
		}).Error; err != nil {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}

		return nil
	})
	if err != nil {
		return models.Poll{}, err
	}

	return poll, nil
}
