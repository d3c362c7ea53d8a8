package repository

import (
	"context"

	"github.com/synthoshq/internal/models"
	"gorm.io/gorm"
)

type SubscriberRepository struct {
	database *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{
		database: db,
	}
}

// CreateSubscriber inserts an email-only capture. Duplicates collapse to
// ErrAlreadyExists, same contract as the waitlist table.
func (s *SubscriberRepository) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	err := s.database.WithContext(ctx).Table("subscribers").Create(sub).Error
	if err != nil && isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}
