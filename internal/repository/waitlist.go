package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/synthoshq/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyExists is returned when a write hits the unique email index.
var ErrAlreadyExists = errors.New("record already exists")

// uniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type WaitlistRepository struct {
	database *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) *WaitlistRepository {
	return &WaitlistRepository{
		database: db,
	}
}

// FindByEmail returns the entry for an email and whether one exists.
func (w *WaitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, bool, error) {
	var record models.WaitlistEntry
	err := w.database.WithContext(ctx).Table("waitlist").Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &record, true, nil
}

// CreateEntry inserts a new waitlist entry. A duplicate email collapses
// to ErrAlreadyExists so callers get one authoritative idempotent-create
// outcome instead of racing a prior existence check.
func (w *WaitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	err := w.database.WithContext(ctx).Table("waitlist").Create(entry).Error
	if err != nil && isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

// CountEntries returns the total number of waitlist entries.
func (w *WaitlistRepository) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := w.database.WithContext(ctx).Table("waitlist").Count(&count).Error
	return count, err
}

// ListEntries returns all entries, newest first.
func (w *WaitlistRepository) ListEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	var records []models.WaitlistEntry
	err := w.database.WithContext(ctx).Table("waitlist").Order("created_at DESC").Find(&records).Error
	return records, err
}
