package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// ListByRoom returns the room's bookings ascending by start time.
// No overlap constraint exists anywhere: concurrent bookings for the
// same slot are accepted silently.
func (r *BookingRepo) ListByRoom(ctx context.Context, sala string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("sala = ?", sala).
		Order("data_ora ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

// Update merges the given columns into the row and returns the merged
// row. fields is keyed by column name; sala is immutable and never in
// the map.
func (r *BookingRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := tx.Model(&b).Updates(fields).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	// re-read so the returned row reflects the merge exactly
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &b, tx.Commit().Error
}

// Delete removes the row and reports whether it existed.
func (r *BookingRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
