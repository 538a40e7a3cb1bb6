package repositories

import (
	"context"
	"errors"
	"time"

	"golang-food-storefront/internal/models"

	"gorm.io/gorm"
)

// Cart repository implementation
type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Load(ctx context.Context, deviceID string) (models.CartLines, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First use on this device, no prior cart.
			return models.CartLines{}, nil
		}
		return nil, err
	}
	if record.Items == nil {
		return models.CartLines{}, nil
	}
	return record.Items, nil
}

func (r *cartRepository) Save(ctx context.Context, deviceID string, lines models.CartLines) error {
	if lines == nil {
		lines = models.CartLines{}
	}

	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		record = models.CartRecord{
			DeviceID:  deviceID,
			Items:     lines,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return r.db.WithContext(ctx).Create(&record).Error
	}

	record.Items = lines
	record.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(&record).Error
}

func (r *cartRepository) Delete(ctx context.Context, deviceID string) error {
	return r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).Delete(&models.CartRecord{}).Error
}
