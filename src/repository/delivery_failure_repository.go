package repository

import (
	"context"

	"faultproducer/src/model"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultRecentLimit = 50

// DeliveryFailureRepository handles persistence of failed deliveries.
type DeliveryFailureRepository struct {
	db *gorm.DB
}

// NewDeliveryFailureRepository creates a new repository instance.
func NewDeliveryFailureRepository(db *gorm.DB) *DeliveryFailureRepository {
	return &DeliveryFailureRepository{db: db}
}

// Create persists a failed delivery.
func (r *DeliveryFailureRepository) Create(
	ctx context.Context,
	failure *model.DeliveryFailure,
) error {

	logger.WithFields(map[string]interface{}{
		"deliveryId": failure.DeliveryID,
		"topic":      failure.Topic,
	}).Warn("Persisting delivery failure")

	return r.db.WithContext(ctx).Create(failure).Error
}

// Recent returns the latest failures, newest first.
func (r *DeliveryFailureRepository) Recent(ctx context.Context, limit int) ([]model.DeliveryFailure, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	var failures []model.DeliveryFailure
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&failures).Error
	return failures, err
}
