package repositories

import (
	"context"

	"seventour-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review. The composite unique index on
// (tour_package_id, user_id) is the authoritative duplicate guard; callers
// pre-check for a friendlier error but must still handle the constraint.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID gets a review by ID with its author and package
func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("TourPackage").
		Where("id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// List lists reviews newest first, optionally narrowed by package or author
func (r *reviewRepository) List(ctx context.Context, filter *ReviewFilter, offset, limit int) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Review{})
	if filter != nil {
		if filter.TourPackageID != nil {
			base = base.Where("tour_package_id = ?", *filter.TourPackageID)
		}
		if filter.UserID != nil {
			base = base.Where("user_id = ?", *filter.UserID)
		}
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("User").
		Preload("TourPackage").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error

	return reviews, total, err
}

// Update updates a review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

// ExistsByPackageAndUser checks if the user already reviewed the package
func (r *reviewRepository) ExistsByPackageAndUser(ctx context.Context, packageID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("tour_package_id = ? AND user_id = ?", packageID, userID).
		Count(&count).Error
	return count > 0, err
}
