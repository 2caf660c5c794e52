package services

import (
	"context"
	"errors"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/adapters/persistence/repositories"
	"seventour-backend/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Review errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you have already reviewed this tour package")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrReviewForbidden = errors.New("you do not have permission to modify this review")
)

// ReviewService handles tour package reviews
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	packageRepo repositories.TourPackageRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo repositories.ReviewRepository, packageRepo repositories.TourPackageRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		packageRepo: packageRepo,
	}
}

// ListReviewsOutput is a paginated review listing
type ListReviewsOutput struct {
	Reviews []*models.ReviewResponse `json:"reviews"`
	Meta    *pagination.Meta         `json:"meta"`
}

// ListReviews lists reviews, optionally scoped to a package or an author
func (s *ReviewService) ListReviews(ctx context.Context, filter *repositories.ReviewFilter, params *pagination.Params) (*ListReviewsOutput, error) {
	reviews, total, err := s.reviewRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = r.ToResponse()
	}

	return &ListReviewsOutput{
		Reviews: responses,
		Meta:    pagination.GetMeta(params, total),
	}, nil
}

// GetReview gets a review by ID
func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// CreateReviewInput carries review creation fields. The author always
// comes from the authenticated caller, never from the request body.
type CreateReviewInput struct {
	TourPackageID uint
	UserID        uint
	Rating        int
	Comment       string
}

// CreateReview creates a review for an active tour package
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.packageRepo.GetActiveByID(ctx, input.TourPackageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByPackageAndUser(ctx, input.TourPackageID, input.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		TourPackageID: input.TourPackageID,
		UserID:        input.UserID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return s.GetReview(ctx, review.ID)
}

// UpdateReviewInput carries review update fields
type UpdateReviewInput struct {
	Rating  int
	Comment string
}

// canModify reports whether the caller may change the review.
// Only the author or an admin can.
func canModify(review *models.Review, actorID uint, actorRole string) bool {
	return review.UserID == actorID || actorRole == models.RoleAdmin
}

// UpdateReview updates a review on behalf of the caller
func (s *ReviewService) UpdateReview(ctx context.Context, id uint, actorID uint, actorRole string, input *UpdateReviewInput) (*models.Review, error) {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(review, actorID, actorRole) {
		return nil, ErrReviewForbidden
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview deletes a review on behalf of the caller
func (s *ReviewService) DeleteReview(ctx context.Context, id uint, actorID uint, actorRole string) error {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(review, actorID, actorRole) {
		return ErrReviewForbidden
	}
	return s.reviewRepo.Delete(ctx, id)
}
