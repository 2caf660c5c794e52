package handlers

import (
	"errors"
	"strconv"

	"seventour-backend/internal/adapters/persistence/repositories"
	"seventour-backend/internal/core/services"
	"seventour-backend/internal/pkg/pagination"
	"seventour-backend/internal/pkg/response"
	"seventour-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents review creation request body
type CreateReviewRequest struct {
	TourPackageID uint   `json:"tour_package" validate:"required"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string `json:"comment"`
}

// UpdateReviewRequest represents review update request body
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// ListReviews lists reviews
// @Summary List reviews
// @Description List reviews, newest first, optionally scoped by package or author
// @Tags Reviews
// @Produce json
// @Param tour_package query int false "Filter by package ID"
// @Param user query int false "Filter by author ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	filter := &repositories.ReviewFilter{}
	if raw := c.Query("tour_package"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.ValidationError(c, map[string]string{"tour_package": "Must be a valid integer"})
		}
		packageID := uint(id)
		filter.TourPackageID = &packageID
	}
	if raw := c.Query("user"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.ValidationError(c, map[string]string{"user": "Must be a valid integer"})
		}
		userID := uint(id)
		filter.UserID = &userID
	}

	params := pagination.GetParams(c)
	result, err := h.reviewService.ListReviews(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reviews")
	}

	return response.Success(c, "Reviews retrieved successfully", fiber.Map{
		"reviews": result.Reviews,
		"meta":    result.Meta,
	})
}

// GetReview gets a single review
// @Summary Get review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid review ID")
	}

	review, err := h.reviewService.GetReview(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.InternalServerError(c, "Failed to get review")
	}

	return response.Success(c, "Review retrieved successfully", fiber.Map{
		"review": review.ToResponse(),
	})
}

// CreateReview creates a review authored by the caller
// @Summary Create review
// @Description Review an active tour package. One review per user per package.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateReviewRequest true "Review data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	review, err := h.reviewService.CreateReview(c.Context(), &services.CreateReviewInput{
		TourPackageID: req.TourPackageID,
		UserID:        userID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPackageNotFound):
			return response.NotFound(c, "Tour package not found")
		case errors.Is(err, services.ErrAlreadyReviewed):
			return response.ValidationError(c, map[string]string{
				"tour_package": "You have already reviewed this tour package.",
			})
		case errors.Is(err, services.ErrInvalidRating):
			return response.ValidationError(c, map[string]string{"rating": "Rating must be between 1 and 5"})
		default:
			return response.InternalServerError(c, "Failed to create review")
		}
	}

	return response.Created(c, "Review created successfully", fiber.Map{
		"review": review.ToResponse(),
	})
}

// UpdateReview updates a review
// @Summary Update review
// @Description Update a review. Only the author or an admin may update it.
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param body body UpdateReviewRequest true "Review data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid review ID")
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	review, err := h.reviewService.UpdateReview(c.Context(), id, userID, role, &services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			return response.NotFound(c, "Review not found")
		case errors.Is(err, services.ErrReviewForbidden):
			return response.Forbidden(c, "You do not have permission to modify this review")
		case errors.Is(err, services.ErrInvalidRating):
			return response.ValidationError(c, map[string]string{"rating": "Rating must be between 1 and 5"})
		default:
			return response.InternalServerError(c, "Failed to update review")
		}
	}

	return response.Success(c, "Review updated successfully", fiber.Map{
		"review": review.ToResponse(),
	})
}

// DeleteReview deletes a review
// @Summary Delete review
// @Description Delete a review. Only the author or an admin may delete it.
// @Tags Reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid review ID")
	}

	if err := h.reviewService.DeleteReview(c.Context(), id, userID, role); err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			return response.NotFound(c, "Review not found")
		case errors.Is(err, services.ErrReviewForbidden):
			return response.Forbidden(c, "You do not have permission to modify this review")
		default:
			return response.InternalServerError(c, "Failed to delete review")
		}
	}

	return response.Success(c, "Review deleted successfully", nil)
}
