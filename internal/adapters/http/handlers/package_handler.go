package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seventour-backend/internal/config"
	"seventour-backend/internal/core/services"
	"seventour-backend/internal/pkg/pagination"
	"seventour-backend/internal/pkg/query"
	"seventour-backend/internal/pkg/response"
	"seventour-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// allowed upload extensions for package images and profile photos
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PackageHandler handles tour package endpoints
type PackageHandler struct {
	catalogService *services.CatalogService
	cfg            *config.Config
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(catalogService *services.CatalogService, cfg *config.Config) *PackageHandler {
	return &PackageHandler{
		catalogService: catalogService,
		cfg:            cfg,
	}
}

// PackageRequest represents package create/update request body
type PackageRequest struct {
	Title          string  `json:"title" validate:"required,max=255"`
	Description    string  `json:"description" validate:"required"`
	CountryID      *uint   `json:"country_id"`
	DestinationIDs []uint  `json:"destination_ids"`
	VisaType       string  `json:"visa_type" validate:"omitempty,oneof=VISA_FREE E_VISA ON_ARRIVAL STICKER_VISA"`
	Price          float64 `json:"price" validate:"gte=0"`
	Highlights     string  `json:"highlights"`
	Inclusions     string  `json:"inclusions"`
	Exclusions     string  `json:"exclusions"`
	DurationDays   *uint   `json:"duration_days"`
	IsActive       *bool   `json:"is_active"`
}

// ListPackages lists active tour packages
// @Summary List tour packages
// @Description List active packages with filtering, search and ordering
// @Tags Packages
// @Produce json
// @Param country__id query int false "Filter by country ID"
// @Param country__name query string false "Filter by exact country name"
// @Param country__name__icontains query string false "Filter by country name substring"
// @Param visa_type query string false "Filter by visa type"
// @Param price query number false "Exact price"
// @Param price__gte query number false "Minimum price"
// @Param price__lte query number false "Maximum price"
// @Param price__range query string false "Price range, e.g. 100,500"
// @Param duration_days query int false "Exact duration in days"
// @Param destinations__id query int false "Filter by destination ID"
// @Param destinations__name__icontains query string false "Filter by destination name substring"
// @Param search query string false "Full text search"
// @Param ordering query string false "price, created_at, title or duration_days, '-' prefix for descending"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /packages [get]
func (h *PackageHandler) ListPackages(c *fiber.Ctx) error {
	filter, fields := query.ParsePackageFilter(c.Queries())
	if fields != nil {
		return response.ValidationError(c, fields)
	}

	params := pagination.GetParams(c)
	result, err := h.catalogService.ListPackages(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tour packages")
	}

	return response.Success(c, "Tour packages retrieved successfully", fiber.Map{
		"packages": result.Packages,
		"meta":     result.Meta,
	})
}

// GetPackage gets a single active tour package
// @Summary Get tour package
// @Description Get an active package by ID. Inactive packages are not found.
// @Tags Packages
// @Produce json
// @Param id path int true "Package ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id} [get]
func (h *PackageHandler) GetPackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package ID")
	}

	pkg, err := h.catalogService.GetPackage(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Tour package not found")
		}
		return response.InternalServerError(c, "Failed to get tour package")
	}

	return response.Success(c, "Tour package retrieved successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// GetPackageAdmin gets any package regardless of active flag
// @Summary Get tour package (admin)
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/packages/{id} [get]
func (h *PackageHandler) GetPackageAdmin(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package ID")
	}

	pkg, err := h.catalogService.GetPackageAny(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Tour package not found")
		}
		return response.InternalServerError(c, "Failed to get tour package")
	}

	return response.Success(c, "Tour package retrieved successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// CreatePackage creates a tour package
// @Summary Create tour package
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PackageRequest true "Package data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages [post]
func (h *PackageHandler) CreatePackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	pkg, err := h.catalogService.CreatePackage(c.Context(), h.toInput(&req))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCountryNotFound):
			return response.NotFound(c, "Country not found")
		case errors.Is(err, services.ErrDestinationNotFound):
			return response.NotFound(c, "Destination not found")
		case errors.Is(err, services.ErrInvalidVisaType):
			return response.ValidationError(c, map[string]string{"visa_type": "Invalid visa type"})
		default:
			return response.InternalServerError(c, "Failed to create tour package")
		}
	}

	return response.Created(c, "Tour package created successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// UpdatePackage updates a tour package
// @Summary Update tour package
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Param body body PackageRequest true "Package data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id} [put]
func (h *PackageHandler) UpdatePackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package ID")
	}

	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	pkg, err := h.catalogService.UpdatePackage(c.Context(), id, h.toInput(&req))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPackageNotFound):
			return response.NotFound(c, "Tour package not found")
		case errors.Is(err, services.ErrCountryNotFound):
			return response.NotFound(c, "Country not found")
		case errors.Is(err, services.ErrDestinationNotFound):
			return response.NotFound(c, "Destination not found")
		case errors.Is(err, services.ErrInvalidVisaType):
			return response.ValidationError(c, map[string]string{"visa_type": "Invalid visa type"})
		default:
			return response.InternalServerError(c, "Failed to update tour package")
		}
	}

	return response.Success(c, "Tour package updated successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// UploadPackageImage uploads the main image for a package
// @Summary Upload package image
// @Description Store the package's main image and record its path
// @Tags Packages
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Param main_image formData file true "Image file"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id}/image [post]
func (h *PackageHandler) UploadPackageImage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package ID")
	}

	file, err := c.FormFile("main_image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	relPath, err := saveUpload(c, file, h.cfg.Upload.Dir, fmt.Sprintf("tours/package_images/%d", id))
	if err != nil {
		if errors.Is(err, errUnsupportedImage) {
			return response.BadRequest(c, "Unsupported image format")
		}
		return response.InternalServerError(c, "Failed to store image")
	}

	pkg, err := h.catalogService.SetPackageImage(c.Context(), id, relPath)
	if err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Tour package not found")
		}
		return response.InternalServerError(c, "Failed to update tour package")
	}

	return response.Success(c, "Package image uploaded successfully", fiber.Map{
		"package": pkg.ToResponse(),
	})
}

// DeletePackage deletes a tour package
// @Summary Delete tour package
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /packages/{id} [delete]
func (h *PackageHandler) DeletePackage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid package ID")
	}

	if err := h.catalogService.DeletePackage(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrPackageNotFound) {
			return response.NotFound(c, "Tour package not found")
		}
		return response.InternalServerError(c, "Failed to delete tour package")
	}

	return response.Success(c, "Tour package deleted successfully", nil)
}

func (h *PackageHandler) toInput(req *PackageRequest) *services.PackageInput {
	return &services.PackageInput{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		CountryID:      req.CountryID,
		DestinationIDs: req.DestinationIDs,
		VisaType:       req.VisaType,
		Price:          req.Price,
		Highlights:     req.Highlights,
		Inclusions:     req.Inclusions,
		Exclusions:     req.Exclusions,
		DurationDays:   req.DurationDays,
		IsActive:       req.IsActive,
	}
}

var errUnsupportedImage = errors.New("unsupported image format")

// saveUpload writes the uploaded file under uploadDir/subDir and returns
// the path relative to the upload root
func saveUpload(c *fiber.Ctx, file *multipart.FileHeader, uploadDir, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errUnsupportedImage
	}

	dir := filepath.Join(uploadDir, filepath.FromSlash(subDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return subDir + "/" + name, nil
}
