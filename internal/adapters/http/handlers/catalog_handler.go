package handlers

import (
	"errors"
	"strconv"
	"strings"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/adapters/persistence/repositories"
	"seventour-backend/internal/core/services"
	"seventour-backend/internal/pkg/pagination"
	"seventour-backend/internal/pkg/response"
	"seventour-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles country and destination endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// parseIDParam parses the :id route parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// ============================================================
// Countries
// ============================================================

// CountryRequest represents country create/update request body
type CountryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	CountryCode string `json:"country_code" validate:"omitempty,max=3"`
}

// ListCountries lists all countries
// @Summary List countries
// @Description List countries ordered by name, optionally filtered by search
// @Tags Catalog
// @Produce json
// @Param search query string false "Search by name or country code"
// @Success 200 {object} response.Response
// @Router /countries [get]
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	countries, err := h.catalogService.ListCountries(c.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		return response.InternalServerError(c, "Failed to list countries")
	}

	return response.Success(c, "Countries retrieved successfully", fiber.Map{
		"countries": countries,
	})
}

// GetCountry gets a single country
// @Summary Get country
// @Tags Catalog
// @Produce json
// @Param id path int true "Country ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /countries/{id} [get]
func (h *CatalogHandler) GetCountry(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid country ID")
	}

	country, err := h.catalogService.GetCountry(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCountryNotFound) {
			return response.NotFound(c, "Country not found")
		}
		return response.InternalServerError(c, "Failed to get country")
	}

	return response.Success(c, "Country retrieved successfully", fiber.Map{
		"country": country,
	})
}

// CreateCountry creates a country
// @Summary Create country
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CountryRequest true "Country data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /countries [post]
func (h *CatalogHandler) CreateCountry(c *fiber.Ctx) error {
	var req CountryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	country, err := h.catalogService.CreateCountry(c.Context(), &services.CountryInput{
		Name:        strings.TrimSpace(req.Name),
		CountryCode: strings.ToUpper(strings.TrimSpace(req.CountryCode)),
	})
	if err != nil {
		if errors.Is(err, services.ErrCountryNameTaken) {
			return response.Conflict(c, "Country name already exists")
		}
		return response.InternalServerError(c, "Failed to create country")
	}

	return response.Created(c, "Country created successfully", fiber.Map{
		"country": country,
	})
}

// UpdateCountry updates a country
// @Summary Update country
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Param body body CountryRequest true "Country data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /countries/{id} [put]
func (h *CatalogHandler) UpdateCountry(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid country ID")
	}

	var req CountryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	country, err := h.catalogService.UpdateCountry(c.Context(), id, &services.CountryInput{
		Name:        strings.TrimSpace(req.Name),
		CountryCode: strings.ToUpper(strings.TrimSpace(req.CountryCode)),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCountryNotFound):
			return response.NotFound(c, "Country not found")
		case errors.Is(err, services.ErrCountryNameTaken):
			return response.Conflict(c, "Country name already exists")
		default:
			return response.InternalServerError(c, "Failed to update country")
		}
	}

	return response.Success(c, "Country updated successfully", fiber.Map{
		"country": country,
	})
}

// DeleteCountry deletes a country
// @Summary Delete country
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /countries/{id} [delete]
func (h *CatalogHandler) DeleteCountry(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid country ID")
	}

	if err := h.catalogService.DeleteCountry(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrCountryNotFound) {
			return response.NotFound(c, "Country not found")
		}
		return response.InternalServerError(c, "Failed to delete country")
	}

	return response.Success(c, "Country deleted successfully", nil)
}

// ============================================================
// Destinations
// ============================================================

// DestinationRequest represents destination create/update request body
type DestinationRequest struct {
	CountryID   uint   `json:"country_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// ListDestinations lists destinations
// @Summary List destinations
// @Description List destinations filtered by country, name search and ordering
// @Tags Catalog
// @Produce json
// @Param country__id query int false "Filter by country ID"
// @Param country__name query string false "Filter by exact country name"
// @Param search query string false "Search over name, description and country name"
// @Param ordering query string false "name or country__name, '-' prefix for descending"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /destinations [get]
func (h *CatalogHandler) ListDestinations(c *fiber.Ctx) error {
	filter := &repositories.DestinationFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: strings.TrimSpace(c.Query("ordering")),
	}
	if raw := c.Query("country__id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.ValidationError(c, map[string]string{"country__id": "Must be a valid integer"})
		}
		countryID := uint(id)
		filter.CountryID = &countryID
	}
	if raw := c.Query("country__name"); raw != "" {
		filter.CountryName = &raw
	}

	params := pagination.GetParams(c)
	result, err := h.catalogService.ListDestinations(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list destinations")
	}

	return response.Success(c, "Destinations retrieved successfully", fiber.Map{
		"destinations": result.Destinations,
		"meta":         result.Meta,
	})
}

// GetDestination gets a single destination
// @Summary Get destination
// @Tags Catalog
// @Produce json
// @Param id path int true "Destination ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /destinations/{id} [get]
func (h *CatalogHandler) GetDestination(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid destination ID")
	}

	destination, err := h.catalogService.GetDestination(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDestinationNotFound) {
			return response.NotFound(c, "Destination not found")
		}
		return response.InternalServerError(c, "Failed to get destination")
	}

	return response.Success(c, "Destination retrieved successfully", fiber.Map{
		"destination": destination.ToResponse(),
	})
}

// CreateDestination creates a destination
// @Summary Create destination
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DestinationRequest true "Destination data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /destinations [post]
func (h *CatalogHandler) CreateDestination(c *fiber.Ctx) error {
	var req DestinationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	destination, err := h.catalogService.CreateDestination(c.Context(), &services.DestinationInput{
		CountryID:   req.CountryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCountryNotFound):
			return response.NotFound(c, "Country not found")
		case errors.Is(err, services.ErrDestinationTaken):
			return response.Conflict(c, "Destination already exists in this country")
		default:
			return response.InternalServerError(c, "Failed to create destination")
		}
	}

	return response.Created(c, "Destination created successfully", fiber.Map{
		"destination": destination.ToResponse(),
	})
}

// UpdateDestination updates a destination
// @Summary Update destination
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Destination ID"
// @Param body body DestinationRequest true "Destination data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /destinations/{id} [put]
func (h *CatalogHandler) UpdateDestination(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid destination ID")
	}

	var req DestinationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	destination, err := h.catalogService.UpdateDestination(c.Context(), id, &services.DestinationInput{
		CountryID:   req.CountryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDestinationNotFound):
			return response.NotFound(c, "Destination not found")
		case errors.Is(err, services.ErrCountryNotFound):
			return response.NotFound(c, "Country not found")
		case errors.Is(err, services.ErrDestinationTaken):
			return response.Conflict(c, "Destination already exists in this country")
		default:
			return response.InternalServerError(c, "Failed to update destination")
		}
	}

	return response.Success(c, "Destination updated successfully", fiber.Map{
		"destination": destination.ToResponse(),
	})
}

// DeleteDestination deletes a destination
// @Summary Delete destination
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Destination ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /destinations/{id} [delete]
func (h *CatalogHandler) DeleteDestination(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid destination ID")
	}

	if err := h.catalogService.DeleteDestination(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrDestinationNotFound) {
			return response.NotFound(c, "Destination not found")
		}
		return response.InternalServerError(c, "Failed to delete destination")
	}

	return response.Success(c, "Destination deleted successfully", nil)
}

// visaTypes returns the supported visa type choices
// @Summary List visa types
// @Description List valid visa type values with display labels
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /visa-types [get]
func (h *CatalogHandler) VisaTypes(c *fiber.Ctx) error {
	return response.Success(c, "Visa types retrieved successfully", fiber.Map{
		"visa_types": models.VisaTypeDisplay,
	})
}
