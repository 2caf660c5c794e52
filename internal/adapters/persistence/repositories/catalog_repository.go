package repositories

import (
	"context"
	"strings"

	"seventour-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Country
// ============================================================

// countryRepository implements CountryRepository interface
type countryRepository struct {
	db *gorm.DB
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

// Create creates a new country
func (r *countryRepository) Create(ctx context.Context, country *models.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

// GetByID gets a country by ID
func (r *countryRepository) GetByID(ctx context.Context, id uint) (*models.Country, error) {
	var country models.Country
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&country).Error
	if err != nil {
		return nil, err
	}
	return &country, nil
}

// List lists countries ordered by name, optionally matching a search term
// against name and country code
func (r *countryRepository) List(ctx context.Context, search string) ([]*models.Country, error) {
	var countries []*models.Country
	q := r.db.WithContext(ctx).Order("name")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR country_code LIKE ?", pattern, pattern)
	}
	err := q.Find(&countries).Error
	return countries, err
}

// Update updates a country
func (r *countryRepository) Update(ctx context.Context, country *models.Country) error {
	return r.db.WithContext(ctx).Save(country).Error
}

// Delete deletes a country
func (r *countryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Country{}, id).Error
}

// ExistsByName checks if a country name is already taken
func (r *countryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Country{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Count returns the number of countries
func (r *countryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Country{}).Count(&count).Error
	return count, err
}

// ============================================================
// Destination
// ============================================================

// destinationRepository implements DestinationRepository interface
type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository creates a new destination repository
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

// Create creates a new destination
func (r *destinationRepository) Create(ctx context.Context, destination *models.Destination) error {
	return r.db.WithContext(ctx).Create(destination).Error
}

// GetByID gets a destination by ID with its country
func (r *destinationRepository) GetByID(ctx context.Context, id uint) (*models.Destination, error) {
	var destination models.Destination
	err := r.db.WithContext(ctx).Preload("Country").Where("destinations.id = ?", id).First(&destination).Error
	if err != nil {
		return nil, err
	}
	return &destination, nil
}

// destinationOrderClause maps the public ordering parameter to SQL.
// Default is country name, then destination name.
func destinationOrderClause(ordering string) string {
	desc := ""
	if strings.HasPrefix(ordering, "-") {
		desc = " DESC"
		ordering = ordering[1:]
	}
	switch ordering {
	case "name":
		return "destinations.name" + desc
	case "country__name":
		return "countries.name" + desc + ", destinations.name"
	default:
		return "countries.name, destinations.name"
	}
}

// List lists destinations matching the filter
func (r *destinationRepository) List(ctx context.Context, filter *DestinationFilter, offset, limit int) ([]*models.Destination, int64, error) {
	var destinations []*models.Destination
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.Destination{}).
		Joins("JOIN countries ON countries.id = destinations.country_id")

	if filter != nil {
		if filter.CountryID != nil {
			base = base.Where("destinations.country_id = ?", *filter.CountryID)
		}
		if filter.CountryName != nil {
			base = base.Where("countries.name = ?", *filter.CountryName)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			base = base.Where(
				"destinations.name LIKE ? OR destinations.description LIKE ? OR countries.name LIKE ?",
				pattern, pattern, pattern,
			)
		}
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordering := ""
	if filter != nil {
		ordering = filter.Ordering
	}

	err := base.
		Preload("Country").
		Order(destinationOrderClause(ordering)).
		Offset(offset).
		Limit(limit).
		Find(&destinations).Error

	return destinations, total, err
}

// Update updates a destination
func (r *destinationRepository) Update(ctx context.Context, destination *models.Destination) error {
	return r.db.WithContext(ctx).Save(destination).Error
}

// Delete deletes a destination
func (r *destinationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Destination{}, id).Error
}

// ExistsInCountry checks if a destination name is already used within a country
func (r *destinationRepository) ExistsInCountry(ctx context.Context, countryID uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Destination{}).
		Where("country_id = ? AND name = ?", countryID, name).
		Count(&count).Error
	return count > 0, err
}
