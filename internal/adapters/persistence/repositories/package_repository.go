package repositories

import (
	"context"
	"strings"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/pkg/query"

	"gorm.io/gorm"
)

// tourPackageRepository implements TourPackageRepository interface
type tourPackageRepository struct {
	db *gorm.DB
}

// NewTourPackageRepository creates a new tour package repository
func NewTourPackageRepository(db *gorm.DB) TourPackageRepository {
	return &tourPackageRepository{db: db}
}

// Create creates a new tour package with its destination links
func (r *tourPackageRepository) Create(ctx context.Context, pkg *models.TourPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

// GetByID gets any tour package by ID, active or not (admin use)
func (r *tourPackageRepository) GetByID(ctx context.Context, id uint) (*models.TourPackage, error) {
	var pkg models.TourPackage
	err := r.db.WithContext(ctx).
		Preload("Country").
		Preload("Destinations").
		Preload("Destinations.Country").
		Where("tour_packages.id = ?", id).
		First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetActiveByID gets an active tour package by ID. Inactive packages are
// indistinguishable from absent ones: both return gorm.ErrRecordNotFound.
func (r *tourPackageRepository) GetActiveByID(ctx context.Context, id uint) (*models.TourPackage, error) {
	var pkg models.TourPackage
	err := r.db.WithContext(ctx).
		Preload("Country").
		Preload("Destinations").
		Preload("Destinations.Country").
		Where("tour_packages.id = ? AND tour_packages.is_active = ?", id, true).
		First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// applyPackageFilter translates the parsed filter into WHERE clauses.
// Joined tables: countries (c), package_destinations (pd), destinations (d).
func applyPackageFilter(q *gorm.DB, filter *query.PackageFilter) *gorm.DB {
	if filter == nil {
		return q
	}
	if filter.CountryID != nil {
		q = q.Where("tour_packages.country_id = ?", *filter.CountryID)
	}
	if filter.CountryName != nil {
		q = q.Where("countries.name = ?", *filter.CountryName)
	}
	if filter.CountryNameContains != nil {
		q = q.Where("countries.name LIKE ?", "%"+*filter.CountryNameContains+"%")
	}
	if filter.VisaType != nil {
		q = q.Where("tour_packages.visa_type = ?", *filter.VisaType)
	}
	if filter.Price != nil {
		q = q.Where("tour_packages.price = ?", *filter.Price)
	}
	if filter.PriceGTE != nil {
		q = q.Where("tour_packages.price >= ?", *filter.PriceGTE)
	}
	if filter.PriceLTE != nil {
		q = q.Where("tour_packages.price <= ?", *filter.PriceLTE)
	}
	if filter.PriceRange != nil {
		q = q.Where("tour_packages.price BETWEEN ? AND ?", filter.PriceRange[0], filter.PriceRange[1])
	}
	if filter.DurationDays != nil {
		q = q.Where("tour_packages.duration_days = ?", *filter.DurationDays)
	}
	if filter.DurationGTE != nil {
		q = q.Where("tour_packages.duration_days >= ?", *filter.DurationGTE)
	}
	if filter.DurationLTE != nil {
		q = q.Where("tour_packages.duration_days <= ?", *filter.DurationLTE)
	}
	if filter.DestinationID != nil {
		q = q.Where("d.id = ?", *filter.DestinationID)
	}
	if filter.DestinationContains != nil {
		q = q.Where("d.name LIKE ?", "%"+*filter.DestinationContains+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"tour_packages.title LIKE ? OR tour_packages.description LIKE ?"+
				" OR countries.name LIKE ? OR d.name LIKE ?"+
				" OR tour_packages.highlights LIKE ? OR tour_packages.inclusions LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}
	return q
}

// packageOrderClause qualifies the parsed ordering terms against the
// tour_packages table
func packageOrderClause(terms []query.OrderTerm) string {
	if len(terms) == 0 {
		terms = query.DefaultPackageOrdering
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		clause := "tour_packages." + t.Field
		if t.Desc {
			clause += " DESC"
		}
		parts = append(parts, clause)
	}
	return strings.Join(parts, ", ")
}

// ListActive lists active packages matching the filter. Destination-level
// filters and search require joining the link table, so the result set is
// deduplicated on the package ID.
func (r *tourPackageRepository) ListActive(ctx context.Context, filter *query.PackageFilter, offset, limit int) ([]*models.TourPackage, int64, error) {
	var packages []*models.TourPackage
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.TourPackage{}).
		Joins("LEFT JOIN countries ON countries.id = tour_packages.country_id").
		Joins("LEFT JOIN package_destinations pd ON pd.tour_package_id = tour_packages.id").
		Joins("LEFT JOIN destinations d ON d.id = pd.destination_id").
		Where("tour_packages.is_active = ?", true)

	base = applyPackageFilter(base, filter)

	if err := base.Distinct("tour_packages.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ordering []query.OrderTerm
	if filter != nil {
		ordering = filter.Ordering
	}

	err := base.
		Distinct("tour_packages.*").
		Preload("Country").
		Preload("Destinations").
		Preload("Destinations.Country").
		Order(packageOrderClause(ordering)).
		Offset(offset).
		Limit(limit).
		Find(&packages).Error

	return packages, total, err
}

// Update updates a tour package. Destination links are managed separately
// via ReplaceDestinations.
func (r *tourPackageRepository) Update(ctx context.Context, pkg *models.TourPackage) error {
	return r.db.WithContext(ctx).Omit("Destinations").Save(pkg).Error
}

// ReplaceDestinations replaces the package's destination links
func (r *tourPackageRepository) ReplaceDestinations(ctx context.Context, pkg *models.TourPackage, destinations []models.Destination) error {
	if err := r.db.WithContext(ctx).Model(pkg).Association("Destinations").Replace(destinations); err != nil {
		return err
	}
	pkg.Destinations = destinations
	return nil
}

// Delete deletes a tour package and its destination links
func (r *tourPackageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pkg := &models.TourPackage{ID: id}
		if err := tx.Model(pkg).Association("Destinations").Clear(); err != nil {
			return err
		}
		return tx.Delete(pkg).Error
	})
}
