package services

import (
	"context"
	"errors"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/adapters/persistence/repositories"
	"seventour-backend/internal/pkg/pagination"
	"seventour-backend/internal/pkg/query"

	"gorm.io/gorm"
)

// Catalog errors
var (
	ErrCountryNotFound     = errors.New("country not found")
	ErrCountryNameTaken    = errors.New("country name already exists")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrDestinationTaken    = errors.New("destination already exists in this country")
	ErrPackageNotFound     = errors.New("tour package not found")
	ErrInvalidVisaType     = errors.New("invalid visa type")
)

// CatalogService handles countries, destinations and tour packages
type CatalogService struct {
	countryRepo     repositories.CountryRepository
	destinationRepo repositories.DestinationRepository
	packageRepo     repositories.TourPackageRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	countryRepo repositories.CountryRepository,
	destinationRepo repositories.DestinationRepository,
	packageRepo repositories.TourPackageRepository,
) *CatalogService {
	return &CatalogService{
		countryRepo:     countryRepo,
		destinationRepo: destinationRepo,
		packageRepo:     packageRepo,
	}
}

// ============================================================
// Countries
// ============================================================

// ListCountries lists countries ordered by name, optionally filtered by a
// search term over name and country code
func (s *CatalogService) ListCountries(ctx context.Context, search string) ([]*models.Country, error) {
	return s.countryRepo.List(ctx, search)
}

// GetCountry gets a country by ID
func (s *CatalogService) GetCountry(ctx context.Context, id uint) (*models.Country, error) {
	country, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return country, nil
}

// CountryInput carries country create/update fields
type CountryInput struct {
	Name        string
	CountryCode string
}

// CreateCountry creates a new country
func (s *CatalogService) CreateCountry(ctx context.Context, input *CountryInput) (*models.Country, error) {
	taken, err := s.countryRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCountryNameTaken
	}

	country := &models.Country{
		Name:        input.Name,
		CountryCode: input.CountryCode,
	}
	if err := s.countryRepo.Create(ctx, country); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCountryNameTaken
		}
		return nil, err
	}
	return country, nil
}

// UpdateCountry updates a country
func (s *CatalogService) UpdateCountry(ctx context.Context, id uint, input *CountryInput) (*models.Country, error) {
	country, err := s.GetCountry(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != country.Name {
		taken, err := s.countryRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCountryNameTaken
		}
	}

	country.Name = input.Name
	country.CountryCode = input.CountryCode
	if err := s.countryRepo.Update(ctx, country); err != nil {
		return nil, err
	}
	return country, nil
}

// DeleteCountry deletes a country
func (s *CatalogService) DeleteCountry(ctx context.Context, id uint) error {
	if _, err := s.GetCountry(ctx, id); err != nil {
		return err
	}
	return s.countryRepo.Delete(ctx, id)
}

// ============================================================
// Destinations
// ============================================================

// ListDestinationsOutput is a paginated destination listing
type ListDestinationsOutput struct {
	Destinations []*models.DestinationResponse `json:"destinations"`
	Meta         *pagination.Meta              `json:"meta"`
}

// ListDestinations lists destinations matching the filter
func (s *CatalogService) ListDestinations(ctx context.Context, filter *repositories.DestinationFilter, params *pagination.Params) (*ListDestinationsOutput, error) {
	destinations, total, err := s.destinationRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.DestinationResponse, len(destinations))
	for i, d := range destinations {
		responses[i] = d.ToResponse()
	}

	return &ListDestinationsOutput{
		Destinations: responses,
		Meta:         pagination.GetMeta(params, total),
	}, nil
}

// GetDestination gets a destination by ID
func (s *CatalogService) GetDestination(ctx context.Context, id uint) (*models.Destination, error) {
	destination, err := s.destinationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return destination, nil
}

// DestinationInput carries destination create/update fields
type DestinationInput struct {
	CountryID   uint
	Name        string
	Description string
}

// CreateDestination creates a new destination within a country
func (s *CatalogService) CreateDestination(ctx context.Context, input *DestinationInput) (*models.Destination, error) {
	if _, err := s.GetCountry(ctx, input.CountryID); err != nil {
		return nil, err
	}

	taken, err := s.destinationRepo.ExistsInCountry(ctx, input.CountryID, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDestinationTaken
	}

	destination := &models.Destination{
		CountryID:   input.CountryID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.destinationRepo.Create(ctx, destination); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDestinationTaken
		}
		return nil, err
	}
	return s.GetDestination(ctx, destination.ID)
}

// UpdateDestination updates a destination
func (s *CatalogService) UpdateDestination(ctx context.Context, id uint, input *DestinationInput) (*models.Destination, error) {
	destination, err := s.GetDestination(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CountryID != destination.CountryID {
		if _, err := s.GetCountry(ctx, input.CountryID); err != nil {
			return nil, err
		}
	}

	if input.CountryID != destination.CountryID || input.Name != destination.Name {
		taken, err := s.destinationRepo.ExistsInCountry(ctx, input.CountryID, input.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDestinationTaken
		}
	}

	destination.CountryID = input.CountryID
	destination.Name = input.Name
	destination.Description = input.Description
	destination.Country = nil
	if err := s.destinationRepo.Update(ctx, destination); err != nil {
		return nil, err
	}
	return s.GetDestination(ctx, id)
}

// DeleteDestination deletes a destination
func (s *CatalogService) DeleteDestination(ctx context.Context, id uint) error {
	if _, err := s.GetDestination(ctx, id); err != nil {
		return err
	}
	return s.destinationRepo.Delete(ctx, id)
}

// ============================================================
// Tour packages
// ============================================================

// ListPackagesOutput is a paginated package listing
type ListPackagesOutput struct {
	Packages []*models.TourPackageResponse `json:"packages"`
	Meta     *pagination.Meta              `json:"meta"`
}

// ListPackages lists active packages matching the parsed filter
func (s *CatalogService) ListPackages(ctx context.Context, filter *query.PackageFilter, params *pagination.Params) (*ListPackagesOutput, error) {
	packages, total, err := s.packageRepo.ListActive(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TourPackageResponse, len(packages))
	for i, p := range packages {
		responses[i] = p.ToResponse()
	}

	return &ListPackagesOutput{
		Packages: responses,
		Meta:     pagination.GetMeta(params, total),
	}, nil
}

// GetPackage gets an active package by ID. Inactive packages report
// not-found, same as absent ones.
func (s *CatalogService) GetPackage(ctx context.Context, id uint) (*models.TourPackage, error) {
	pkg, err := s.packageRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// GetPackageAny gets a package regardless of its active flag (admin use)
func (s *CatalogService) GetPackageAny(ctx context.Context, id uint) (*models.TourPackage, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// PackageInput carries package create/update fields
type PackageInput struct {
	Title          string
	Description    string
	CountryID      *uint
	DestinationIDs []uint
	VisaType       string
	Price          float64
	Highlights     string
	Inclusions     string
	Exclusions     string
	DurationDays   *uint
	IsActive       *bool
}

// resolveDestinations loads and validates the referenced destinations
func (s *CatalogService) resolveDestinations(ctx context.Context, ids []uint) ([]models.Destination, error) {
	destinations := make([]models.Destination, 0, len(ids))
	for _, id := range ids {
		d, err := s.GetDestination(ctx, id)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, *d)
	}
	return destinations, nil
}

// CreatePackage creates a new tour package
func (s *CatalogService) CreatePackage(ctx context.Context, input *PackageInput) (*models.TourPackage, error) {
	if input.VisaType == "" {
		input.VisaType = models.VisaSticker
	}
	if !models.IsValidVisaType(input.VisaType) {
		return nil, ErrInvalidVisaType
	}
	if input.CountryID != nil {
		if _, err := s.GetCountry(ctx, *input.CountryID); err != nil {
			return nil, err
		}
	}
	destinations, err := s.resolveDestinations(ctx, input.DestinationIDs)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	pkg := &models.TourPackage{
		Title:        input.Title,
		Description:  input.Description,
		CountryID:    input.CountryID,
		VisaType:     input.VisaType,
		Price:        input.Price,
		Highlights:   input.Highlights,
		Inclusions:   input.Inclusions,
		Exclusions:   input.Exclusions,
		DurationDays: input.DurationDays,
		IsActive:     active,
		Destinations: destinations,
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return s.GetPackageAny(ctx, pkg.ID)
}

// UpdatePackage updates a tour package and its destination links
func (s *CatalogService) UpdatePackage(ctx context.Context, id uint, input *PackageInput) (*models.TourPackage, error) {
	pkg, err := s.GetPackageAny(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.VisaType == "" {
		input.VisaType = pkg.VisaType
	}
	if !models.IsValidVisaType(input.VisaType) {
		return nil, ErrInvalidVisaType
	}
	if input.CountryID != nil {
		if _, err := s.GetCountry(ctx, *input.CountryID); err != nil {
			return nil, err
		}
	}
	destinations, err := s.resolveDestinations(ctx, input.DestinationIDs)
	if err != nil {
		return nil, err
	}

	pkg.Title = input.Title
	pkg.Description = input.Description
	pkg.CountryID = input.CountryID
	pkg.VisaType = input.VisaType
	pkg.Price = input.Price
	pkg.Highlights = input.Highlights
	pkg.Inclusions = input.Inclusions
	pkg.Exclusions = input.Exclusions
	pkg.DurationDays = input.DurationDays
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	pkg.Country = nil

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	if err := s.packageRepo.ReplaceDestinations(ctx, pkg, destinations); err != nil {
		return nil, err
	}
	return s.GetPackageAny(ctx, id)
}

// SetPackageImage records the stored main image path on the package
func (s *CatalogService) SetPackageImage(ctx context.Context, id uint, path string) (*models.TourPackage, error) {
	pkg, err := s.GetPackageAny(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg.MainImage = path
	pkg.Country = nil
	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// DeletePackage deletes a tour package
func (s *CatalogService) DeletePackage(ctx context.Context, id uint) error {
	if _, err := s.GetPackageAny(ctx, id); err != nil {
		return err
	}
	return s.packageRepo.Delete(ctx, id)
}
