package repositories

import (
	"context"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/pkg/query"
)

// UserRepository defines user repository interface
type UserRepository interface {
	// CreateWithCoinAccount inserts the user row and its golden coin row
	// in a single transaction. The coin balance is the welcome bonus.
	CreateWithCoinAccount(ctx context.Context, user *models.User, welcomeBalance uint) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CountryRepository defines country repository interface
type CountryRepository interface {
	Create(ctx context.Context, country *models.Country) error
	GetByID(ctx context.Context, id uint) (*models.Country, error)
	List(ctx context.Context, search string) ([]*models.Country, error)
	Update(ctx context.Context, country *models.Country) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// DestinationFilter narrows destination listings
type DestinationFilter struct {
	CountryID   *uint
	CountryName *string
	Search      string
	// Ordering is "name" or "country__name", optionally "-"-prefixed
	Ordering string
}

// DestinationRepository defines destination repository interface
type DestinationRepository interface {
	Create(ctx context.Context, destination *models.Destination) error
	GetByID(ctx context.Context, id uint) (*models.Destination, error)
	List(ctx context.Context, filter *DestinationFilter, offset, limit int) ([]*models.Destination, int64, error)
	Update(ctx context.Context, destination *models.Destination) error
	Delete(ctx context.Context, id uint) error
	ExistsInCountry(ctx context.Context, countryID uint, name string) (bool, error)
}

// TourPackageRepository defines tour package repository interface
type TourPackageRepository interface {
	Create(ctx context.Context, pkg *models.TourPackage) error
	// GetByID returns any package regardless of its active flag (admin use)
	GetByID(ctx context.Context, id uint) (*models.TourPackage, error)
	// GetActiveByID returns gorm.ErrRecordNotFound for inactive packages
	GetActiveByID(ctx context.Context, id uint) (*models.TourPackage, error)
	// ListActive applies the parsed filter over active packages only
	ListActive(ctx context.Context, filter *query.PackageFilter, offset, limit int) ([]*models.TourPackage, int64, error)
	Update(ctx context.Context, pkg *models.TourPackage) error
	ReplaceDestinations(ctx context.Context, pkg *models.TourPackage, destinations []models.Destination) error
	Delete(ctx context.Context, id uint) error
}

// ReviewFilter narrows review listings
type ReviewFilter struct {
	TourPackageID *uint
	UserID        *uint
}

// ReviewRepository defines review repository interface
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	List(ctx context.Context, filter *ReviewFilter, offset, limit int) ([]*models.Review, int64, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	ExistsByPackageAndUser(ctx context.Context, packageID, userID uint) (bool, error)
}
