package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/adapters/persistence/repositories"
	"seventour-backend/internal/pkg/query"

	"gorm.io/gorm"
)

// ============================================================
// In-memory repository fakes for service tests
// ============================================================

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) CreateWithCoinAccount(_ context.Context, user *models.User, welcomeBalance uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.ReferralCode == user.ReferralCode {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.GoldenCoin = &models.GoldenCoin{UserID: user.ID, Balance: welcomeBalance}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByReferralCode(_ context.Context, code string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ReferralCode == code {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.User
	for _, u := range r.users {
		copied := *u
		all = append(all, &copied)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) ExistsByReferralCode(_ context.Context, code string) (bool, error) {
	_, err := r.GetByReferralCode(context.Background(), code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{nextID: 1, tokens: map[uint]*models.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = r.nextID
	r.nextID++
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			copied := *t
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, t := range r.tokens {
		if t.IsExpired() || t.IsRevoked() {
			delete(r.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeRefreshTokenRepo) activeCount(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.IsRevoked() {
			n++
		}
	}
	return n
}

type fakeCountryRepo struct {
	mu        sync.Mutex
	nextID    uint
	countries map[uint]*models.Country
}

func newFakeCountryRepo() *fakeCountryRepo {
	return &fakeCountryRepo{nextID: 1, countries: map[uint]*models.Country{}}
}

func (r *fakeCountryRepo) Create(_ context.Context, country *models.Country) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.countries {
		if strings.EqualFold(c.Name, country.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	country.ID = r.nextID
	r.nextID++
	copied := *country
	r.countries[country.ID] = &copied
	return nil
}

func (r *fakeCountryRepo) GetByID(_ context.Context, id uint) (*models.Country, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.countries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCountryRepo) List(_ context.Context, search string) ([]*models.Country, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Country
	for _, c := range r.countries {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCountryRepo) Update(_ context.Context, country *models.Country) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.countries[country.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *country
	r.countries[country.ID] = &copied
	return nil
}

func (r *fakeCountryRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.countries, id)
	return nil
}

func (r *fakeCountryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.countries {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCountryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.countries)), nil
}

type fakeDestinationRepo struct {
	mu           sync.Mutex
	nextID       uint
	destinations map[uint]*models.Destination
}

func newFakeDestinationRepo() *fakeDestinationRepo {
	return &fakeDestinationRepo{nextID: 1, destinations: map[uint]*models.Destination{}}
}

func (r *fakeDestinationRepo) Create(_ context.Context, destination *models.Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.destinations {
		if d.CountryID == destination.CountryID && strings.EqualFold(d.Name, destination.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	destination.ID = r.nextID
	r.nextID++
	copied := *destination
	r.destinations[destination.ID] = &copied
	return nil
}

func (r *fakeDestinationRepo) GetByID(_ context.Context, id uint) (*models.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.destinations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDestinationRepo) List(_ context.Context, filter *repositories.DestinationFilter, offset, limit int) ([]*models.Destination, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Destination
	for _, d := range r.destinations {
		if filter != nil && filter.CountryID != nil && d.CountryID != *filter.CountryID {
			continue
		}
		if filter != nil && filter.Search != "" &&
			!strings.Contains(strings.ToLower(d.Name), strings.ToLower(filter.Search)) {
			continue
		}
		copied := *d
		all = append(all, &copied)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeDestinationRepo) Update(_ context.Context, destination *models.Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.destinations[destination.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *destination
	r.destinations[destination.ID] = &copied
	return nil
}

func (r *fakeDestinationRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.destinations, id)
	return nil
}

func (r *fakeDestinationRepo) ExistsInCountry(_ context.Context, countryID uint, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.destinations {
		if d.CountryID == countryID && strings.EqualFold(d.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

type fakePackageRepo struct {
	mu       sync.Mutex
	nextID   uint
	packages map[uint]*models.TourPackage
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{nextID: 1, packages: map[uint]*models.TourPackage{}}
}

func (r *fakePackageRepo) Create(_ context.Context, pkg *models.TourPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg.ID = r.nextID
	r.nextID++
	copied := *pkg
	r.packages[pkg.ID] = &copied
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id uint) (*models.TourPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePackageRepo) GetActiveByID(_ context.Context, id uint) (*models.TourPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok || !p.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePackageRepo) ListActive(_ context.Context, filter *query.PackageFilter, offset, limit int) ([]*models.TourPackage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.TourPackage
	for _, p := range r.packages {
		if !p.IsActive {
			continue
		}
		if filter != nil {
			if filter.CountryID != nil && (p.CountryID == nil || *p.CountryID != *filter.CountryID) {
				continue
			}
			if filter.VisaType != nil && p.VisaType != *filter.VisaType {
				continue
			}
			if filter.PriceGTE != nil && p.Price < *filter.PriceGTE {
				continue
			}
			if filter.PriceLTE != nil && p.Price > *filter.PriceLTE {
				continue
			}
			if filter.Search != "" &&
				!strings.Contains(strings.ToLower(p.Title+" "+p.Description), strings.ToLower(filter.Search)) {
				continue
			}
		}
		copied := *p
		all = append(all, &copied)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakePackageRepo) Update(_ context.Context, pkg *models.TourPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.packages[pkg.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *pkg
	copied.Destinations = existing.Destinations
	r.packages[pkg.ID] = &copied
	return nil
}

func (r *fakePackageRepo) ReplaceDestinations(_ context.Context, pkg *models.TourPackage, destinations []models.Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.packages[pkg.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Destinations = destinations
	return nil
}

func (r *fakePackageRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.packages, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	nextID  uint
	reviews map[uint]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1, reviews: map[uint]*models.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.TourPackageID == review.TourPackageID && rv.UserID == review.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	review.ID = r.nextID
	r.nextID++
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id uint) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rv
	return &copied, nil
}

func (r *fakeReviewRepo) List(_ context.Context, filter *repositories.ReviewFilter, offset, limit int) ([]*models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*models.Review
	for _, rv := range r.reviews {
		if filter != nil && filter.TourPackageID != nil && rv.TourPackageID != *filter.TourPackageID {
			continue
		}
		if filter != nil && filter.UserID != nil && rv.UserID != *filter.UserID {
			continue
		}
		copied := *rv
		all = append(all, &copied)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ExistsByPackageAndUser(_ context.Context, packageID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.TourPackageID == packageID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
