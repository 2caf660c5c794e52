package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User roles
const (
	RoleUser           = "USER"
	RoleAdmin          = "ADMIN"
	RoleSubAdmin       = "SUB_ADMIN"
	RoleEmbassyPartner = "EMBASSY_PARTNER"
)

// ValidRoles lists all assignable user roles
var ValidRoles = []string{RoleUser, RoleAdmin, RoleSubAdmin, RoleEmbassyPartner}

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents users table. Email is the login identifier.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	FirstName    string         `gorm:"size:30" json:"first_name"`
	LastName     string         `gorm:"size:150" json:"last_name"`
	Role         string         `gorm:"size:20;default:'USER'" json:"role"`
	ReferralCode string         `gorm:"uniqueIndex;size:50;not null" json:"referral_code"`
	ReferredByID *uint          `gorm:"index" json:"referred_by_id"`
	ProfilePhoto string         `gorm:"size:255" json:"profile_photo"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	ReferredBy *User       `gorm:"foreignKey:ReferredByID" json:"-"`
	GoldenCoin *GoldenCoin `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            string    `json:"role"`
	ReferralCode    string    `json:"referral_code"`
	ProfilePhotoURL string    `json:"profile_photo_url"`
	IsActive        bool      `json:"is_active"`
	CoinBalance     *uint     `json:"golden_coin_balance,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		ReferralCode:    u.ReferralCode,
		ProfilePhotoURL: u.ProfilePhoto,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
	}
	if u.GoldenCoin != nil {
		balance := u.GoldenCoin.Balance
		resp.CoinBalance = &balance
	}
	return resp
}

// GoldenCoin represents the loyalty point balance, one row per user,
// created together with the user row at registration time.
type GoldenCoin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   uint      `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (GoldenCoin) TableName() string {
	return "golden_coins"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog
// ============================================================

// Country represents countries table
type Country struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CountryCode string `gorm:"size:3" json:"country_code"`

	Destinations []Destination `gorm:"foreignKey:CountryID" json:"-"`
}

func (Country) TableName() string {
	return "countries"
}

// Destination represents destinations table.
// A destination name is unique within its country.
type Destination struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CountryID   uint   `gorm:"not null;uniqueIndex:uniq_country_destination" json:"country_id"`
	Name        string `gorm:"size:200;not null;uniqueIndex:uniq_country_destination" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Country *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
}

func (Destination) TableName() string {
	return "destinations"
}

// DestinationResponse DTO
type DestinationResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CountryID   uint   `json:"country_id"`
	CountryName string `json:"country_name,omitempty"`
}

func (d *Destination) ToResponse() *DestinationResponse {
	resp := &DestinationResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CountryID:   d.CountryID,
	}
	if d.Country != nil {
		resp.CountryName = d.Country.Name
	}
	return resp
}

// Visa types
const (
	VisaFree    = "VISA_FREE"
	VisaEVisa   = "E_VISA"
	VisaArrival = "ON_ARRIVAL"
	VisaSticker = "STICKER_VISA"
)

// VisaTypeDisplay maps a visa type to its human-readable label
var VisaTypeDisplay = map[string]string{
	VisaFree:    "Visa Free",
	VisaEVisa:   "E-Visa",
	VisaArrival: "On Arrival",
	VisaSticker: "Sticker Visa",
}

// IsValidVisaType reports whether v is a known visa type
func IsValidVisaType(v string) bool {
	_, ok := VisaTypeDisplay[v]
	return ok
}

// TourPackage represents tour_packages table
type TourPackage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	CountryID    *uint     `gorm:"index" json:"country_id"`
	VisaType     string    `gorm:"size:20;not null;default:'STICKER_VISA'" json:"visa_type"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Highlights   string    `gorm:"type:text" json:"highlights"`
	Inclusions   string    `gorm:"type:text" json:"inclusions"`
	Exclusions   string    `gorm:"type:text" json:"exclusions"`
	DurationDays *uint     `json:"duration_days"`
	MainImage    string    `gorm:"size:255" json:"main_image"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Country      *Country      `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Destinations []Destination `gorm:"many2many:package_destinations" json:"destinations,omitempty"`
}

func (TourPackage) TableName() string {
	return "tour_packages"
}

// TourPackageResponse DTO
type TourPackageResponse struct {
	ID              uint                   `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Country         *Country               `json:"country"`
	Destinations    []*DestinationResponse `json:"destinations"`
	VisaType        string                 `json:"visa_type"`
	VisaTypeDisplay string                 `json:"visa_type_display"`
	Price           float64                `json:"price"`
	Highlights      string                 `json:"highlights"`
	Inclusions      string                 `json:"inclusions"`
	Exclusions      string                 `json:"exclusions"`
	DurationDays    *uint                  `json:"duration_days"`
	MainImage       string                 `json:"main_image"`
	IsActive        bool                   `json:"is_active"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func (p *TourPackage) ToResponse() *TourPackageResponse {
	resp := &TourPackageResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Country:         p.Country,
		Destinations:    make([]*DestinationResponse, 0, len(p.Destinations)),
		VisaType:        p.VisaType,
		VisaTypeDisplay: VisaTypeDisplay[p.VisaType],
		Price:           p.Price,
		Highlights:      p.Highlights,
		Inclusions:      p.Inclusions,
		Exclusions:      p.Exclusions,
		DurationDays:    p.DurationDays,
		MainImage:       p.MainImage,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for i := range p.Destinations {
		resp.Destinations = append(resp.Destinations, p.Destinations[i].ToResponse())
	}
	return resp
}

// Review represents reviews table.
// A user can review a tour package at most once.
type Review struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TourPackageID uint      `gorm:"not null;uniqueIndex:uniq_package_reviewer" json:"tour_package_id"`
	UserID        uint      `gorm:"not null;uniqueIndex:uniq_package_reviewer" json:"user_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	TourPackage *TourPackage `gorm:"foreignKey:TourPackageID" json:"-"`
	User        *User        `gorm:"foreignKey:UserID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewResponse DTO
type ReviewResponse struct {
	ID               uint      `json:"id"`
	TourPackageID    uint      `json:"tour_package_id"`
	TourPackageTitle string    `json:"tour_package_title,omitempty"`
	UserID           uint      `json:"user_id"`
	UserEmail        string    `json:"user_email,omitempty"`
	Rating           int       `json:"rating"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (r *Review) ToResponse() *ReviewResponse {
	resp := &ReviewResponse{
		ID:            r.ID,
		TourPackageID: r.TourPackageID,
		UserID:        r.UserID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.TourPackage != nil {
		resp.TourPackageTitle = r.TourPackage.Title
	}
	if r.User != nil {
		resp.UserEmail = r.User.Email
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&GoldenCoin{},
		&RefreshToken{},
		&Country{},
		&Destination{},
		&TourPackage{},
		&Review{},
	)
}
