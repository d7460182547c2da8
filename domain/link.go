package domain

import (
	"context"
	"strings"

	"github.com/ravikgupta/affilink/backend/web/auth"
)

// Platform is the closed set of channels an affiliate link can target
type Platform string

// Supported platforms. Custom carries a user supplied platform name.
const (
	PlatformWhatsApp  Platform = "WhatsApp"
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformTelegram  Platform = "Telegram"
	PlatformEmail     Platform = "Email"
	PlatformSMS       Platform = "SMS"
	PlatformCustom    Platform = "Custom"
)

// Platforms lists every member of the platform enumeration
var Platforms = []Platform{
	PlatformWhatsApp,
	PlatformFacebook,
	PlatformInstagram,
	PlatformTelegram,
	PlatformEmail,
	PlatformSMS,
	PlatformCustom,
}

// Valid reports whether p is a member of the platform enumeration
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Link status filter values
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// AffiliateLink represents the affiliate link model
type AffiliateLink struct {
	ID                 string   `json:"id" bson:"_id"`
	UserID             string   `json:"user_id" bson:"user_id"`
	URL                string   `json:"url" bson:"url"`
	Platform           Platform `json:"platform" bson:"platform"`
	DestinationURL     string   `json:"destination_url" bson:"destination_url"`
	ExpiryUnix         int64    `json:"expiry_unix" bson:"expiry_unix"`
	CommissionPercent  float64  `json:"commission_percent" bson:"commission_percent"`
	IsActive           bool     `json:"is_active" bson:"is_active"`
	CreatedAt          int64    `json:"created_at" bson:"created_at"`
	Tags               string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Conversions        int64    `json:"conversions" bson:"conversions"`
	CustomPlatformName string   `json:"custom_platform_name,omitempty" bson:"custom_platform_name,omitempty"`
}

// CreateLink represents data to create new affiliate link. Expiry is given
// either as an absolute unix-second instant or as a relative duration
// (value plus Hours/Days/Months unit); the absolute instant wins when both
// are present.
type CreateLink struct {
	Platform           Platform `json:"platform" validate:"required,platform"`
	DestinationURL     string   `json:"destination_url" validate:"required"`
	ExpiryUnix         int64    `json:"expiry_unix"`
	ExpiryValue        int64    `json:"expiry_value"`
	ExpiryUnit         string   `json:"expiry_unit" validate:"omitempty,oneof=Hours Days Months"`
	CommissionPercent  float64  `json:"commission_percent"`
	Tags               string   `json:"tags" validate:"omitempty,max=200"`
	CustomPlatformName string   `json:"custom_platform_name" validate:"omitempty,max=50"`
	UserID             string   `json:"-"`
}

// UpdateLink represents data to update affiliate link, nil fields are left unchanged
type UpdateLink struct {
	ID                 string    `json:"id" validate:"required,max=40"`
	Platform           *Platform `json:"platform" validate:"omitempty,platform"`
	DestinationURL     *string   `json:"destination_url"`
	ExpiryUnix         *int64    `json:"expiry_unix"`
	CommissionPercent  *float64  `json:"commission_percent"`
	Tags               *string   `json:"tags" validate:"omitempty,max=200"`
	CustomPlatformName *string   `json:"custom_platform_name" validate:"omitempty,max=50"`
	IsActive           *bool     `json:"is_active"`
}

// LinkFilter narrows the result of a link listing. Status is recomputed
// against the wall clock at query time: a link counts as active only while
// its IsActive flag is set and its expiry instant is still in the future.
type LinkFilter struct {
	Platform string `query:"platform" validate:"omitempty,max=50"`
	Status   string `query:"status" validate:"omitempty,oneof=active inactive"`
	Search   string `query:"search" validate:"omitempty,max=200"`
}

// Normalize folds filter values to their canonical form. "all" in any case
// and empty are equivalent for platform and status, and the status keywords
// are matched case-insensitively.
func (f *LinkFilter) Normalize() {
	if strings.EqualFold(f.Platform, "all") {
		f.Platform = ""
	}
	f.Status = strings.ToLower(f.Status)
	if f.Status == "all" {
		f.Status = ""
	}
}

// LinkUsecase represents the affiliate link's usecases
type LinkUsecase interface {
	GetByID(ctx context.Context, id string) (*AffiliateLink, error)
	Fetch(ctx context.Context, filter LinkFilter) ([]*AffiliateLink, error)
	Store(ctx context.Context, createLink CreateLink, runtimeOrigin string) (*AffiliateLink, error)
	Update(ctx context.Context, updateLink UpdateLink, user *auth.Claims) (*AffiliateLink, error)
	Delete(ctx context.Context, id string, user *auth.Claims) error
}

// LinkRepository represents the affiliate link's repository contract.
// Fetch returns records ordered newest CreatedAt first.
type LinkRepository interface {
	GetByID(ctx context.Context, id string) (*AffiliateLink, error)
	Fetch(ctx context.Context, filter LinkFilter) ([]*AffiliateLink, error)
	Store(ctx context.Context, link *AffiliateLink) error
	Update(ctx context.Context, link *AffiliateLink) error
	Delete(ctx context.Context, id string) error
}

// CommissionProvider supplies the maximum commission percent a user may
// offer on a link
type CommissionProvider interface {
	MaxCommission(ctx context.Context, userID string) (float64, error)
}
