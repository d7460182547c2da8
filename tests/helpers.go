package tests

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

// StringPointer returns pointer of a string
func StringPointer(s string) *string {
	return &s
}

// Int64Pointer returns pointer of an int64
func Int64Pointer(i int64) *int64 {
	return &i
}

// Float64Pointer returns pointer of a float64
func Float64Pointer(f float64) *float64 {
	return &f
}

// BoolPointer returns pointer of a bool
func BoolPointer(b bool) *bool {
	return &b
}

// PlatformPointer returns pointer of a Platform
func PlatformPointer(p domain.Platform) *domain.Platform {
	return &p
}

// NewUser creates instance of User model
func NewUser() *domain.User {
	id, _ := primitive.ObjectIDFromHex("507f191e810c19729de860ea")
	return &domain.User{
		ID:             id,
		FullName:       "John Doe",
		Email:          "test@example.com",
		MaxCommission:  domain.DefaultMaxCommission,
		HashedPassword: "$2a$10$2iPnt444yuUBu8tSCm0iXOaGO2YYyTLVzGKr9LudAj7s.9m9iv7PS", // password
		Roles:          []string{auth.RoleUser},
		CreatedAt:      time.Now().Truncate(time.Millisecond).UTC(),
		UpdatedAt:      time.Now().Truncate(time.Millisecond).UTC(),
	}
}

// NewUpdateUser creates instance of UpdateUser model
func NewUpdateUser() domain.UpdateUser {
	id, _ := primitive.ObjectIDFromHex("507f191e810c19729de860ea")
	return domain.UpdateUser{
		ID:              id,
		FullName:        StringPointer("John Doe"),
		Email:           StringPointer("test@example.com"),
		CurrentPassword: "password",
		NewPassword:     StringPointer("newpassword"),
	}
}

// NewCreateUser creates instance of CreateUser model
func NewCreateUser() domain.CreateUser {
	return domain.CreateUser{
		FullName: "John Doe",
		Email:    "test@example.com",
		Password: "newpassword",
	}
}

// NewLink creates instance of AffiliateLink model
func NewLink() *domain.AffiliateLink {
	expiry := time.Now().Add(time.Hour).Unix()
	return &domain.AffiliateLink{
		ID:                "63c5f2e8a1b2c3d4e5f60718",
		UserID:            "507f191e810c19729de860ea",
		URL:               "https://example.com/aff/507f191e810c19729de860ea?p=wa&d=https%3A%2F%2Fwww.example.org%2Fproduct&e=1893456000&c=10",
		Platform:          domain.PlatformWhatsApp,
		DestinationURL:    "https://www.example.org/product",
		ExpiryUnix:        expiry,
		CommissionPercent: 10,
		IsActive:          true,
		CreatedAt:         time.Now().Unix(),
		Tags:              "electronics",
	}
}

// NewCreateLink creates instance of CreateLink model
func NewCreateLink() domain.CreateLink {
	return domain.CreateLink{
		Platform:          domain.PlatformWhatsApp,
		DestinationURL:    "https://www.example.org/product",
		ExpiryUnix:        time.Now().Add(time.Hour).Unix(),
		CommissionPercent: 10,
		Tags:              "electronics",
		UserID:            "507f191e810c19729de860ea",
	}
}

// NewUpdateLink creates instance of UpdateLink model
func NewUpdateLink() domain.UpdateLink {
	return domain.UpdateLink{
		ID:             "63c5f2e8a1b2c3d4e5f60718",
		DestinationURL: StringPointer("https://www.example.org/other"),
		ExpiryUnix:     Int64Pointer(time.Now().Add(2 * time.Hour).Unix()),
	}
}

// NewClaims creates jwt claims for the fixture user
func NewClaims() *auth.Claims {
	return auth.NewClaims("507f191e810c19729de860ea", []string{auth.RoleUser}, time.Now(), time.Hour)
}

// NewAdminClaims creates jwt claims with the admin role
func NewAdminClaims() *auth.Claims {
	return auth.NewClaims("63c5f2e8a1b2c3d4e5f60799", []string{auth.RoleAdmin}, time.Now(), time.Hour)
}
