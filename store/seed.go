package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/linkgen"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

// seedUserID is the id of the development user that owns the seed links
const seedUserID = "507f191e810c19729de860ea"

// SeedUsers returns user fixtures for development
func SeedUsers() []domain.User {
	timeNow := time.Now().Truncate(time.Millisecond).UTC()
	id, _ := primitive.ObjectIDFromHex(seedUserID)

	return []domain.User{
		{
			ID:             id,
			FullName:       "Ravi Gupta",
			Email:          "ravi@gmail.com",
			Mobile:         "+91 9876543210",
			Address:        "Mumbai, India",
			Verified:       true,
			MaxCommission:  domain.DefaultMaxCommission,
			HashedPassword: "$2a$10$2iPnt444yuUBu8tSCm0iXOaGO2YYyTLVzGKr9LudAj7s.9m9iv7PS", // password
			Roles:          []string{auth.RoleUser, auth.RoleAdmin},
			CreatedAt:      timeNow,
			UpdatedAt:      timeNow,
		},
	}
}

// SeedLinks returns affiliate link fixtures for development. The set covers
// every platform plus a few expired and deactivated links so list filters
// have something to chew on.
func SeedLinks() []domain.AffiliateLink {
	now := time.Now().Unix()

	fixtures := []struct {
		platform   domain.Platform
		dest       string
		expiry     int64
		commission float64
		active     bool
		tags       string
		customName string
	}{
		{domain.PlatformWhatsApp, "https://shop.example.com/headphones", now + 7*24*3600, 10, true, "electronics,audio", ""},
		{domain.PlatformInstagram, "https://shop.example.com/sneakers", now + 30*24*3600, 12.5, true, "fashion", ""},
		{domain.PlatformFacebook, "https://shop.example.com/blender", now + 3*24*3600, 8, true, "kitchen", ""},
		{domain.PlatformTelegram, "https://shop.example.com/ebook-go", now + 90*24*3600, 15, true, "books", ""},
		{domain.PlatformEmail, "https://shop.example.com/standing-desk", now + 12*3600, 5, true, "", ""},
		{domain.PlatformSMS, "https://shop.example.com/phone-case", now + 45*60, 3, true, "", ""},
		{domain.PlatformCustom, "https://shop.example.com/yoga-mat", now + 14*24*3600, 9, true, "fitness", "My Blog"},
		{domain.PlatformWhatsApp, "https://shop.example.com/old-promo", now - 24*3600, 10, true, "promo", ""},
		{domain.PlatformInstagram, "https://shop.example.com/paused-drop", now + 30*24*3600, 11, false, "fashion", ""},
		{domain.PlatformFacebook, "https://shop.example.com/stale-paused", now - 7*24*3600, 6, false, "", ""},
	}

	links := make([]domain.AffiliateLink, 0, len(fixtures))
	for i, f := range fixtures {
		l := domain.AffiliateLink{
			ID:                 primitive.NewObjectID().Hex(),
			UserID:             seedUserID,
			Platform:           f.platform,
			DestinationURL:     f.dest,
			ExpiryUnix:         f.expiry,
			CommissionPercent:  f.commission,
			IsActive:           f.active,
			CreatedAt:          now - int64(i)*3600,
			Tags:               f.tags,
			Conversions:        int64((len(fixtures) - i) * 3),
			CustomPlatformName: f.customName,
		}
		l.URL = linkgen.Encode(linkgen.Params{
			UserID:             l.UserID,
			Platform:           l.Platform,
			DestinationURL:     l.DestinationURL,
			ExpiryUnix:         l.ExpiryUnix,
			CommissionPercent:  l.CommissionPercent,
			CustomPlatformName: l.CustomPlatformName,
		}, linkgen.DefaultBaseURL)
		links = append(links, l)
	}

	return links
}

// SeedActivity returns activity feed fixtures for development
func SeedActivity() []domain.Activity {
	timeNow := time.Now().Truncate(time.Millisecond).UTC()

	return []domain.Activity{
		{
			ID:        primitive.NewObjectID(),
			UserID:    seedUserID,
			Type:      domain.ActivityEarnings,
			Message:   "You earned ₹450 from 3 conversions",
			CreatedAt: timeNow.Add(-2 * time.Hour),
		},
		{
			ID:        primitive.NewObjectID(),
			UserID:    seedUserID,
			Type:      domain.ActivityReferral,
			Message:   "New referral signed up via your WhatsApp link",
			CreatedAt: timeNow.Add(-26 * time.Hour),
		},
		{
			ID:        primitive.NewObjectID(),
			UserID:    seedUserID,
			Type:      domain.ActivityProfileUpdate,
			Message:   "Profile updated successfully",
			CreatedAt: timeNow.Add(-72 * time.Hour),
		},
	}
}

// Seed inserts data in database for development purposes
func Seed(ctx context.Context, db *mongo.Database) error {
	collections := make(map[string][]interface{}, 3)

	users := SeedUsers()
	collections["user"] = make([]interface{}, 0, len(users))
	for _, u := range users {
		collections["user"] = append(collections["user"], u)
	}

	links := SeedLinks()
	collections["link"] = make([]interface{}, 0, len(links))
	for _, l := range links {
		collections["link"] = append(collections["link"], l)
	}

	feed := SeedActivity()
	collections["activity"] = make([]interface{}, 0, len(feed))
	for _, a := range feed {
		collections["activity"] = append(collections["activity"], a)
	}

	for k, v := range collections {
		res, err := db.Collection(k).InsertMany(ctx, v)
		if err != nil || len(res.InsertedIDs) == 0 {
			return err
		}
	}

	return nil
}
