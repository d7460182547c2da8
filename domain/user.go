package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ravikgupta/affilink/backend/web/auth"
)

// User represents the affiliate user profile model
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	FullName       string             `json:"full_name" bson:"full_name"`
	Email          string             `json:"email" bson:"email"`
	Mobile         string             `json:"mobile" bson:"mobile"`
	Address        string             `json:"address" bson:"address"`
	DateOfBirth    string             `json:"date_of_birth" bson:"date_of_birth"`
	AvatarURL      string             `json:"avatar_url" bson:"avatar_url"`
	Verified       bool               `json:"verified" bson:"verified"`
	MaxCommission  float64            `json:"max_commission_percent" bson:"max_commission_percent"`
	HashedPassword string             `json:"-" bson:"hashed_password"`
	Roles          []string           `json:"roles" bson:"roles"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateUser represents data to create new User
type CreateUser struct {
	FullName string `json:"full_name" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=30"`
}

// UpdateUser represents data to update User profile
type UpdateUser struct {
	ID              primitive.ObjectID `json:"id" validate:"required"`
	FullName        *string            `json:"full_name" validate:"omitempty,max=50"`
	Email           *string            `json:"email" validate:"omitempty,email"`
	Mobile          *string            `json:"mobile" validate:"omitempty,max=20"`
	Address         *string            `json:"address" validate:"omitempty,max=200"`
	DateOfBirth     *string            `json:"date_of_birth" validate:"omitempty,max=40"`
	AvatarURL       *string            `json:"avatar_url" validate:"omitempty,url"`
	CurrentPassword string             `json:"current_password" validate:"required,min=8,max=30"`
	NewPassword     *string            `json:"new_password" validate:"omitempty,min=8,max=30"`
}

// Activity represents a single entry of the user's recent activity feed
type Activity struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Type      string             `json:"type" bson:"type"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Activity types
const (
	ActivityProfileUpdate = "profile_update"
	ActivityEarnings      = "earnings"
	ActivityReferral      = "referral"
)

// DefaultMaxCommission is the maximum commission percent granted to users
// whose profile does not carry an explicit limit
const DefaultMaxCommission = 15.0

// UserUsecase represents the User's usecases
type UserUsecase interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user UpdateUser, claims *auth.Claims) error
	Create(ctx context.Context, user CreateUser) (*User, error)
	Delete(ctx context.Context, id string) error
	Authenticate(ctx context.Context, now time.Time, email, password string) (*auth.Claims, error)
	MaxCommission(ctx context.Context, userID string) (float64, error)
	RecentActivity(ctx context.Context, userID string) ([]*Activity, error)
}

// UserRepository represents the User's repository contract
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	StoreActivity(ctx context.Context, activity *Activity) error
	RecentActivity(ctx context.Context, userID string, limit int64) ([]*Activity, error)
}
