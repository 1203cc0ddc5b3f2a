package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role controls which route groups a user may reach
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleAgent:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password,omitempty" json:"-"`
	Role            Role               `bson:"role" json:"role"`
	IsEmailVerified bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeEmail lower-cases and trims an address the way it is stored
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Public returns a copy that is safe to serialize
func (u User) Public() User {
	u.Password = ""
	return u
}

// ProfileUpdate carries the editable profile fields
type ProfileUpdate struct {
	Name    string `json:"name" validate:"omitempty,min=1"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Avatar  string `json:"avatar"`
}
