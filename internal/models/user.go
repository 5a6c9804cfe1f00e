package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Username and phone number are
// each unique across the collection (enforced by indexes, see repository).
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UUID            string             `bson:"uuid" json:"id"`
	Username        string             `bson:"username" json:"username"`
	PhoneNumber     string             `bson:"phoneNumber" json:"phoneNumber"`
	PasswordHash    string             `bson:"password" json:"-"`
	IsPhoneVerified bool               `bson:"isPhoneVerified" json:"isPhoneVerified"`
	TotalInvestment float64            `bson:"totalInvestment" json:"totalInvestment"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"-"`
	LastLoginAt     *time.Time         `bson:"lastLoginAt,omitempty" json:"-"`
}

// PublicUser is the shape returned to clients on login/register.
type PublicUser struct {
	Username        string  `json:"username"`
	PhoneNumber     string  `json:"phoneNumber"`
	TotalInvestment float64 `json:"totalInvestment"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Username:        u.Username,
		PhoneNumber:     u.PhoneNumber,
		TotalInvestment: u.TotalInvestment,
	}
}
