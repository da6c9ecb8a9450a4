package models

import "time"

const (
	RoleClient   = "client"
	RoleBusiness = "business"
)

// User is the identity record consumed by this core. Identity is owned by
// the identity service; nothing here mutates it.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Role        string    `bson:"role" json:"role"` // "client" or "business"
	FullName    string    `bson:"full_name" json:"full_name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phone_number" json:"phone_number,omitempty"`
	AvatarURL   string    `bson:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
