package models

import "time"

// Business is the profile owned by a user with the "business" role.
// Created at business signup; mutated by the owner or by subscription
// reconciliation (premium flag). Never deleted by this core.
type Business struct {
	ID               string     `bson:"id" json:"id"`
	OwnerID          string     `bson:"owner_id" json:"owner_id"`
	Name             string     `bson:"name" json:"name"`
	Description      string     `bson:"description" json:"description,omitempty"`
	Category         string     `bson:"category" json:"category"`
	Address          string     `bson:"address" json:"address,omitempty"`
	PhoneNumber      string     `bson:"phone_number" json:"phone_number,omitempty"`
	Rating           float64    `bson:"rating" json:"rating"`
	RatingCount      int        `bson:"rating_count" json:"rating_count"`
	IsPremium        bool       `bson:"is_premium" json:"is_premium"`
	PremiumExpiresAt *time.Time `bson:"premium_expires_at,omitempty" json:"premium_expires_at,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}

// Service is a bookable offering owned by exactly one business.
// Soft-deactivated via IsActive; hard-deleted via an explicit delete.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	BusinessID      string    `bson:"business_id" json:"business_id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description,omitempty"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Category        string    `bson:"category" json:"category"`
	IsActive        bool      `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// ServiceInput carries caller-supplied service fields. Identity and
// timestamps are server-assigned and deliberately absent.
type ServiceInput struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	IsActive        bool    `json:"is_active"`
}
