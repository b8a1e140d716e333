package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant. Every other entity carries its ID as the partition key.
type Company struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"company_name" db:"name"`
	Email        string    `json:"company_email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	GSTNumber    string    `json:"gst_number" db:"gst_number"`
	Phone        string    `json:"phone_no" db:"phone"`
	Location     *string   `json:"location" db:"location"`
	IndustryType *string   `json:"industry_type" db:"industry_type"`
	Website      *string   `json:"website" db:"website"`
	LogoURL      *string   `json:"logo_url" db:"logo_url"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
