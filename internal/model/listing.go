package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing holds the columns shared by every catalog entry.
type Listing struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null;index"`
	Description  *string   `json:"description" gorm:"type:text"`
	Location     *string   `json:"location" gorm:"size:255"`
	Address      *string   `json:"address" gorm:"size:255"`
	Phone        *string   `json:"phone" gorm:"size:64"`
	Email        *string   `json:"email" gorm:"size:255"`
	Website      *string   `json:"website" gorm:"size:512"`
	Hours        *string   `json:"hours" gorm:"type:text"`
	Notes        *string   `json:"notes" gorm:"type:text"`
	Requirements *string   `json:"requirements" gorm:"type:text"`
	ContactInfo  *string   `json:"contactInfo" gorm:"type:text"`
	IsActive     bool      `json:"isActive" gorm:"not null;index"`
	LastUpdated  time.Time `json:"lastUpdated" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Touch records a write at now.
func (l *Listing) Touch(now time.Time) {
	l.LastUpdated = now
}

// ListingFields is the optional descriptive part of a catalog write request.
// A nil pointer means "not supplied".
type ListingFields struct {
	Title        *string `json:"title" validate:"omitempty,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Address      *string `json:"address" validate:"omitempty,max=255"`
	Phone        *string `json:"phone" validate:"omitempty,max=64"`
	Email        *string `json:"email" validate:"omitempty,max=255"`
	Website      *string `json:"website" validate:"omitempty,max=512"`
	Hours        *string `json:"hours" validate:"omitempty,max=2000"`
	Notes        *string `json:"notes" validate:"omitempty,max=5000"`
	Requirements *string `json:"requirements" validate:"omitempty,max=2000"`
	ContactInfo  *string `json:"contactInfo" validate:"omitempty,max=2000"`
	IsActive     *bool   `json:"isActive"`
}

// ApplyTo copies every supplied field onto l.
func (f ListingFields) ApplyTo(l *Listing) {
	if f.Title != nil {
		l.Title = *f.Title
	}
	setOptional(&l.Description, f.Description)
	setOptional(&l.Location, f.Location)
	setOptional(&l.Address, f.Address)
	setOptional(&l.Phone, f.Phone)
	setOptional(&l.Email, f.Email)
	setOptional(&l.Website, f.Website)
	setOptional(&l.Hours, f.Hours)
	setOptional(&l.Notes, f.Notes)
	setOptional(&l.Requirements, f.Requirements)
	setOptional(&l.ContactInfo, f.ContactInfo)
	if f.IsActive != nil {
		l.IsActive = *f.IsActive
	}
}

// setOptional stores a copy of src in dst when supplied; an empty string clears the column.
func setOptional(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}
