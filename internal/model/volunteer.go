package model

// VolunteerOpportunity is a volunteer listing. Same shape as Resource plus commitment details.
type VolunteerOpportunity struct {
	Listing
	Category       VolunteerCategory `json:"category" gorm:"type:varchar(40);not null;index"`
	Type           VolunteerType     `json:"type" gorm:"type:varchar(20);not null"`
	TimeCommitment *string           `json:"timeCommitment" gorm:"size:255"`
	Skills         *string           `json:"skills" gorm:"type:text"`
}

// TableName keeps the table name short.
func (VolunteerOpportunity) TableName() string {
	return "volunteer_opportunities"
}

// VolunteerInput is the body of a volunteer opportunity create or update request.
type VolunteerInput struct {
	ListingFields
	Category       *VolunteerCategory `json:"category" validate:"omitempty,enum"`
	Type           *VolunteerType     `json:"type" validate:"omitempty,enum"`
	TimeCommitment *string            `json:"timeCommitment" validate:"omitempty,max=255"`
	Skills         *string            `json:"skills" validate:"omitempty,max=2000"`
}

// ApplyTo copies the volunteer-only supplied fields onto v.
func (in VolunteerInput) ApplyTo(v *VolunteerOpportunity) {
	in.ListingFields.ApplyTo(&v.Listing)
	if in.Category != nil {
		v.Category = *in.Category
	}
	if in.Type != nil {
		v.Type = *in.Type
	}
	setOptional(&v.TimeCommitment, in.TimeCommitment)
	setOptional(&v.Skills, in.Skills)
}
