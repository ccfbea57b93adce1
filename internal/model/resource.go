package model

// Resource is a food, meal, pantry or delivery listing on the public directory.
type Resource struct {
	Listing
	Category ResourceCategory `json:"category" gorm:"type:varchar(40);not null;index"`
	Type     ResourceType     `json:"type" gorm:"type:varchar(20);not null"`
}

// ResourceInput is the body of a resource create or update request.
type ResourceInput struct {
	ListingFields
	Category *ResourceCategory `json:"category" validate:"omitempty,enum"`
	Type     *ResourceType     `json:"type" validate:"omitempty,enum"`
}

// ApplyTo copies the supplied fields onto r.
func (in ResourceInput) ApplyTo(r *Resource) {
	in.ListingFields.ApplyTo(&r.Listing)
	if in.Category != nil {
		r.Category = *in.Category
	}
	if in.Type != nil {
		r.Type = *in.Type
	}
}
