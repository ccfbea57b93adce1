package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestResourceTypeIsMeal(t *testing.T) {
	for _, typ := range ResourceTypes {
		want := typ == TypeBreakfast || typ == TypeLunch || typ == TypeDinner
		assert.Equal(t, want, typ.IsMeal(), typ)
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, ResourceType("BRUNCH").IsValid())
}

func TestEnumsAreClosed(t *testing.T) {
	for _, c := range ResourceCategories {
		assert.True(t, c.IsValid(), c)
	}
	for _, c := range VolunteerCategories {
		assert.True(t, c.IsValid(), c)
	}
	for _, typ := range VolunteerTypes {
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, ResourceCategory("pantry").IsValid(), "enums are case sensitive until normalized")
	assert.True(t, ResourceCategory(NormalizeEnum(" public_meals ")).IsValid())
	assert.False(t, Role("OWNER").IsValid())
	assert.True(t, RoleModerator.CanModerate())
}

func TestResourceInputApplyTo(t *testing.T) {
	r := Resource{
		Listing:  Listing{Title: "Soup Kitchen", Notes: ptr("old"), Phone: ptr("555-0100"), IsActive: true},
		Category: CategoryPublicMeals,
		Type:     TypeLunch,
	}

	ResourceInput{ListingFields: ListingFields{Notes: ptr("x"), Phone: ptr("")}}.ApplyTo(&r)

	assert.Equal(t, "Soup Kitchen", r.Title)
	assert.Equal(t, "x", *r.Notes)
	assert.Nil(t, r.Phone, "an empty string clears an optional column")
	assert.Equal(t, CategoryPublicMeals, r.Category)
	assert.Equal(t, TypeLunch, r.Type)
	assert.True(t, r.IsActive)

	ResourceInput{ListingFields: ListingFields{IsActive: ptr(false)}, Type: ptr(TypePantry)}.ApplyTo(&r)
	assert.False(t, r.IsActive)
	assert.Equal(t, TypePantry, r.Type)
}

func TestVolunteerInputApplyTo(t *testing.T) {
	var v VolunteerOpportunity
	VolunteerInput{
		ListingFields:  ListingFields{Title: ptr("Garden day")},
		Category:       ptr(VolunteerCommunityGardens),
		Type:           ptr(VolunteerSeasonal),
		TimeCommitment: ptr("3 hours"),
	}.ApplyTo(&v)

	assert.Equal(t, "Garden day", v.Title)
	assert.Equal(t, VolunteerCommunityGardens, v.Category)
	assert.Equal(t, VolunteerSeasonal, v.Type)
	assert.Equal(t, "3 hours", *v.TimeCommitment)
	assert.Nil(t, v.Skills)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "admin@example.org", NormalizeEmail("  Admin@Example.ORG "))
}
