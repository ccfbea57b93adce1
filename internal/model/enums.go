package model

import "strings"

// Role is the privilege level of a back-office account.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// CanModerate reports whether r may manage catalog entries.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

// ResourceCategory groups food resources on the public directory.
type ResourceCategory string

const (
	CategoryPublicMeals         ResourceCategory = "PUBLIC_MEALS"
	CategoryFreeFridgesPantries ResourceCategory = "FREE_FRIDGES_PANTRIES"
	CategoryEmergencyFood       ResourceCategory = "EMERGENCY_FOOD"
	CategoryStudentMeals        ResourceCategory = "STUDENT_MEALS"
	CategoryChurchPantries      ResourceCategory = "CHURCH_PANTRIES"
	CategoryFoodDelivery        ResourceCategory = "FOOD_DELIVERY"
	CategoryLocalEfforts        ResourceCategory = "LOCAL_EFFORTS"
	CategoryAdditionalResources ResourceCategory = "ADDITIONAL_RESOURCES"
)

// ResourceCategories lists every ResourceCategory in display order.
var ResourceCategories = []ResourceCategory{
	CategoryPublicMeals,
	CategoryFreeFridgesPantries,
	CategoryEmergencyFood,
	CategoryStudentMeals,
	CategoryChurchPantries,
	CategoryFoodDelivery,
	CategoryLocalEfforts,
	CategoryAdditionalResources,
}

// IsValid reports whether c is a known resource category.
func (c ResourceCategory) IsValid() bool {
	switch c {
	case CategoryPublicMeals, CategoryFreeFridgesPantries, CategoryEmergencyFood, CategoryStudentMeals,
		CategoryChurchPantries, CategoryFoodDelivery, CategoryLocalEfforts, CategoryAdditionalResources:
		return true
	}
	return false
}

// ResourceType describes what a food resource offers.
type ResourceType string

const (
	TypeBreakfast ResourceType = "BREAKFAST"
	TypeLunch     ResourceType = "LUNCH"
	TypeDinner    ResourceType = "DINNER"
	TypePantry    ResourceType = "PANTRY"
	TypeDelivery  ResourceType = "DELIVERY"
	TypeMarket    ResourceType = "MARKET"
	TypeProgram   ResourceType = "PROGRAM"
	TypeOther     ResourceType = "OTHER"
)

// ResourceTypes lists every ResourceType.
var ResourceTypes = []ResourceType{
	TypeBreakfast, TypeLunch, TypeDinner, TypePantry, TypeDelivery, TypeMarket, TypeProgram, TypeOther,
}

// IsValid reports whether t is a known resource type.
func (t ResourceType) IsValid() bool {
	switch t {
	case TypeBreakfast, TypeLunch, TypeDinner, TypePantry, TypeDelivery, TypeMarket, TypeProgram, TypeOther:
		return true
	}
	return false
}

// IsMeal reports whether t is a served meal. Meals only belong in PUBLIC_MEALS.
func (t ResourceType) IsMeal() bool {
	switch t {
	case TypeBreakfast, TypeLunch, TypeDinner:
		return true
	}
	return false
}

// VolunteerCategory groups volunteer opportunities.
type VolunteerCategory string

const (
	VolunteerFoodPreparation   VolunteerCategory = "FOOD_PREPARATION"
	VolunteerFoodDistribution  VolunteerCategory = "FOOD_DISTRIBUTION"
	VolunteerCommunityGardens  VolunteerCategory = "COMMUNITY_GARDENS"
	VolunteerAdministrative    VolunteerCategory = "ADMINISTRATIVE"
	VolunteerFundraising       VolunteerCategory = "FUNDRAISING"
	VolunteerOutreach          VolunteerCategory = "OUTREACH"
	VolunteerEducation         VolunteerCategory = "EDUCATION"
	VolunteerTransportation    VolunteerCategory = "TRANSPORTATION"
	VolunteerEventCoordination VolunteerCategory = "EVENT_COORDINATION"
	VolunteerOtherCategory     VolunteerCategory = "OTHER"
)

// VolunteerCategories lists every VolunteerCategory in display order.
var VolunteerCategories = []VolunteerCategory{
	VolunteerFoodPreparation, VolunteerFoodDistribution, VolunteerCommunityGardens, VolunteerAdministrative,
	VolunteerFundraising, VolunteerOutreach, VolunteerEducation, VolunteerTransportation,
	VolunteerEventCoordination, VolunteerOtherCategory,
}

// IsValid reports whether c is a known volunteer category.
func (c VolunteerCategory) IsValid() bool {
	switch c {
	case VolunteerFoodPreparation, VolunteerFoodDistribution, VolunteerCommunityGardens, VolunteerAdministrative,
		VolunteerFundraising, VolunteerOutreach, VolunteerEducation, VolunteerTransportation,
		VolunteerEventCoordination, VolunteerOtherCategory:
		return true
	}
	return false
}

// VolunteerType describes the shape of a volunteer commitment.
type VolunteerType string

const (
	VolunteerOneTime          VolunteerType = "ONE_TIME"
	VolunteerRecurring        VolunteerType = "RECURRING"
	VolunteerSeasonal         VolunteerType = "SEASONAL"
	VolunteerFlexible         VolunteerType = "FLEXIBLE"
	VolunteerRemote           VolunteerType = "REMOTE"
	VolunteerOnSite           VolunteerType = "ON_SITE"
	VolunteerLeadership       VolunteerType = "LEADERSHIP"
	VolunteerTrainingProvided VolunteerType = "TRAINING_PROVIDED"
)

// VolunteerTypes lists every VolunteerType.
var VolunteerTypes = []VolunteerType{
	VolunteerOneTime, VolunteerRecurring, VolunteerSeasonal, VolunteerFlexible,
	VolunteerRemote, VolunteerOnSite, VolunteerLeadership, VolunteerTrainingProvided,
}

// IsValid reports whether t is a known volunteer type.
func (t VolunteerType) IsValid() bool {
	switch t {
	case VolunteerOneTime, VolunteerRecurring, VolunteerSeasonal, VolunteerFlexible,
		VolunteerRemote, VolunteerOnSite, VolunteerLeadership, VolunteerTrainingProvided:
		return true
	}
	return false
}

// NormalizeEnum upper-cases and trims a raw enum value taken from a URL or form.
func NormalizeEnum(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
