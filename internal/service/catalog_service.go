package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/repository"
)

// CatalogKind supplies everything that differs between catalog entity kinds.
// T is the stored entity, I its write request body.
type CatalogKind[T any, I any] interface {
	// Label names the entity in error messages, e.g. "Resource".
	Label() string
	// New builds a fresh entity from a create request, defaults applied.
	New(in I) *T
	// Apply copies supplied fields of an update request onto item.
	Apply(item *T, in I)
	// Validate checks the effective state of item before it is written.
	Validate(item *T) error
	// Listing exposes the shared columns of item.
	Listing(item *T) *model.Listing
	// ValidCategory reports whether a normalized category exists for this kind.
	ValidCategory(category string) bool
	// Enums lists the closed category and type sets.
	Enums() CatalogEnums
}

// CatalogEnums is the closed vocabulary of one catalog kind.
type CatalogEnums struct {
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
}

// CatalogService exposes public and admin operations over one catalog kind.
type CatalogService[T any, I any] interface {
	ListPublic(ctx context.Context) ([]T, error)
	ListByCategoryPublic(ctx context.Context, category string) ([]T, error)
	ListAdmin(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in I) (*T, error)
	Update(ctx context.Context, id string, in I) (*T, error)
	Delete(ctx context.Context, id string) error
	Enums() CatalogEnums
}

// ResourceService manages food resources.
type ResourceService = CatalogService[model.Resource, model.ResourceInput]

// VolunteerService manages volunteer opportunities.
type VolunteerService = CatalogService[model.VolunteerOpportunity, model.VolunteerInput]

type catalogService[T any, I any] struct {
	repo repository.CatalogRepository[T]
	kind CatalogKind[T, I]
	now  func() time.Time
}

// NewCatalogService builds a catalog service for the given kind.
func NewCatalogService[T any, I any](repo repository.CatalogRepository[T], kind CatalogKind[T, I]) CatalogService[T, I] {
	return &catalogService[T, I]{repo: repo, kind: kind, now: time.Now}
}

// NewResourceService builds the resource catalog service.
func NewResourceService(repo repository.CatalogRepository[model.Resource]) ResourceService {
	return NewCatalogService[model.Resource, model.ResourceInput](repo, ResourceKind{})
}

// NewVolunteerService builds the volunteer opportunity catalog service.
func NewVolunteerService(repo repository.CatalogRepository[model.VolunteerOpportunity]) VolunteerService {
	return NewCatalogService[model.VolunteerOpportunity, model.VolunteerInput](repo, VolunteerKind{})
}

func (s *catalogService[T, I]) ListPublic(ctx context.Context) ([]T, error) {
	return s.repo.ListActive(ctx)
}

// ListByCategoryPublic upper-cases category. Unknown categories yield an empty list.
func (s *catalogService[T, I]) ListByCategoryPublic(ctx context.Context, category string) ([]T, error) {
	category = model.NormalizeEnum(category)
	if !s.kind.ValidCategory(category) {
		return []T{}, nil
	}
	return s.repo.ListActiveByCategory(ctx, category)
}

func (s *catalogService[T, I]) ListAdmin(ctx context.Context) ([]T, error) {
	return s.repo.ListAll(ctx)
}

func (s *catalogService[T, I]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	return item, nil
}

func (s *catalogService[T, I]) Create(ctx context.Context, in I) (*T, error) {
	item := s.kind.New(in)
	listing := s.kind.Listing(item)
	listing.Title = strings.TrimSpace(listing.Title)
	if err := s.kind.Validate(item); err != nil {
		return nil, err
	}

	listing.Touch(s.now().UTC())
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s: %w", strings.ToLower(s.kind.Label()), err)
	}
	return item, nil
}

// Update applies the supplied fields and re-validates the resulting entity, so
// cross-field rules see stored values for anything the request omitted.
func (s *catalogService[T, I]) Update(ctx context.Context, id string, in I) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}

	s.kind.Apply(item, in)
	listing := s.kind.Listing(item)
	listing.Title = strings.TrimSpace(listing.Title)
	if err := s.kind.Validate(item); err != nil {
		return nil, err
	}

	listing.Touch(s.now().UTC())
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update %s: %w", strings.ToLower(s.kind.Label()), err)
	}
	return item, nil
}

func (s *catalogService[T, I]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeError(err)
	}
	return nil
}

func (s *catalogService[T, I]) Enums() CatalogEnums {
	return s.kind.Enums()
}

func (s *catalogService[T, I]) storeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(s.kind.Label())
	}
	return err
}

// validateListing checks the rules shared by every kind.
func validateListing(l *model.Listing, verr *apperrors.ValidationError) {
	if l.Title == "" {
		verr.Add("title", "title is required")
	}
}

// ResourceKind carries the resource-specific rules, including the meal rule:
// BREAKFAST, LUNCH and DINNER resources must be filed under PUBLIC_MEALS.
type ResourceKind struct{}

func (ResourceKind) Label() string { return "Resource" }

func (ResourceKind) New(in model.ResourceInput) *model.Resource {
	r := &model.Resource{Listing: model.Listing{IsActive: true}}
	in.ApplyTo(r)
	return r
}

func (ResourceKind) Apply(r *model.Resource, in model.ResourceInput) { in.ApplyTo(r) }

func (ResourceKind) Listing(r *model.Resource) *model.Listing { return &r.Listing }

func (ResourceKind) ValidCategory(category string) bool {
	return model.ResourceCategory(category).IsValid()
}

func (ResourceKind) Validate(r *model.Resource) error {
	verr := apperrors.NewValidationError()
	validateListing(&r.Listing, verr)

	switch {
	case r.Category == "":
		verr.Add("category", "category is required")
	case !r.Category.IsValid():
		verr.Add("category", fmt.Sprintf("category has an unknown value %s", r.Category))
	}
	switch {
	case r.Type == "":
		verr.Add("type", "type is required")
	case !r.Type.IsValid():
		verr.Add("type", fmt.Sprintf("type has an unknown value %s", r.Type))
	}

	if r.Type.IsMeal() && r.Category != model.CategoryPublicMeals {
		verr.Add("category", fmt.Sprintf("%s resources must use category %s", r.Type, model.CategoryPublicMeals))
	}
	return verr.OrNil()
}

func (ResourceKind) Enums() CatalogEnums {
	out := CatalogEnums{}
	for _, c := range model.ResourceCategories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, t := range model.ResourceTypes {
		out.Types = append(out.Types, string(t))
	}
	return out
}

// VolunteerKind carries the volunteer opportunity rules. There is no cross-field constraint.
type VolunteerKind struct{}

func (VolunteerKind) Label() string { return "Volunteer opportunity" }

func (VolunteerKind) New(in model.VolunteerInput) *model.VolunteerOpportunity {
	v := &model.VolunteerOpportunity{Listing: model.Listing{IsActive: true}}
	in.ApplyTo(v)
	return v
}

func (VolunteerKind) Apply(v *model.VolunteerOpportunity, in model.VolunteerInput) { in.ApplyTo(v) }

func (VolunteerKind) Listing(v *model.VolunteerOpportunity) *model.Listing { return &v.Listing }

func (VolunteerKind) ValidCategory(category string) bool {
	return model.VolunteerCategory(category).IsValid()
}

func (VolunteerKind) Validate(v *model.VolunteerOpportunity) error {
	verr := apperrors.NewValidationError()
	validateListing(&v.Listing, verr)

	switch {
	case v.Category == "":
		verr.Add("category", "category is required")
	case !v.Category.IsValid():
		verr.Add("category", fmt.Sprintf("category has an unknown value %s", v.Category))
	}
	switch {
	case v.Type == "":
		verr.Add("type", "type is required")
	case !v.Type.IsValid():
		verr.Add("type", fmt.Sprintf("type has an unknown value %s", v.Type))
	}
	return verr.OrNil()
}

func (VolunteerKind) Enums() CatalogEnums {
	out := CatalogEnums{}
	for _, c := range model.VolunteerCategories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, t := range model.VolunteerTypes {
		out.Types = append(out.Types, string(t))
	}
	return out
}
