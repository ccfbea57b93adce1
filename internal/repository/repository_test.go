package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/db"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func newResource(title string, category model.ResourceCategory, typ model.ResourceType, active bool) *model.Resource {
	return &model.Resource{
		Listing:  model.Listing{Title: title, IsActive: active, LastUpdated: time.Now()},
		Category: category,
		Type:     typ,
	}
}

func titles(items []model.Resource) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestCatalogRepository_ListingOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository[model.Resource](newTestDB(t))

	seed := []*model.Resource{
		newResource("Westside Pantry", model.CategoryFreeFridgesPantries, model.TypePantry, true),
		newResource("Community Lunch", model.CategoryPublicMeals, model.TypeLunch, true),
		newResource("Alpha Fridge", model.CategoryFreeFridgesPantries, model.TypePantry, true),
		newResource("Closed Kitchen", model.CategoryPublicMeals, model.TypeDinner, false),
		newResource("Breakfast Club", model.CategoryPublicMeals, model.TypeBreakfast, true),
	}
	for _, r := range seed {
		require.NoError(t, repo.Create(ctx, r))
		assert.NotEmpty(t, r.ID)
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Fridge", "Westside Pantry", "Breakfast Club", "Community Lunch"}, titles(active))

	again, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, active, again)

	meals, err := repo.ListActiveByCategory(ctx, string(model.CategoryPublicMeals))
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast Club", "Community Lunch"}, titles(meals))

	none, err := repo.ListActiveByCategory(ctx, "NOPE")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Contains(t, titles(all), "Closed Kitchen")
}

func TestCatalogRepository_CreateInactive(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository[model.Resource](newTestDB(t))

	closed := newResource("Closed Kitchen", model.CategoryPublicMeals, model.TypeLunch, false)
	require.NoError(t, repo.Create(ctx, closed))

	stored, err := repo.FindByID(ctx, closed.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	meals, err := repo.ListActiveByCategory(ctx, string(model.CategoryPublicMeals))
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestCatalogRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository[model.VolunteerOpportunity](newTestDB(t))

	skills := "Driving license"
	v := &model.VolunteerOpportunity{
		Listing:  model.Listing{Title: "Delivery driver", IsActive: true, LastUpdated: time.Now()},
		Category: model.VolunteerTransportation,
		Type:     model.VolunteerRecurring,
		Skills:   &skills,
	}
	require.NoError(t, repo.Create(ctx, v))

	found, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Delivery driver", found.Title)
	assert.Equal(t, model.VolunteerTransportation, found.Category)
	require.NotNil(t, found.Skills)
	assert.Equal(t, skills, *found.Skills)

	found.IsActive = false
	found.Title = "Delivery driver (paused)"
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, "Delivery driver (paused)", reloaded.Title)

	require.NoError(t, repo.Delete(ctx, v.ID))
	_, err = repo.FindByID(ctx, v.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	for i := 0; i < 5; i++ {
		role := model.RoleModerator
		if i < 2 {
			role = model.RoleAdmin
		}
		require.NoError(t, repo.Create(ctx, &model.User{
			Email:    fmt.Sprintf("user%d@kitchen.org", i),
			Password: "hash",
			Role:     role,
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.User{Email: "100%_real@other.org", Password: "hash", Role: model.RoleModerator}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)

	admins, err := repo.CountByRole(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, admins)

	page, total, err := repo.List(ctx, 0, 4, "")
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, page, 4)

	page, total, err = repo.List(ctx, 4, 4, "")
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, page, 2)

	page, total, err = repo.List(ctx, 0, 10, "KITCHEN")
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 5)

	page, total, err = repo.List(ctx, 0, 10, "%_")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "LIKE wildcards in the search are literal")
	require.Len(t, page, 1)
	assert.Equal(t, "100%_real@other.org", page[0].Email)

	u, err := repo.FindByEmail(ctx, "user3@kitchen.org")
	require.NoError(t, err)

	err = repo.Create(ctx, &model.User{Email: "user3@kitchen.org", Password: "hash", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	u.Role = model.RoleAdmin
	require.NoError(t, repo.Update(ctx, u))
	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, byID.Role)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), gorm.ErrRecordNotFound)
	_, err = repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuditRepository_OutlivesSubject(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	audits := NewAuditRepository(gormDB)

	u := &model.User{Email: "gone@kitchen.org", Password: "hash", Role: model.RoleModerator}
	require.NoError(t, users.Create(ctx, u))

	actor := "actor-1"
	first := &model.UserAudit{UserID: u.ID, ActorID: &actor, Action: model.AuditCreate, Timestamp: time.Now().Add(-time.Minute)}
	require.NoError(t, audits.Create(ctx, first))
	require.NoError(t, users.Delete(ctx, u.ID))
	require.NoError(t, audits.Create(ctx, &model.UserAudit{
		UserID:  u.ID,
		ActorID: &actor,
		Action:  model.AuditDelete,
		Details: datatypes.JSONMap{"email": u.Email},
	}))

	entries, err := audits.ListByUser(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.AuditDelete, entries[0].Action)
	assert.Equal(t, "gone@kitchen.org", entries[0].Details["email"])
	assert.Equal(t, model.AuditCreate, entries[1].Action)
}
