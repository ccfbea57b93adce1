package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/db"
	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/repository"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

func newSeeder(t *testing.T) (*Seeder, service.ResourceService) {
	t.Helper()
	gormDB, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	resources := service.NewResourceService(repository.NewCatalogRepository[model.Resource](gormDB))
	volunteers := service.NewVolunteerService(repository.NewCatalogRepository[model.VolunteerOpportunity](gormDB))
	return NewSeeder(resources, volunteers, slog.New(slog.NewTextHandler(io.Discard, nil))), resources
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Resources)
	assert.NotEmpty(t, c.Volunteers)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"resources":[{"title":"x","colour":"red"}]}`))
	assert.Error(t, err)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	s, resources := newSeeder(t)
	c, err := DefaultCatalog()
	require.NoError(t, err)
	ctx := context.Background()

	res, vol, err := s.Run(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: len(c.Resources)}, res)
	assert.Equal(t, Result{Created: len(c.Volunteers)}, vol)

	res, vol, err = s.Run(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: len(c.Resources)}, res)
	assert.Equal(t, Result{Updated: len(c.Volunteers)}, vol)

	all, err := resources.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(c.Resources))
}

func TestSeeder_InvalidEntryStops(t *testing.T) {
	s, _ := newSeeder(t)
	c, err := Parse([]byte(`{"resources":[{"title":"Lunch","category":"STUDENT_MEALS","type":"LUNCH"}]}`))
	require.NoError(t, err)

	_, _, err = s.Run(context.Background(), c)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
