package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog is the seed document.
type Catalog struct {
	Resources  []model.ResourceInput  `json:"resources"`
	Volunteers []model.VolunteerInput `json:"volunteers"`
}

// Result counts what one run changed per catalog kind.
type Result struct {
	Created int
	Updated int
}

// DefaultCatalog decodes the embedded seed document.
func DefaultCatalog() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a seed document. Unknown fields are rejected.
func Parse(raw []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return &c, nil
}

// Seeder upserts catalog entries by title.
type Seeder struct {
	resources  service.ResourceService
	volunteers service.VolunteerService
	logger     *slog.Logger
}

// NewSeeder creates a seeder writing through the catalog services.
func NewSeeder(resources service.ResourceService, volunteers service.VolunteerService, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{resources: resources, volunteers: volunteers, logger: logger}
}

// Run applies c. Existing entries with the same title are updated, others created,
// so repeated runs do not duplicate rows.
func (s *Seeder) Run(ctx context.Context, c *Catalog) (resources, volunteers Result, err error) {
	resources, err = upsert(ctx, s.resources, service.ResourceKind{}.Listing,
		func(in model.ResourceInput) *string { return in.Title }, c.Resources)
	if err != nil {
		return resources, volunteers, fmt.Errorf("seed resources: %w", err)
	}
	s.logger.InfoContext(ctx, "resources seeded", slog.Int("created", resources.Created), slog.Int("updated", resources.Updated))

	volunteers, err = upsert(ctx, s.volunteers, service.VolunteerKind{}.Listing,
		func(in model.VolunteerInput) *string { return in.Title }, c.Volunteers)
	if err != nil {
		return resources, volunteers, fmt.Errorf("seed volunteer opportunities: %w", err)
	}
	s.logger.InfoContext(ctx, "volunteer opportunities seeded", slog.Int("created", volunteers.Created), slog.Int("updated", volunteers.Updated))
	return resources, volunteers, nil
}

func upsert[T any, I any](
	ctx context.Context,
	svc service.CatalogService[T, I],
	listing func(*T) *model.Listing,
	title func(I) *string,
	inputs []I,
) (Result, error) {
	var res Result

	existing, err := svc.ListAdmin(ctx)
	if err != nil {
		return res, err
	}
	byTitle := make(map[string]string, len(existing))
	for i := range existing {
		l := listing(&existing[i])
		byTitle[strings.ToLower(l.Title)] = l.ID
	}

	for _, in := range inputs {
		t := title(in)
		if t == nil || strings.TrimSpace(*t) == "" {
			return res, errors.New("seed entry without title")
		}
		key := strings.ToLower(strings.TrimSpace(*t))

		if id, ok := byTitle[key]; ok {
			if _, err := svc.Update(ctx, id, in); err != nil {
				return res, fmt.Errorf("update %q: %w", *t, err)
			}
			res.Updated++
			continue
		}

		item, err := svc.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("create %q: %w", *t, err)
		}
		byTitle[key] = listing(item).ID
		res.Created++
	}
	return res, nil
}
