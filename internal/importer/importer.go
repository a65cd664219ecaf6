package importer

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
	"github.com/studio-matra/portfolio-backend/internal/logging"
	"github.com/studio-matra/portfolio-backend/internal/media"
)

// Folders under the base folder that never contribute projects.
var excludedFolders = map[string]bool{
	"logo":   true,
	"logos":  true,
	"admin":  true,
	"meta":   true,
	"config": true,
	"assets": true,
}

// Importer derives a full catalog from the media host's folder tree:
// first path segment under the base folder is the location, second is
// the project. An optional cache memoizes the result between requests.
type Importer struct {
	client *media.Client
	cache  *Cache
}

func New(client *media.Client, cache *Cache) *Importer {
	return &Importer{client: client, cache: cache}
}

// BuildCatalog returns the imported catalog, served from cache when one
// is configured and warm. An unconfigured media host yields an empty
// catalog; a listing failure propagates (import is all-or-nothing).
func (i *Importer) BuildCatalog(ctx context.Context) (catalog.Catalog, error) {
	if !i.client.Enabled() {
		return emptyCatalog(), nil
	}

	if i.cache != nil {
		if cat, ok := i.cache.Get(ctx); ok {
			return cat, nil
		}
	}

	cat, err := i.scan(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}

	if i.cache != nil {
		i.cache.Set(ctx, cat)
	}
	return cat, nil
}

// Rebuild busts the cache and scans fresh.
func (i *Importer) Rebuild(ctx context.Context) (catalog.Catalog, error) {
	if i.cache != nil {
		i.cache.Bust(ctx)
	}
	return i.BuildCatalog(ctx)
}

func (i *Importer) scan(ctx context.Context) (catalog.Catalog, error) {
	logger := logging.New(ctx)

	var resources []media.Resource
	cursor := ""
	for {
		page, err := i.client.ListResources(ctx, cursor)
		if err != nil {
			return catalog.Catalog{}, err
		}
		resources = append(resources, page.Resources...)
		cursor = page.NextCursor
		if cursor == "" {
			break
		}
	}
	logger.Infof("catalog_import", "scanned %d assets", len(resources))

	locations := map[string]*catalog.Location{}
	projects := map[string]*catalog.Project{}
	var locationOrder, projectOrder []string

	base := i.client.BaseFolder()
	for _, res := range resources {
		segments := splitPath(res.PublicID, base)
		if len(segments) < 2 || excludedFolders[strings.ToLower(segments[0])] {
			continue
		}

		locationID := catalog.Slugify(segments[0])
		loc, ok := locations[locationID]
		if !ok {
			loc = &catalog.Location{
				ID:   locationID,
				Name: catalog.TitleCase(segments[0]),
			}
			locations[locationID] = loc
			locationOrder = append(locationOrder, locationID)
		}
		// Coordinates backfill only; a later asset never overwrites a
		// location's already-known position.
		if loc.Latitude == nil {
			loc.Latitude = parseCoordinate(res.Context.Custom["latitude"])
		}
		if loc.Longitude == nil {
			loc.Longitude = parseCoordinate(res.Context.Custom["longitude"])
		}

		projectID := catalog.CompositeProjectID(locationID, catalog.Slugify(segments[1]))
		proj, ok := projects[projectID]
		if !ok {
			proj = &catalog.Project{
				ID:         projectID,
				Name:       catalog.TitleCase(segments[1]),
				LocationID: locationID,
				Images:     []catalog.ProjectImage{},
				CreatedAt:  res.CreatedAt,
			}
			projects[projectID] = proj
			projectOrder = append(projectOrder, projectID)
		}

		img := catalog.ProjectImage{
			ID:        uuid.NewString(),
			URL:       res.SecureURL,
			PublicID:  res.PublicID,
			Label:     catalog.NormalizeLabel(res.Context.Custom["label"]),
			CreatedAt: res.CreatedAt,
		}
		proj.Images = append(proj.Images, img)
		if proj.CoverImageURL == "" {
			proj.CoverImageURL = img.URL
		}
		if img.CreatedAt.After(proj.UpdatedAt) {
			proj.UpdatedAt = img.CreatedAt
		}
	}

	cat := emptyCatalog()
	for _, id := range locationOrder {
		cat.Locations = append(cat.Locations, *locations[id])
	}
	for _, id := range projectOrder {
		cat.Projects = append(cat.Projects, *projects[id])
	}
	return cat, nil
}

// splitPath strips the base folder prefix off a public ID and returns the
// remaining segments.
func splitPath(publicID, base string) []string {
	path := publicID
	if base != "" {
		path = strings.TrimPrefix(path, base+"/")
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func parseCoordinate(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

func emptyCatalog() catalog.Catalog {
	return catalog.Catalog{Locations: []catalog.Location{}, Projects: []catalog.Project{}}
}
