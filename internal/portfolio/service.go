package portfolio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
	"github.com/studio-matra/portfolio-backend/internal/importer"
	"github.com/studio-matra/portfolio-backend/internal/logging"
	"github.com/studio-matra/portfolio-backend/internal/media"
	"github.com/studio-matra/portfolio-backend/internal/order"
	"github.com/studio-matra/portfolio-backend/internal/records"
)

// Service orchestrates the record store, the media host, the importer and
// the order store behind the HTTP surface. Every operation is one
// read-transform-write cycle over the records document; two concurrent
// writers can clobber each other (last write wins), which is a documented
// limitation of the single-document store.
type Service struct {
	records  *records.Store
	media    *media.Client
	importer *importer.Importer
	orders   *order.Store
	fallback []catalog.FallbackLocation
	now      func() time.Time
}

func NewService(rec *records.Store, mc *media.Client, imp *importer.Importer, ord *order.Store) *Service {
	return &Service{
		records:  rec,
		media:    mc,
		importer: imp,
		orders:   ord,
		fallback: catalog.FallbackCatalog(),
		now:      time.Now,
	}
}

// --- locations ---

func (s *Service) ListLocations() ([]catalog.Location, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	return doc.Locations, nil
}

func (s *Service) GetLocation(id string) (*catalog.Location, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Locations {
		if doc.Locations[i].ID == id {
			return &doc.Locations[i], nil
		}
	}
	return nil, catalog.ErrLocationNotFound
}

type CreateLocationInput struct {
	Name           string
	ID             string // optional explicit slug override
	StateOrCountry string
	Latitude       *float64
	Longitude      *float64
}

func (s *Service) CreateLocation(in CreateLocationInput) (*catalog.Location, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", catalog.ErrValidation)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = catalog.Slugify(name)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: name does not produce a valid id", catalog.ErrValidation)
	}

	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	for _, l := range doc.Locations {
		if l.ID == id {
			return nil, catalog.ErrLocationExists
		}
	}

	loc := catalog.Location{
		ID:             id,
		Name:           name,
		StateOrCountry: strings.TrimSpace(in.StateOrCountry),
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}
	doc.Locations = append(doc.Locations, loc)
	if err := s.records.Write(doc); err != nil {
		return nil, err
	}
	return &loc, nil
}

type UpdateLocationInput struct {
	Name           *string
	StateOrCountry *string
	Latitude       *float64
	Longitude      *float64
}

// UpdateLocation mutates name/stateOrCountry/coordinates. The ID is
// stable for the lifetime of the location and never changes here.
func (s *Service) UpdateLocation(id string, in UpdateLocationInput) (*catalog.Location, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Locations {
		if doc.Locations[i].ID != id {
			continue
		}
		loc := &doc.Locations[i]
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return nil, fmt.Errorf("%w: name cannot be empty", catalog.ErrValidation)
			}
			loc.Name = name
		}
		if in.StateOrCountry != nil {
			loc.StateOrCountry = strings.TrimSpace(*in.StateOrCountry)
		}
		if in.Latitude != nil {
			loc.Latitude = in.Latitude
		}
		if in.Longitude != nil {
			loc.Longitude = in.Longitude
		}
		updated := *loc
		if err := s.records.Write(doc); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, catalog.ErrLocationNotFound
}

// DeleteLocation removes the location and cascades to every project that
// references it. Media assets of the cascaded projects are destroyed
// best-effort: a failed destroy is logged, the records still go away.
func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	doc, err := s.records.Read()
	if err != nil {
		return err
	}

	found := false
	kept := doc.Locations[:0]
	for _, l := range doc.Locations {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return catalog.ErrLocationNotFound
	}
	doc.Locations = kept

	var orphanedImages []string
	keptProjects := doc.Projects[:0]
	for _, p := range doc.Projects {
		if p.LocationID != id {
			keptProjects = append(keptProjects, p)
			continue
		}
		for _, img := range p.Images {
			if img.PublicID != "" {
				orphanedImages = append(orphanedImages, img.PublicID)
			}
		}
	}
	doc.Projects = keptProjects

	if err := s.records.Write(doc); err != nil {
		return err
	}

	s.destroyBestEffort(ctx, "location_delete", orphanedImages)
	return nil
}

// --- projects ---

func (s *Service) ListProjects(locationID string) ([]catalog.Project, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	if locationID == "" {
		return doc.Projects, nil
	}
	out := make([]catalog.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		if p.LocationID == locationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetProject(id string) (*catalog.Project, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			return &doc.Projects[i], nil
		}
	}
	return nil, catalog.ErrProjectNotFound
}

type CreateProjectInput struct {
	Name         string
	LocationID   string
	ClientNumber string
}

func (s *Service) CreateProject(in CreateProjectInput) (*catalog.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", catalog.ErrValidation)
	}
	if strings.TrimSpace(in.LocationID) == "" {
		return nil, fmt.Errorf("%w: locationId is required", catalog.ErrValidation)
	}

	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	if !hasLocation(doc, in.LocationID) {
		return nil, catalog.ErrLocationMissing
	}

	now := s.now().UTC()
	proj := catalog.Project{
		ID:           uuid.NewString(),
		Name:         name,
		LocationID:   in.LocationID,
		ClientNumber: strings.TrimSpace(in.ClientNumber),
		Images:       []catalog.ProjectImage{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	doc.Projects = append(doc.Projects, proj)
	if err := s.records.Write(doc); err != nil {
		return nil, err
	}
	return &proj, nil
}

type UpdateProjectInput struct {
	Name          *string
	LocationID    *string
	ClientNumber  *string
	CoverImageURL *string
}

func (s *Service) UpdateProject(id string, in UpdateProjectInput) (*catalog.Project, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].ID != id {
			continue
		}
		proj := &doc.Projects[i]
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return nil, fmt.Errorf("%w: name cannot be empty", catalog.ErrValidation)
			}
			proj.Name = name
		}
		if in.LocationID != nil {
			if !hasLocation(doc, *in.LocationID) {
				return nil, catalog.ErrLocationMissing
			}
			proj.LocationID = *in.LocationID
		}
		if in.ClientNumber != nil {
			proj.ClientNumber = strings.TrimSpace(*in.ClientNumber)
		}
		if in.CoverImageURL != nil {
			proj.CoverImageURL = *in.CoverImageURL
		}
		proj.UpdatedAt = s.now().UTC()
		updated := *proj
		if err := s.records.Write(doc); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, catalog.ErrProjectNotFound
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	doc, err := s.records.Read()
	if err != nil {
		return err
	}

	var removed *catalog.Project
	kept := doc.Projects[:0]
	for _, p := range doc.Projects {
		p := p
		if p.ID == id {
			removed = &p
			continue
		}
		kept = append(kept, p)
	}
	if removed == nil {
		return catalog.ErrProjectNotFound
	}
	doc.Projects = kept

	if err := s.records.Write(doc); err != nil {
		return err
	}

	var publicIDs []string
	for _, img := range removed.Images {
		if img.PublicID != "" {
			publicIDs = append(publicIDs, img.PublicID)
		}
	}
	s.destroyBestEffort(ctx, "project_delete", publicIDs)
	return nil
}

func (s *Service) destroyBestEffort(ctx context.Context, operation string, publicIDs []string) {
	if len(publicIDs) == 0 || !s.media.Enabled() {
		return
	}
	if err := s.media.DestroyAll(ctx, publicIDs); err != nil {
		logging.New(ctx).Warnf(operation, "media cleanup incomplete: %v", err)
	}
}

// --- images ---

// ImageUpload is one file from the multipart boundary, with its already
// normalized label.
type ImageUpload struct {
	Reader   io.Reader
	Filename string
	Label    string
}

// AddImages uploads the batch to the media host concurrently and appends
// the resulting images to the project in batch order. The first upload
// failure fails the whole call; completed uploads are not rolled back.
func (s *Service) AddImages(ctx context.Context, projectID string, uploads []ImageUpload) ([]catalog.ProjectImage, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files provided", catalog.ErrValidation)
	}
	if !s.media.Enabled() {
		return nil, fmt.Errorf("media host not configured")
	}

	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	proj := findProject(doc, projectID)
	if proj == nil {
		return nil, catalog.ErrProjectNotFound
	}

	folder := s.media.BaseFolder() + "/" + proj.LocationID + "/" + catalog.Slugify(proj.Name)
	batch := make([]media.UploadParams, len(uploads))
	for i, u := range uploads {
		batch[i] = media.UploadParams{
			File:     u.Reader,
			Filename: u.Filename,
			Folder:   folder,
			Context:  map[string]string{"label": u.Label},
		}
	}

	results, err := s.media.UploadAll(ctx, batch)
	if err != nil {
		return nil, err
	}

	added := make([]catalog.ProjectImage, len(results))
	for i, res := range results {
		createdAt := res.CreatedAt
		if createdAt.IsZero() {
			createdAt = s.now().UTC()
		}
		added[i] = catalog.ProjectImage{
			ID:        uuid.NewString(),
			URL:       res.SecureURL,
			PublicID:  res.PublicID,
			Label:     uploads[i].Label,
			CreatedAt: createdAt,
		}
	}

	// Re-read before mutating so a slow upload batch does not resurrect
	// records changed since the first read. Still last-write-wins overall.
	doc, err = s.records.Read()
	if err != nil {
		return nil, err
	}
	proj = findProject(doc, projectID)
	if proj == nil {
		return nil, catalog.ErrProjectNotFound
	}

	proj.Images = append(proj.Images, added...)
	if proj.CoverImageURL == "" && len(proj.Images) > 0 {
		proj.CoverImageURL = proj.Images[0].URL
	}
	proj.UpdatedAt = s.now().UTC()

	if err := s.records.Write(doc); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Service) UpdateImageLabel(projectID, imageID, label string) (*catalog.ProjectImage, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	proj := findProject(doc, projectID)
	if proj == nil {
		return nil, catalog.ErrProjectNotFound
	}
	for i := range proj.Images {
		if proj.Images[i].ID != imageID {
			continue
		}
		proj.Images[i].Label = catalog.NormalizeLabel(label)
		proj.UpdatedAt = s.now().UTC()
		updated := proj.Images[i]
		if err := s.records.Write(doc); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, catalog.ErrImageNotFound
}

// DeleteImage removes the image record; when destroyRemote is set the
// media asset is destroyed too, best-effort.
func (s *Service) DeleteImage(ctx context.Context, projectID, imageID string, destroyRemote bool) error {
	doc, err := s.records.Read()
	if err != nil {
		return err
	}
	proj := findProject(doc, projectID)
	if proj == nil {
		return catalog.ErrProjectNotFound
	}

	var removed *catalog.ProjectImage
	kept := proj.Images[:0]
	for _, img := range proj.Images {
		img := img
		if img.ID == imageID {
			removed = &img
			continue
		}
		kept = append(kept, img)
	}
	if removed == nil {
		return catalog.ErrImageNotFound
	}
	proj.Images = kept
	if proj.CoverImageURL == removed.URL {
		proj.CoverImageURL = ""
		if len(proj.Images) > 0 {
			proj.CoverImageURL = proj.Images[0].URL
		}
	}
	proj.UpdatedAt = s.now().UTC()

	if err := s.records.Write(doc); err != nil {
		return err
	}

	if destroyRemote && removed.PublicID != "" {
		s.destroyBestEffort(ctx, "image_delete", []string{removed.PublicID})
	}
	return nil
}

// --- catalog / view ---

// RebuildCatalog re-imports the catalog from the media host and replaces
// the record-store document with it. Import failures leave the stored
// document untouched.
func (s *Service) RebuildCatalog(ctx context.Context) (catalog.Catalog, error) {
	cat, err := s.importer.Rebuild(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}
	doc := records.Document{Locations: cat.Locations, Projects: cat.Projects}
	if err := s.records.Write(doc); err != nil {
		return catalog.Catalog{}, err
	}
	return cat, nil
}

// View assembles the merged, ordered display catalog for the frontend.
func (s *Service) View(ctx context.Context) ([]catalog.DisplayLocation, error) {
	doc, err := s.records.Read()
	if err != nil {
		return nil, err
	}
	ord := s.orders.Get(ctx)
	return catalog.BuildView(s.fallback, doc.Locations, doc.Projects, ord), nil
}

// --- ordering ---

func (s *Service) GetOrder(ctx context.Context) catalog.OrderDocument {
	return s.orders.Get(ctx)
}

func (s *Service) SaveLocationOrder(ctx context.Context, ids []string) ([]string, error) {
	return s.orders.SaveLocationOrder(ctx, ids)
}

func (s *Service) SaveProjectOrder(ctx context.Context, locationID string, ids []string) ([]string, error) {
	return s.orders.SaveProjectOrder(ctx, locationID, ids)
}

func hasLocation(doc records.Document, id string) bool {
	for _, l := range doc.Locations {
		if l.ID == id {
			return true
		}
	}
	return false
}

func findProject(doc records.Document, id string) *catalog.Project {
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			return &doc.Projects[i]
		}
	}
	return nil
}
