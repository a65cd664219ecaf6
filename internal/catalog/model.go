package catalog

import "time"

// Label values for project images. Anything that is not "interior"
// (case-insensitive) normalizes to Exterior.
const (
	LabelInterior = "Interior"
	LabelExterior = "Exterior"
)

type Location struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	StateOrCountry string   `json:"stateOrCountry"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

type ProjectImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

type Project struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	LocationID    string         `json:"locationId"`
	ClientNumber  string         `json:"clientNumber,omitempty"`
	CoverImageURL string         `json:"coverImageUrl"`
	Images        []ProjectImage `json:"images"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Catalog is the combined set of locations and projects from one source:
// the record store, the Cloudinary import, or the static fallback.
type Catalog struct {
	Locations []Location `json:"locations"`
	Projects  []Project  `json:"projects"`
}

// OrderDocument is the persisted display-ordering preference. IDs it lists
// may be stale; consumers ignore unknown IDs and append unlisted ones last.
type OrderDocument struct {
	Locations []string            `json:"locations"`
	Projects  map[string][]string `json:"projects"`
}

// DefaultOrder returns the zero ordering: nothing pinned.
func DefaultOrder() OrderDocument {
	return OrderDocument{Locations: []string{}, Projects: map[string][]string{}}
}

// DisplayProject is one project entry as the frontend renders it.
type DisplayProject struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// DisplayLocation is one ordered location with its ordered projects.
type DisplayLocation struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	StateOrCountry string           `json:"stateOrCountry"`
	Projects       []DisplayProject `json:"projects"`
}
