package catalog

// FallbackLocation is a static seed entry: it keeps the site rendering
// before any record-store data or Cloudinary import exists. A fallback
// location carries at most one placeholder project tile.
type FallbackLocation struct {
	ID             string
	Name           string
	StateOrCountry string
	Placeholders   []DisplayProject
}

// FallbackCatalog is the hard-coded seed shown when the backend has no
// data for a location. Record-store data overlays it field by field.
func FallbackCatalog() []FallbackLocation {
	return []FallbackLocation{
		{
			ID:             "guntur",
			Name:           "Guntur",
			StateOrCountry: "Andhra Pradesh",
			Placeholders: []DisplayProject{
				{ID: "guntur-placeholder", Image: "", Title: "Coming Soon", Link: "/client/guntur-placeholder"},
			},
		},
		{
			ID:             "hyderabad",
			Name:           "Hyderabad",
			StateOrCountry: "Telangana",
		},
		{
			ID:             "vijayawada",
			Name:           "Vijayawada",
			StateOrCountry: "Andhra Pradesh",
		},
	}
}
