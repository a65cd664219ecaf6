package catalog

import "sort"

// orderRank is the sort key for IDs missing from an order list: they sort
// after every listed ID while keeping their relative input order.
const orderRank = 9999

// BuildView reconciles the static fallback catalog, the record-store
// locations/projects and the persisted order document into the ordered
// list of locations the frontend renders.
//
// Location identity is the slug ID. API data wins over fallback data field
// by field (empty API fields leave the fallback value in place). Fallback
// placeholder projects render before record-store projects for the same
// location. Project-level ordering from the order document is applied here
// too, so callers get the final render order.
func BuildView(fallback []FallbackLocation, apiLocations []Location, apiProjects []Project, order OrderDocument) []DisplayLocation {
	merged := make(map[string]*DisplayLocation, len(fallback)+len(apiLocations))

	for _, f := range fallback {
		loc := &DisplayLocation{
			ID:             f.ID,
			Name:           f.Name,
			StateOrCountry: f.StateOrCountry,
			Projects:       append([]DisplayProject(nil), f.Placeholders...),
		}
		merged[f.ID] = loc
	}

	// Base order: API locations as returned, then fallback-only ones.
	baseOrder := make([]string, 0, len(merged))
	seen := make(map[string]bool, len(merged))

	for _, l := range apiLocations {
		existing, ok := merged[l.ID]
		if !ok {
			existing = &DisplayLocation{ID: l.ID, Projects: []DisplayProject{}}
			merged[l.ID] = existing
		}
		if l.Name != "" {
			existing.Name = l.Name
		}
		if l.StateOrCountry != "" {
			existing.StateOrCountry = l.StateOrCountry
		}
		if !seen[l.ID] {
			baseOrder = append(baseOrder, l.ID)
			seen[l.ID] = true
		}
	}
	for _, f := range fallback {
		if !seen[f.ID] {
			baseOrder = append(baseOrder, f.ID)
			seen[f.ID] = true
		}
	}

	byLocation := groupProjects(apiProjects)

	if len(order.Locations) > 0 {
		rank := indexRanks(order.Locations)
		sort.SliceStable(baseOrder, func(i, j int) bool {
			return rankOf(rank, baseOrder[i]) < rankOf(rank, baseOrder[j])
		})
	}

	out := make([]DisplayLocation, 0, len(baseOrder))
	for _, id := range baseOrder {
		loc := merged[id]
		loc.Projects = append(loc.Projects, byLocation[id]...)
		if ids := order.Projects[id]; len(ids) > 0 {
			rank := indexRanks(ids)
			sort.SliceStable(loc.Projects, func(i, j int) bool {
				return rankOf(rank, loc.Projects[i].ID) < rankOf(rank, loc.Projects[j].ID)
			})
		}
		out = append(out, *loc)
	}
	return out
}

// groupProjects maps record-store projects to display entries keyed by
// location, in their source order.
func groupProjects(projects []Project) map[string][]DisplayProject {
	byLocation := make(map[string][]DisplayProject)
	for _, p := range projects {
		image := p.CoverImageURL
		if image == "" && len(p.Images) > 0 {
			image = p.Images[0].URL
		}
		byLocation[p.LocationID] = append(byLocation[p.LocationID], DisplayProject{
			ID:    p.ID,
			Image: image,
			Title: p.Name,
			Link:  "/client/" + p.ID,
		})
	}
	return byLocation
}

func indexRanks(ids []string) map[string]int {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, ok := rank[id]; !ok {
			rank[id] = i
		}
	}
	return rank
}

func rankOf(rank map[string]int, id string) int {
	if r, ok := rank[id]; ok {
		return r
	}
	return orderRank
}

// OrderLocationIDs applies the order document to a bare ID list using the
// same stable index-or-last rule as BuildView.
func OrderLocationIDs(ids []string, order OrderDocument) []string {
	out := append([]string(nil), ids...)
	if len(order.Locations) == 0 {
		return out
	}
	rank := indexRanks(order.Locations)
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(rank, out[i]) < rankOf(rank, out[j])
	})
	return out
}
