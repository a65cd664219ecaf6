package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locs(ids ...string) []Location {
	out := make([]Location, len(ids))
	for i, id := range ids {
		out[i] = Location{ID: id, Name: TitleCase(id)}
	}
	return out
}

func viewIDs(view []DisplayLocation) []string {
	out := make([]string, len(view))
	for i, v := range view {
		out[i] = v.ID
	}
	return out
}

func TestBuildView_OrderListWins(t *testing.T) {
	order := OrderDocument{Locations: []string{"b", "a"}, Projects: map[string][]string{}}
	view := BuildView(nil, locs("a", "b", "c"), nil, order)

	assert.Equal(t, []string{"b", "a", "c"}, viewIDs(view))
}

func TestBuildView_UnlistedIDsKeepRelativeOrder(t *testing.T) {
	order := OrderDocument{Locations: []string{"d"}, Projects: map[string][]string{}}
	view := BuildView(nil, locs("a", "b", "c", "d"), nil, order)

	assert.Equal(t, []string{"d", "a", "b", "c"}, viewIDs(view))
}

func TestBuildView_EmptyOrderFallsBackToSourceOrder(t *testing.T) {
	fallback := []FallbackLocation{
		{ID: "x", Name: "X"},
		{ID: "a", Name: "A Fallback"},
	}
	view := BuildView(fallback, locs("a", "b"), nil, DefaultOrder())

	// API order first, fallback-only appended after, each exactly once.
	assert.Equal(t, []string{"a", "b", "x"}, viewIDs(view))
}

func TestBuildView_APIFieldsWinWhenNonEmpty(t *testing.T) {
	fallback := []FallbackLocation{{ID: "guntur", Name: "Guntur", StateOrCountry: "Andhra Pradesh"}}
	api := []Location{{ID: "guntur", Name: "Guntur City", StateOrCountry: ""}}

	view := BuildView(fallback, api, nil, DefaultOrder())
	require.Len(t, view, 1)
	assert.Equal(t, "Guntur City", view[0].Name)
	// Empty API field leaves the fallback value in place.
	assert.Equal(t, "Andhra Pradesh", view[0].StateOrCountry)
}

func TestBuildView_StaleOrderIDsAreIgnored(t *testing.T) {
	order := OrderDocument{Locations: []string{"deleted", "a"}, Projects: map[string][]string{}}
	view := BuildView(nil, locs("a"), nil, order)

	assert.Equal(t, []string{"a"}, viewIDs(view))
}

func TestBuildView_ProjectsFallbackFirstThenAPI(t *testing.T) {
	fallback := []FallbackLocation{{
		ID:   "guntur",
		Name: "Guntur",
		Placeholders: []DisplayProject{
			{ID: "seed", Title: "Coming Soon", Link: "/client/seed"},
		},
	}}
	projects := []Project{
		{ID: "p1", Name: "Villa", LocationID: "guntur", CoverImageURL: "https://cdn/x.jpg"},
		{ID: "p2", Name: "Office", LocationID: "guntur", Images: []ProjectImage{{URL: "https://cdn/first.jpg"}}},
	}

	view := BuildView(fallback, locs("guntur"), projects, DefaultOrder())
	require.Len(t, view, 1)
	require.Len(t, view[0].Projects, 3)

	assert.Equal(t, "seed", view[0].Projects[0].ID)
	assert.Equal(t, "p1", view[0].Projects[1].ID)
	assert.Equal(t, "https://cdn/x.jpg", view[0].Projects[1].Image)
	assert.Equal(t, "/client/p1", view[0].Projects[1].Link)
	// Cover missing: first image URL is the tile image.
	assert.Equal(t, "https://cdn/first.jpg", view[0].Projects[2].Image)
}

func TestBuildView_ProjectOrderApplied(t *testing.T) {
	projects := []Project{
		{ID: "p1", Name: "A", LocationID: "guntur"},
		{ID: "p2", Name: "B", LocationID: "guntur"},
		{ID: "p3", Name: "C", LocationID: "guntur"},
	}
	order := OrderDocument{
		Locations: []string{},
		Projects:  map[string][]string{"guntur": {"p3", "p1"}},
	}

	view := BuildView(nil, locs("guntur"), projects, order)
	require.Len(t, view, 1)

	ids := make([]string, 0, 3)
	for _, p := range view[0].Projects {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
}

func TestBuildView_LocationWithNoProjectsIsValid(t *testing.T) {
	view := BuildView(nil, locs("empty"), nil, DefaultOrder())
	require.Len(t, view, 1)
	assert.Empty(t, view[0].Projects)
}

func TestOrderLocationIDs(t *testing.T) {
	order := OrderDocument{Locations: []string{"b", "a"}}
	assert.Equal(t, []string{"b", "a", "c"}, OrderLocationIDs([]string{"a", "b", "c"}, order))
	assert.Equal(t, []string{"a", "b"}, OrderLocationIDs([]string{"a", "b"}, DefaultOrder()))
}
