package importer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-matra/portfolio-backend/internal/media"
)

func listingServer(t *testing.T, pages []media.ListPage, calls *int32) *media.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		require.LessOrEqual(t, int(n), len(pages), "more pages requested than served")

		page := pages[n-1]
		if n > 1 {
			assert.Equal(t, pages[n-2].NextCursor, r.URL.Query().Get("next_cursor"))
		}
		json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(server.Close)

	return media.NewClient(media.Config{
		CloudName:  "testcloud",
		APIKey:     "key",
		APISecret:  "secret",
		BaseFolder: "base",
		BaseURL:    server.URL,
	})
}

func asset(publicID string, created time.Time, custom map[string]string) media.Resource {
	return media.Resource{
		PublicID:  publicID,
		SecureURL: "https://res.cloudinary.com/testcloud/" + publicID + ".jpg",
		CreatedAt: created,
		Context:   media.ResourceContext{Custom: custom},
	}
}

func TestBuildCatalog_DisabledHostIsEmpty(t *testing.T) {
	imp := New(media.NewClient(media.Config{}), nil)

	cat, err := imp.BuildCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Locations)
	assert.Empty(t, cat.Projects)
}

func TestBuildCatalog_GroupsByFolder(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	var calls int32
	client := listingServer(t, []media.ListPage{{
		Resources: []media.Resource{
			asset("base/Guntur/Villa One/photo1", t1, map[string]string{"latitude": "16.3", "longitude": "80.4"}),
			asset("base/Guntur/Villa One/photo2", t2, map[string]string{"label": "interior", "latitude": "99.9"}),
			asset("base/Logo/brand", t1, nil),
			asset("base/orphan", t1, nil),
		},
	}}, &calls)

	cat, err := New(client, nil).BuildCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, cat.Locations, 1)
	loc := cat.Locations[0]
	assert.Equal(t, "guntur", loc.ID)
	assert.Equal(t, "Guntur", loc.Name)
	require.NotNil(t, loc.Latitude)
	// First-seen coordinates stick; later assets never overwrite them.
	assert.Equal(t, 16.3, *loc.Latitude)
	require.NotNil(t, loc.Longitude)
	assert.Equal(t, 80.4, *loc.Longitude)

	require.Len(t, cat.Projects, 1)
	proj := cat.Projects[0]
	assert.Equal(t, "guntur__villa-one", proj.ID)
	assert.Equal(t, "Villa One", proj.Name)
	assert.Equal(t, "guntur", proj.LocationID)
	require.Len(t, proj.Images, 2)
	assert.Equal(t, "Exterior", proj.Images[0].Label)
	assert.Equal(t, "Interior", proj.Images[1].Label)
	// Cover is the first image encountered, updatedAt the newest image.
	assert.Equal(t, proj.Images[0].URL, proj.CoverImageURL)
	assert.Equal(t, t2, proj.UpdatedAt)
}

func TestBuildCatalog_FollowsPaginationCursor(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var calls int32
	client := listingServer(t, []media.ListPage{
		{
			Resources:  []media.Resource{asset("base/Guntur/Villa/a", t0, nil)},
			NextCursor: "page-2",
		},
		{
			Resources: []media.Resource{asset("base/Hyderabad/Tower/b", t0, nil)},
		},
	}, &calls)

	cat, err := New(client, nil).BuildCatalog(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.Len(t, cat.Locations, 2)
	assert.Equal(t, "guntur", cat.Locations[0].ID)
	assert.Equal(t, "hyderabad", cat.Locations[1].ID)
}

func TestBuildCatalog_ListingFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := media.NewClient(media.Config{
		CloudName: "c", APIKey: "k", APISecret: "s", BaseFolder: "base", BaseURL: server.URL,
	})

	_, err := New(client, nil).BuildCatalog(context.Background())
	require.Error(t, err)
}

func TestBuildCatalog_CacheSkipsSecondScan(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	var calls int32
	client := listingServer(t, []media.ListPage{
		{Resources: []media.Resource{asset("base/Guntur/Villa/a", time.Now().UTC(), nil)}},
	}, &calls)

	imp := New(client, cache)
	ctx := context.Background()

	first, err := imp.BuildCatalog(ctx)
	require.NoError(t, err)
	second, err := imp.BuildCatalog(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, len(first.Projects), len(second.Projects))
}

func TestRebuild_BustsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	var calls int32
	client := listingServer(t, []media.ListPage{
		{Resources: []media.Resource{asset("base/Guntur/Villa/a", time.Now().UTC(), nil)}},
		{Resources: []media.Resource{asset("base/Guntur/Villa/a", time.Now().UTC(), nil)}},
	}, &calls)

	imp := New(client, cache)
	ctx := context.Background()

	_, err := imp.BuildCatalog(ctx)
	require.NoError(t, err)
	_, err = imp.Rebuild(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"Guntur", "Villa One", "photo1"}, splitPath("base/Guntur/Villa One/photo1", "base"))
	assert.Equal(t, []string{"Guntur", "photo"}, splitPath("Guntur/photo", ""))
	assert.Equal(t, []string{"loose"}, splitPath("base/loose", "base"))
}
