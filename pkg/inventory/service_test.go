package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"menugen/pkg/config"
	"menugen/pkg/feed"
)

const sampleFeed = `{"menu_feed":{"menu_groups":[{"menu_items":[
	{"id":1,"name":"Blue Dream","brand":"Farm","flower_type":"sativa","prices":[{"unit":"1","price_cents":1200}]},
	{"id":2,"name":"Gelato","brand":"Farm","flower_type":"indica","prices":[{"unit":"1","price_cents":1400}]}
]}]}}`

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	t.Setenv("MENUGEN_FEED_BASE_URL", baseURL)
	t.Setenv("MENUGEN_FOSTER_TOKEN", "foster-secret")
	t.Setenv("MENUGEN_SANDY_TOKEN", "sandy-secret")
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func TestSnapshot(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/feeds/")
	svc := NewService(cfg, feed.NewClient(cfg.Feed.BaseURL, cfg.FeedTimeout(), nil), zap.NewNop())

	snap, err := svc.Snapshot(context.Background(), "Foster", "flower")
	require.NoError(t, err)
	assert.Equal(t, "Bearer foster-secret", gotAuth)
	assert.Equal(t, "/feeds/04c0a074-8bbb-4948-89d3-1e8f54556d44", gotPath)
	assert.Equal(t, "foster", snap.Store.ID)
	assert.Equal(t, "flower", snap.Line)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Blue Dream", snap.Items[0].Name)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestSnapshotErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	svc := NewService(cfg, feed.NewClient(cfg.Feed.BaseURL, cfg.FeedTimeout(), nil), nil)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx, "burnside", "flower")
	assert.ErrorIs(t, err, ErrUnknownStore)

	_, err = svc.Snapshot(ctx, "foster", "edibles")
	assert.ErrorIs(t, err, ErrNoFeed)

	_, err = svc.Snapshot(ctx, "foster", "cart")
	assert.ErrorIs(t, err, ErrFetch)
}

type countingFetcher struct{ calls int }

func (c *countingFetcher) Fetch(context.Context, string, string) ([]byte, error) {
	c.calls++
	return []byte(sampleFeed), nil
}

func TestSnapshotWithoutTokenSkipsFetch(t *testing.T) {
	t.Setenv("MENUGEN_DIVISION_TOKEN", "")
	cfg := testConfig(t, "https://feeds.example.com/")
	fetcher := &countingFetcher{}
	svc := NewService(cfg, fetcher, nil)

	_, err := svc.Snapshot(context.Background(), "division", "flower")
	require.ErrorIs(t, err, ErrNoToken)
	assert.ErrorContains(t, err, "MENUGEN_DIVISION_TOKEN")
	assert.Zero(t, fetcher.calls)

	snap, err := svc.Snapshot(context.Background(), "foster", "flower")
	require.NoError(t, err)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 1, fetcher.calls)
}

type stubFetcher struct{ body string }

func (s stubFetcher) Fetch(context.Context, string, string) ([]byte, error) {
	return []byte(s.body), nil
}

func TestMalformedFeedIsEmpty(t *testing.T) {
	cfg := testConfig(t, "https://feeds.example.com/")
	svc := NewService(cfg, stubFetcher{body: "<html>maintenance</html>"}, nil)

	snap, err := svc.Snapshot(context.Background(), "sandy", "dab")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestStores(t *testing.T) {
	cfg := testConfig(t, "https://feeds.example.com/")
	svc := NewService(cfg, stubFetcher{}, nil)

	var ids []string
	for _, s := range svc.Stores() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"division", "foster", "sandy"}, ids)

	store, feedID, err := svc.Resolve("sandy", "prepack")
	require.NoError(t, err)
	assert.Equal(t, "Sandy", store.Name)
	assert.Equal(t, "dd19ec03-6f94-4a70-984d-9c2c2586b2ee", feedID)
}
