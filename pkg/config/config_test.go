package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"division", "foster", "sandy"}, cfg.StoreIDs())
	assert.Equal(t, 20*time.Second, cfg.FeedTimeout())
	assert.Equal(t, "127.0.0.1:54123", cfg.Server.Addr)

	foster, ok := cfg.Store(" Foster ")
	require.True(t, ok)
	assert.Equal(t, "foster", foster.ID)
	assert.Equal(t, "foster", foster.DiscountKey)
	assert.Equal(t, "ea944211-7cb0-4f3b-8298-6a95147a8f6e", foster.Feeds["prepack"])
	for _, line := range Lines {
		assert.NotEmpty(t, foster.Feeds[line], line)
	}

	assert.Len(t, cfg.Rules.Flower.Tiers, 3)
	assert.Equal(t, "Hellavated", cfg.Rules.Preroll.HouseBrand)
	assert.Contains(t, cfg.Rules.Flower.AllowedRooms, "Floor Stock : Diamond")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MENUGEN_SANDY_TOKEN", "sandy-token")
	t.Setenv("MENUGEN_FEED_BASE_URL", "http://127.0.0.1:9999/feeds/")
	t.Setenv("MENUGEN_FEED_TIMEOUT", "3s")
	t.Setenv("MENUGEN_ADDR", ":8080")

	cfg, err := Default()
	require.NoError(t, err)

	sandy, ok := cfg.Store("sandy")
	require.True(t, ok)
	assert.Equal(t, "sandy-token", sandy.Token)
	assert.Equal(t, "http://127.0.0.1:9999/feeds/", cfg.Feed.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.FeedTimeout())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "MENUGEN_DIVISION_TOKEN", TokenEnv("division"))
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menugen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stores:
  hawthorne:
    name: Hawthorne
    discount_key: hawthorne blvd
    feeds:
      flower: 11111111-2222-3333-4444-555555555555
rules:
  cart:
    flavored_excluded_brands: []
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"division", "foster", "hawthorne", "sandy"}, cfg.StoreIDs())
	h, ok := cfg.Store("hawthorne")
	require.True(t, ok)
	assert.Equal(t, "hawthorne blvd", h.DiscountKey)
	assert.Empty(t, cfg.Rules.Cart.FlavoredExcludedBrands)
	assert.NotEmpty(t, cfg.Rules.Cart.DisposableKeywords)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stores: [not, a, map"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	cfg.Feed.BaseURL = "not a url"
	cfg.Feed.Timeout = "soon"
	cfg.Stores["foster"].Feeds["edibles"] = ""
	cfg.Rules.Flower.Tiers[0].Name = "Silver"

	err = cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"base_url", "timeout", "edibles", "empty feed id", "Silver"} {
		assert.ErrorContains(t, err, want)
	}

	empty := &Config{Feed: FeedConfig{BaseURL: "https://example.com/"}}
	assert.ErrorContains(t, empty.Validate(), "no stores")
}
