package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"menugen/pkg/classify"
	"menugen/pkg/config"
	"menugen/pkg/feed"
	"menugen/pkg/inventory"
	"menugen/pkg/menu"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const cartFeed = `{"menu_feed":{"menu_groups":[{"menu_items":[
	{"id":1,"name":"Acme - Blue Dream","brand":"Acme","product_type":"cartridge","flower_type":"sativa",
	 "prices":[{"unit":"1","price_cents":3000}],"thc":{"current":"85"},"tag_list":["30 percent off foster"]},
	{"id":2,"name":"Acme - Mango","brand":"Acme","product_type":"flavored cartridge","flower_type":"hybrid",
	 "prices":[{"unit":".5","price_cents":2000}],"thc":{"current":"450"}}
]}]}}`

// newTestServer serves cartFeed for every feed id except those failing with a status.
func newTestServer(t *testing.T, status map[string]int) *httptest.Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for suffix, code := range status {
			if strings.HasSuffix(r.URL.Path, suffix) {
				http.Error(w, "upstream", code)
				return
			}
		}
		w.Write([]byte(cartFeed))
	}))
	t.Cleanup(upstream.Close)

	t.Setenv("MENUGEN_FEED_BASE_URL", upstream.URL+"/")
	t.Setenv("MENUGEN_FOSTER_TOKEN", "foster-token")
	t.Setenv("MENUGEN_SANDY_TOKEN", "")
	cfg, err := config.Default()
	require.NoError(t, err)

	engine := classify.NewEngine(cfg.Rules)
	svc := inventory.NewService(cfg, feed.NewClient(cfg.Feed.BaseURL, cfg.FeedTimeout(), nil), zap.NewNop())
	srv, err := New(svc, menu.NewComposer(engine, nil), engine, zap.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postForm(t *testing.T, ts *httptest.Server, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.PostForm(ts.URL+"/generate", form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["error"]
}

func TestForm(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	page := sb.String()
	assert.Contains(t, page, `<option value="foster">Foster</option>`)
	assert.Contains(t, page, `<option value="cart_condensed">Cart (condensed)</option>`)

	missing, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestGeneratePDF(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postForm(t, ts, url.Values{"store": {"foster"}, "menu_type": {"cart"}, "font_size": {"10"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="foster_cart_menu.pdf"`, resp.Header.Get("Content-Disposition"))

	var sb strings.Builder
	_, err := io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sb.String(), "%PDF"))
}

func TestGenerateErrors(t *testing.T) {
	ts := newTestServer(t, map[string]int{
		"ea944211-7cb0-4f3b-8298-6a95147a8f6e": http.StatusInternalServerError,
	})

	tests := []struct {
		name   string
		form   url.Values
		status int
		msg    string
	}{
		{"bad menu type", url.Values{"store": {"foster"}, "menu_type": {"edibles"}}, http.StatusBadRequest, "invalid menu type"},
		{"missing store", url.Values{"menu_type": {"cart"}}, http.StatusBadRequest, "store is required"},
		{"font too large", url.Values{"store": {"foster"}, "menu_type": {"cart"}, "font_size": {"90"}}, http.StatusBadRequest, "font_size"},
		{"font not a number", url.Values{"store": {"foster"}, "menu_type": {"cart"}, "font_size": {"big"}}, http.StatusBadRequest, "font_size"},
		{"unknown store", url.Values{"store": {"burnside"}, "menu_type": {"cart"}}, http.StatusNotFound, "unknown store"},
		{"store without token", url.Values{"store": {"sandy"}, "menu_type": {"cart"}}, http.StatusNotFound, "MENUGEN_SANDY_TOKEN"},
		{"upstream failure", url.Values{"store": {"foster"}, "menu_type": {"prepack"}}, http.StatusBadGateway, "feed"},
		{"nothing qualifies", url.Values{"store": {"foster"}, "menu_type": {"flower"}}, http.StatusNotFound, "No items found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postForm(t, ts, tt.form)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, decodeError(t, resp), tt.msg)
		})
	}

	resp, err := http.Get(ts.URL + "/generate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStores(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/stores")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stores []struct {
		ID    string   `json:"id"`
		Name  string   `json:"name"`
		Lines []string `json:"lines"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stores))
	require.Len(t, stores, 3)
	assert.Equal(t, "division", stores[0].ID)
	assert.Equal(t, config.Lines, stores[0].Lines)
}

func TestItems(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/items?store=foster&line=cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "CARTS", rows[0]["category"])
	assert.Equal(t, "30% off", rows[0]["discount"])
	assert.Equal(t, "FLAVORED CARTS", rows[1]["category"])

	csvResp, err := http.Get(ts.URL + "/api/items?store=foster&line=cart&format=csv")
	require.NoError(t, err)
	defer csvResp.Body.Close()
	assert.Equal(t, "text/csv", csvResp.Header.Get("Content-Type"))

	bad, err := http.Get(ts.URL + "/api/items?store=foster")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestVariantLabel(t *testing.T) {
	assert.Equal(t, "Flower", variantLabel(menu.Flower))
	assert.Equal(t, "Prepack (condensed)", variantLabel(menu.PrepackCondensed))
}
