package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menugen/pkg/classify"
	"menugen/pkg/feed"
)

func sampleRows() []Row {
	engine := classify.NewEngine(classify.Rules{
		Cart: classify.CartRules{DisposableKeywords: []string{"dispos"}},
	})
	items := []feed.Item{
		{
			ID: "7", Name: "Acme - Mango Disposable", Brand: "Acme", ProductType: "flavored cartridge",
			FlowerType: "sativa",
			Prices:     []feed.Price{{Unit: "1", Cents: feed.Amount{Value: 3000, Valid: true}}},
			THC:        feed.Potency{Current: "450"},
			Tags:       []string{"30 percent off foster"},
		},
		{ID: "8", Name: "Acme - OG", Brand: "Acme", ProductType: "cartridge"},
	}
	return Build(engine, "cart", items, "foster")
}

func TestBuild(t *testing.T) {
	want := []Row{
		{
			ID: "7", Name: "Acme - Mango Disposable", Brand: "Acme", Type: "flavored cartridge",
			Lineage: "S", Unit: "1g", Price: "30.00", THC: "450", CBD: "<LOQ",
			Category: "FLAVORED DISPOSABLES", Discount: "30% off",
		},
		{
			ID: "8", Name: "Acme - OG", Brand: "Acme", Type: "cartridge",
			Price: "0.00", CBD: "<LOQ", Category: "CARTS",
		},
	}
	if diff := cmp.Diff(want, sampleRows()); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,strain,brand,product_type,lineage,unit,price,thc,cbd,category,discount", lines[0])

	var decoded []Row
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRows(), decoded)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "id,name,strain,brand,product_type,lineage,unit,price,thc,cbd,category,discount\n", buf.String())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleRows()))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "30% off", decoded[0]["discount"])
	_, ok := decoded[1]["discount"]
	assert.False(t, ok)

	assert.Error(t, Write(&buf, "xml", nil))
}
