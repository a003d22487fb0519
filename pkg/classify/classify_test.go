package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menugen/pkg/feed"
)

func testRules() Rules {
	return Rules{
		Preroll: PrerollRules{
			AlwaysInfusedBrands: []string{"Kaviar"},
			InfusedBrands:       []string{"Portland Heights"},
			HouseBrand:          "Hellavated",
			HousePackWeight:     1.5,
			PackWeight:          2.9,
			InfusedPackBrands:   []string{"Hellavated", "Portland Heights"},
		},
		Cart: CartRules{
			FlavoredExcludedBrands: []string{"Avitas"},
			DisposableKeywords:     []string{"dispos", "all in one", "all-in-one", "allinone"},
		},
		Flower: FlowerRules{
			AllowedRooms: []string{"Floor Stock", "Floor Stock : Diamond"},
			Tiers: []TierPricing{
				{Name: "Diamond", REC: "Gram - $15", MED: "Gram - $12.50"},
				{Name: "Gold", REC: "Gram - $6", MED: "Gram - $5"},
			},
		},
	}
}

func preroll(name, productType, brand, unit string) feed.Item {
	return feed.Item{
		Name:        name,
		Strain:      name,
		ProductType: productType,
		Brand:       brand,
		Prices:      []feed.Price{{Unit: feed.Text(unit), Cents: feed.Amount{Value: 1000, Valid: true}}},
	}
}

func TestPrerollCategories(t *testing.T) {
	engine := NewEngine(testRules())

	tests := []struct {
		name string
		item feed.Item
		want Category
	}{
		{name: "plain", item: preroll("Blue Dream", "preroll", "Farm", "1"), want: PlainPrerolls},
		{name: "plain blunt", item: preroll("Blue Dream Blunt", "preroll", "Farm", "1"), want: PlainBlunts},
		{name: "infused by type", item: preroll("Brand - Blueberry 2pk", "infused", "Brand", "1"), want: InfusedPrerolls},
		{name: "infused blunt", item: preroll("Kief Blunts", "Infused Preroll", "Farm", "1.5"), want: InfusedBlunts},
		{name: "infused by brand", item: preroll("GMO", "preroll", "Portland Heights", "1"), want: InfusedPrerolls},
		{name: "flavored", item: preroll("Mango", "Flavored Preroll", "Farm", "1"), want: Flavored},
		{name: "combined", item: preroll("Mango", "combined", "Farm", "1"), want: Flavored},
		{name: "pack by weight", item: preroll("Sampler", "preroll", "Farm", "3.5"), want: PrerollPacks},
		{name: "pack boundary not reached", item: preroll("Sampler", "preroll", "Farm", "2.9"), want: PlainPrerolls},
		{name: "brand override beats flavored", item: preroll("Kaviar Cone Blunt", "flavored", "kaviar", "5"), want: InfusedPrerolls},
		{name: "house flavored title", item: preroll("Flavored Cone", "preroll", "Hellavated Co", "1"), want: Flavored},
		{name: "house pack at 1.5", item: preroll("Cone", "preroll", "Hellavated", "1.5"), want: InfusedPrerollPacks},
		{name: "house blunt", item: preroll("Blunt", "preroll", "Hellavated", "1"), want: InfusedBlunts},
		{name: "house default", item: preroll("Cone", "preroll", "Hellavated", "1"), want: InfusedPrerolls},
		{name: "infused pack brand", item: preroll("Pack", "infused", "Portland Heights", "5"), want: InfusedPrerollPacks},
		{name: "missing weight", item: feed.Item{Name: "Loose"}, want: PlainPrerolls},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Preroll(tt.item))
		})
	}
}

func TestPrerollRulesAreOrderedAndNamed(t *testing.T) {
	engine := NewEngine(testRules())

	var names []string
	for _, rule := range engine.PrerollRules() {
		names = append(names, rule.Name)
	}
	assert.Equal(t, []string{
		"brand-override",
		"flavored-product-type",
		"house-brand",
		"pack-weight",
		"infused-blunt-matrix",
		"infused-pack-brand",
	}, names)
}

func TestPrerollRulesIndividually(t *testing.T) {
	rules := prerollChain(testRules().Preroll)
	byName := map[string]PrerollRule{}
	for _, r := range rules {
		byName[r.Name] = r
	}

	_, ok := byName["pack-weight"].Match(facts{weight: 2.9}, "")
	assert.False(t, ok)
	c, ok := byName["pack-weight"].Match(facts{weight: 3}, "")
	assert.True(t, ok)
	assert.Equal(t, PrerollPacks, c)

	c, ok = byName["infused-blunt-matrix"].Match(facts{}, "")
	assert.True(t, ok, "final rule must always decide")
	assert.Equal(t, PlainPrerolls, c)

	_, ok = byName["house-brand"].Match(facts{brand: "farm"}, "")
	assert.False(t, ok)
}

func TestPartitionPrerollsCoversEveryItemOnce(t *testing.T) {
	engine := NewEngine(testRules())

	var items []feed.Item
	types := []string{"preroll", "infused", "flavored", "combined", ""}
	brands := []string{"Farm", "Hellavated", "Portland Heights", "Kaviar", ""}
	units := []string{"0.5", "1", "1.5", "3", "7g", ""}
	for i, pt := range types {
		for j, brand := range brands {
			for k, unit := range units {
				name := fmt.Sprintf("item-%d-%d-%d", i, j, k)
				if k%2 == 0 {
					name += " blunt"
				}
				items = append(items, preroll(name, pt, brand, unit))
			}
		}
	}

	buckets := engine.PartitionPrerolls(items)

	require.Equal(t, len(items), buckets.Len())
	seen := map[string]Category{}
	for c, bucket := range buckets {
		assert.Contains(t, PrerollCategories(), c)
		for _, item := range bucket {
			prev, dup := seen[item.Name]
			assert.False(t, dup, "%s in both %s and %s", item.Name, prev, c)
			seen[item.Name] = c
		}
	}
	assert.Len(t, seen, len(items))
}

func TestCategoryMilligram(t *testing.T) {
	assert.False(t, PlainPrerolls.Milligram())
	assert.False(t, PlainBlunts.Milligram())
	assert.False(t, PrerollPacks.Milligram())
	assert.True(t, InfusedPrerolls.Milligram())
	assert.True(t, InfusedBlunts.Milligram())
	assert.True(t, Flavored.Milligram())
	assert.True(t, InfusedPrerollPacks.Milligram())
}

func TestCartPredicates(t *testing.T) {
	engine := NewEngine(testRules())

	flavoredDisposable := feed.Item{Name: "Brand - Lemon Disposable", ProductType: "Flavored Vape"}
	assert.Equal(t, FlavoredDisposableCart, engine.CartSection(flavoredDisposable))
	assert.Equal(t, "FLAVORED DISPOSABLES", engine.CartSection(flavoredDisposable).String())

	assert.Equal(t, DisposableCart, engine.CartSection(feed.Item{Name: "All-In-One Pen"}))
	assert.Equal(t, FlavoredCart, engine.CartSection(feed.Item{Name: "Combined Cart"}))
	assert.Equal(t, PlainCart, engine.CartSection(feed.Item{Name: "Live Resin Cart"}))

	excluded := feed.Item{Name: "Flavored Cart", ProductType: "flavored", Brand: " avitas "}
	assert.False(t, engine.IsFlavored(excluded))
	assert.True(t, engine.IsMilligram(excluded))

	assert.True(t, engine.IsMilligram(feed.Item{ProductType: "Concentrate"}))
	assert.False(t, engine.IsMilligram(feed.Item{Name: "Cart", ProductType: "vape"}))
}

func TestPrepackDesignation(t *testing.T) {
	engine := NewEngine(testRules())

	assert.Equal(t, LastOfFlower, engine.Designation(feed.Item{Name: "Shake - Last of Flower As Is"}))
	assert.Equal(t, Shake, engine.Designation(feed.Item{Name: "Premium SHAKE 7g"}))
	assert.Equal(t, Regular, engine.Designation(feed.Item{Name: "Last of Flower"}))
	assert.Equal(t, Regular, engine.Designation(feed.Item{Name: "Blue Dream 3.5g"}))
}

func TestFlowerEligibilityAndTier(t *testing.T) {
	engine := NewEngine(testRules())

	assert.True(t, engine.Eligible(feed.Item{}))
	assert.True(t, engine.Eligible(feed.Item{Rooms: []string{"Vault", "Floor Stock"}}))
	assert.False(t, engine.Eligible(feed.Item{Rooms: []string{"Vault"}}))

	tier, ok := engine.Tier(feed.Item{TierName: "  diamond "})
	assert.True(t, ok)
	assert.Equal(t, Diamond, tier)
	_, ok = engine.Tier(feed.Item{TierName: "Silver"})
	assert.False(t, ok)

	byTier := engine.FlowerByTier([]feed.Item{
		{Name: "a", TierName: "Gold"},
		{Name: "b", TierName: "Gold", Rooms: []string{"Back Room"}},
		{Name: "c", TierName: "Bronze"},
		{Name: "d", TierName: "platinum", Rooms: []string{"Floor Stock : Diamond"}},
	})
	assert.Len(t, byTier[Gold], 1)
	assert.Len(t, byTier[Platinum], 1)
	assert.Empty(t, byTier[Diamond])

	assert.Equal(t, "Gram - $15", engine.Pricing(Diamond).REC)
	assert.Equal(t, TierPricing{Name: "Platinum"}, engine.Pricing(Platinum))
}

func TestLabel(t *testing.T) {
	engine := NewEngine(testRules())

	assert.Equal(t, "Infused Prerolls", engine.Label("preroll", preroll("x", "infused", "Farm", "1")))
	assert.Equal(t, "DISPOSABLES", engine.Label("dab", feed.Item{Name: "disposable"}))
	assert.Equal(t, "Shake", engine.Label("prepack", feed.Item{Name: "shake"}))
	assert.Equal(t, "Gold", engine.Label("flower", feed.Item{TierName: "gold"}))
	assert.Equal(t, "Not On Floor", engine.Label("flower", feed.Item{Rooms: []string{"Vault"}}))
	assert.Equal(t, "No Tier", engine.Label("flower", feed.Item{}))
	assert.Equal(t, "", engine.Label("edible", feed.Item{}))
}
