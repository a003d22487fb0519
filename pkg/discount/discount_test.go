package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"menugen/pkg/feed"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		percent int
		store   string
		want    bool
	}{
		{name: "exact", tags: []string{"30 percent off foster"}, percent: 30, store: "foster", want: true},
		{name: "case insensitive", tags: []string{"30 Percent OFF Foster"}, percent: 30, store: "FOSTER", want: true},
		{name: "sub-location suffix", tags: []string{"50 percent off sandy - back shelf"}, percent: 50, store: "sandy", want: true},
		{name: "other store", tags: []string{"30 percent off sandy"}, percent: 30, store: "foster", want: false},
		{name: "other percent", tags: []string{"50 percent off foster"}, percent: 30, store: "foster", want: false},
		{name: "no store", tags: []string{"30 percent off foster"}, percent: 30, store: "", want: false},
		{name: "prefix must lead", tags: []string{"not 30 percent off foster"}, percent: 30, store: "foster", want: false},
		{name: "legacy wording", tags: []string{"Last Chance Foster"}, percent: 30, store: "foster", want: false},
		{name: "no tags", percent: 30, store: "foster", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.tags, tt.percent, tt.store))
		})
	}
}

func TestLevelForIsStoreScoped(t *testing.T) {
	item := feed.Item{Tags: []string{"30 percent off sandy"}}
	assert.Equal(t, ThirtyOff, LevelFor(item, "sandy"))
	assert.Equal(t, None, LevelFor(item, "foster"))
	assert.Equal(t, None, LevelFor(item, ""))
}

func TestLevelForThirtyWins(t *testing.T) {
	item := feed.Item{Tags: []string{"50 percent off division", "30 percent off division"}}
	assert.Equal(t, ThirtyOff, LevelFor(item, "division"))

	item = feed.Item{Tags: []string{"50 percent off division"}}
	assert.Equal(t, FiftyOff, LevelFor(item, "division"))
	assert.Equal(t, "50% off", FiftyOff.String())
	assert.Equal(t, "", None.String())
}
