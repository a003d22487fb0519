package inventory

import (
	"time"

	"menugen/pkg/config"
	"menugen/pkg/feed"
)

// Snapshot is one store's product line as downloaded at FetchedAt.
type Snapshot struct {
	Store     config.Store
	Line      string
	FeedID    string
	Items     []feed.Item
	FetchedAt time.Time
}
