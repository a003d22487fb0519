package inventory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"menugen/pkg/config"
	"menugen/pkg/feed"
)

// Fetcher downloads a raw feed document.
type Fetcher interface {
	Fetch(ctx context.Context, token, feedID string) ([]byte, error)
}

// Service resolves stores and product lines to feeds and returns normalized items.
type Service struct {
	cfg     *config.Config
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewService binds the read-only configuration to a feed fetcher.
func NewService(cfg *config.Config, fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, fetcher: fetcher, logger: logger, now: time.Now}
}

// Resolve finds the store and feed id for a product line without fetching anything.
func (s *Service) Resolve(storeID, line string) (config.Store, string, error) {
	store, ok := s.cfg.Store(storeID)
	if !ok {
		return config.Store{}, "", fmt.Errorf("%w: %q", ErrUnknownStore, storeID)
	}
	feedID := store.Feeds[line]
	if feedID == "" {
		return config.Store{}, "", fmt.Errorf("%w: %s %s", ErrNoFeed, store.ID, line)
	}
	return store, feedID, nil
}

// Snapshot downloads and normalizes a store's product line. A malformed feed yields no items, not an error.
func (s *Service) Snapshot(ctx context.Context, storeID, line string) (Snapshot, error) {
	store, feedID, err := s.Resolve(storeID, line)
	if err != nil {
		return Snapshot{}, err
	}
	if store.Token == "" {
		return Snapshot{}, fmt.Errorf("%w: set %s", ErrNoToken, config.TokenEnv(store.ID))
	}

	raw, err := s.fetcher.Fetch(ctx, store.Token, feedID)
	if err != nil {
		s.logger.Warn("feed fetch failed",
			zap.String("store", store.ID),
			zap.String("line", line),
			zap.Error(err))
		return Snapshot{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	items := feed.Normalize(raw)
	s.logger.Info("feed loaded",
		zap.String("store", store.ID),
		zap.String("line", line),
		zap.Int("items", len(items)))
	return Snapshot{Store: store, Line: line, FeedID: feedID, Items: items, FetchedAt: s.now()}, nil
}

// Stores lists configured stores in id order.
func (s *Service) Stores() []config.Store {
	ids := s.cfg.StoreIDs()
	out := make([]config.Store, 0, len(ids))
	for _, id := range ids {
		store, _ := s.cfg.Store(id)
		out = append(out, store)
	}
	return out
}
