package inventory

import "errors"

var (
	// ErrUnknownStore is returned for store ids missing from the configuration so HTTP handlers can respond with 404.
	ErrUnknownStore = errors.New("unknown store")
	// ErrNoFeed is returned when a store has no feed for the requested product line.
	ErrNoFeed = errors.New("no feed configured")
	// ErrNoToken is returned when a store has no feed token, usually an unset MENUGEN_<STORE>_TOKEN.
	ErrNoToken = errors.New("no feed token configured")
	// ErrFetch wraps upstream feed failures so HTTP handlers can respond with 502.
	ErrFetch = errors.New("feed unavailable")
)
