// Package prefs persists per-client display preferences. The only value kept
// today is the selected currency code, round-tripped as a plain string.
package prefs

import (
	"context"
	"errors"
)

var ErrNotSet = errors.New("prefs: preference not set")

// Store is the durable key/value port for client preferences.
type Store interface {
	CurrencyCode(ctx context.Context, clientID string) (string, error)
	SetCurrencyCode(ctx context.Context, clientID, code string) error
}
