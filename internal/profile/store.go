package profile

import (
	"context"
	"errors"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

var (
	// ErrAlreadyRegistered is returned by Register when a row for the
	// account already exists. The original row is left untouched.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrNotRegistered is returned by mutations that matched zero rows.
	ErrNotRegistered = errors.New("not registered")
)

// Store persists one preference row per chat account. A missing row is
// reported as (nil, nil) by the lookups, never as an error.
type Store interface {
	Register(ctx context.Context, pref domain.UserPreference) error
	SetTag(ctx context.Context, accountID int64, btag string) error
	SetMode(ctx context.Context, accountID int64, mode domain.Mode) error
	SetRegion(ctx context.Context, accountID int64, region domain.Region) error
	SetPlatform(ctx context.Context, accountID int64, platform domain.Platform) error
	Remove(ctx context.Context, accountID int64) error
	Lookup(ctx context.Context, accountID int64) (*domain.UserPreference, error)
	LookupByTag(ctx context.Context, btag string) (*domain.UserPreference, error)
}
