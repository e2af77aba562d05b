package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

// Postgres implements Store on the overwatch_profiles table. Every
// operation is a single statement; the primary key serializes concurrent
// registrations so the loser observes ErrAlreadyRegistered.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (p *Postgres) Register(ctx context.Context, pref domain.UserPreference) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO overwatch_profiles (account_id, btag, mode, region, platform)
		VALUES ($1, $2, $3, $4, $5)`,
		pref.AccountID, pref.BTag, string(pref.Mode), string(pref.Region), string(pref.Platform))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrAlreadyRegistered
	}
	return err
}

func (p *Postgres) SetTag(ctx context.Context, accountID int64, btag string) error {
	return p.update(ctx, `UPDATE overwatch_profiles SET btag = $1 WHERE account_id = $2`, btag, accountID)
}

func (p *Postgres) SetMode(ctx context.Context, accountID int64, mode domain.Mode) error {
	return p.update(ctx, `UPDATE overwatch_profiles SET mode = $1 WHERE account_id = $2`, string(mode), accountID)
}

func (p *Postgres) SetRegion(ctx context.Context, accountID int64, region domain.Region) error {
	return p.update(ctx, `UPDATE overwatch_profiles SET region = $1 WHERE account_id = $2`, string(region), accountID)
}

func (p *Postgres) SetPlatform(ctx context.Context, accountID int64, platform domain.Platform) error {
	return p.update(ctx, `UPDATE overwatch_profiles SET platform = $1 WHERE account_id = $2`, string(platform), accountID)
}

func (p *Postgres) Remove(ctx context.Context, accountID int64) error {
	return p.update(ctx, `DELETE FROM overwatch_profiles WHERE account_id = $1`, accountID)
}

// update runs a mutation and maps "zero rows affected" to ErrNotRegistered.
func (p *Postgres) update(ctx context.Context, query string, args ...any) error {
	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotRegistered
	}
	return nil
}

func (p *Postgres) Lookup(ctx context.Context, accountID int64) (*domain.UserPreference, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT account_id, btag, mode, region, platform
		FROM overwatch_profiles WHERE account_id = $1`, accountID)
	return scanPreference(row)
}

func (p *Postgres) LookupByTag(ctx context.Context, btag string) (*domain.UserPreference, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT account_id, btag, mode, region, platform
		FROM overwatch_profiles WHERE btag = $1`, btag)
	return scanPreference(row)
}

func scanPreference(row *sql.Row) (*domain.UserPreference, error) {
	var pref domain.UserPreference
	var mode, region, platform string
	err := row.Scan(&pref.AccountID, &pref.BTag, &mode, &region, &platform)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pref.Mode = domain.Mode(mode)
	pref.Region = domain.Region(region)
	pref.Platform = domain.Platform(platform)
	return &pref, nil
}
