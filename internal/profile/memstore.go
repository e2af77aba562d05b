package profile

import (
	"context"
	"sync"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

// MemStore is an in-memory Store with the same precondition semantics as
// the Postgres implementation. Used by tests.
type MemStore struct {
	mu    sync.Mutex
	prefs map[int64]domain.UserPreference
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{prefs: make(map[int64]domain.UserPreference)}
}

func (m *MemStore) Register(_ context.Context, pref domain.UserPreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prefs[pref.AccountID]; ok {
		return ErrAlreadyRegistered
	}
	m.prefs[pref.AccountID] = pref
	return nil
}

func (m *MemStore) SetTag(_ context.Context, accountID int64, btag string) error {
	return m.mutate(accountID, func(p *domain.UserPreference) { p.BTag = btag })
}

func (m *MemStore) SetMode(_ context.Context, accountID int64, mode domain.Mode) error {
	return m.mutate(accountID, func(p *domain.UserPreference) { p.Mode = mode })
}

func (m *MemStore) SetRegion(_ context.Context, accountID int64, region domain.Region) error {
	return m.mutate(accountID, func(p *domain.UserPreference) { p.Region = region })
}

func (m *MemStore) SetPlatform(_ context.Context, accountID int64, platform domain.Platform) error {
	return m.mutate(accountID, func(p *domain.UserPreference) { p.Platform = platform })
}

func (m *MemStore) mutate(accountID int64, fn func(*domain.UserPreference)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[accountID]
	if !ok {
		return ErrNotRegistered
	}
	fn(&p)
	m.prefs[accountID] = p
	return nil
}

func (m *MemStore) Remove(_ context.Context, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prefs[accountID]; !ok {
		return ErrNotRegistered
	}
	delete(m.prefs, accountID)
	return nil
}

func (m *MemStore) Lookup(_ context.Context, accountID int64) (*domain.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.prefs[accountID]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (m *MemStore) LookupByTag(_ context.Context, btag string) (*domain.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.prefs {
		if p.BTag == btag {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}
