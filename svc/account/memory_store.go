package account

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/campusnet/accounts/svc/auth"
)

// MemoryStore is an in-process Store for tests and local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*Account)}
}

func (m *MemoryStore) Create(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.accounts {
		if existing.Email == a.Email {
			return ErrEmailTaken
		}
		if existing.InstitutionalID == a.InstitutionalID {
			return ErrInstitutionalIDTaken
		}
	}
	a.ID = bson.NewObjectID()
	m.accounts[a.ID.Hex()] = a.clone()
	return nil
}

func (m *MemoryStore) ByID(_ context.Context, id string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.clone(), nil
}

func (m *MemoryStore) ByEmail(_ context.Context, email string) (*Account, error) {
	return m.find(func(a *Account) bool { return a.Email == email })
}

func (m *MemoryStore) ByInstitutionalID(_ context.Context, institutionalID string) (*Account, error) {
	return m.find(func(a *Account) bool { return a.InstitutionalID == institutionalID })
}

func (m *MemoryStore) find(match func(*Account) bool) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if match(a) {
			return a.clone(), nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *MemoryStore) List(_ context.Context, f ListFilter) ([]*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Account
	for _, a := range m.accounts {
		if f.Role != 0 && !a.Roles.Has(f.Role) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a.clone())
	}
	slices.SortFunc(out, func(a, b *Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return a.ID.Timestamp().Compare(b.ID.Timestamp())
	})

	if f.Offset >= len(out) {
		return []*Account{}, nil
	}
	out = out[max(f.Offset, 0):]
	return out[:min(len(out), f.limit())], nil
}

func (m *MemoryStore) mutate(id string, fn func(*Account) error) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if err := fn(a); err != nil {
		return nil, err
	}
	return a.clone(), nil
}

func (m *MemoryStore) UpdateProfile(_ context.Context, id string, p Profile, passwordHash string, at time.Time) (*Account, error) {
	return m.mutate(id, func(a *Account) error {
		a.Profile = p
		if passwordHash != "" {
			a.PasswordHash = passwordHash
		}
		a.UpdatedAt = at
		return nil
	})
}

func (m *MemoryStore) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	_, err := m.mutate(id, func(a *Account) error {
		a.PasswordHash = hash
		a.UpdatedAt = at
		return nil
	})
	return err
}

func (m *MemoryStore) UpdateRoles(_ context.Context, id string, roles auth.RoleSet, at time.Time) (*Account, error) {
	return m.mutate(id, func(a *Account) error {
		a.Roles = append(auth.RoleSet(nil), roles...)
		a.UpdatedAt = at
		return nil
	})
}

func (m *MemoryStore) Transition(_ context.Context, id string, from, to Status, at time.Time) (*Account, error) {
	return m.mutate(id, func(a *Account) error {
		if a.Status != from {
			return ErrStatusConflict
		}
		a.Status = to
		a.UpdatedAt = at
		if from == StatusPending && to == StatusActive && a.ActivatedAt == nil {
			t := at
			a.ActivatedAt = &t
		}
		return nil
	})
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}
