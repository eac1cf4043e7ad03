package userstore

import (
	"context"
	"sync"

	"github.com/adminkit/adminauth"
)

// Memory is an in-memory credential store for tests and examples. It is safe
// for concurrent use and returns copies, never internal state.
type Memory struct {
	mu      sync.RWMutex
	byID    map[string]*adminauth.User
	byEmail map[string]*adminauth.User
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]*adminauth.User),
		byEmail: make(map[string]*adminauth.User),
	}
}

// Add inserts or replaces a user.
func (m *Memory) Add(user adminauth.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := cloneUser(&user)
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
}

// Remove deletes a user by ID, if present.
func (m *Memory) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
}

// FindByEmail implements adminauth.UserStore.
func (m *Memory) FindByEmail(_ context.Context, email string) (*adminauth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, adminauth.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindByID implements adminauth.UserStore.
func (m *Memory) FindByID(_ context.Context, id string) (*adminauth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, adminauth.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func cloneUser(u *adminauth.User) *adminauth.User {
	out := *u
	out.Roles = append([]adminauth.Role(nil), u.Roles...)
	out.Permissions = append([]adminauth.Permission(nil), u.Permissions...)
	return &out
}

var _ adminauth.UserStore = (*Memory)(nil)
