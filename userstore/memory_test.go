package userstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminkit/adminauth"
)

func seededMemory() *Memory {
	m := NewMemory()
	m.Add(adminauth.User{
		ID:           "u1",
		Email:        "admin@example.com",
		PasswordHash: "$2a$04$fakehash",
		Roles:        []adminauth.Role{{ID: "r1", Name: "admin"}},
		Permissions:  []adminauth.Permission{{ID: "p1", Name: "users.read"}},
	})
	return m
}

func TestMemoryFindByEmailAndID(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	byEmail, err := m.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := m.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", byID.Email)
	assert.Len(t, byID.Roles, 1)
}

func TestMemoryMissReturnsNotFound(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	_, err := m.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, adminauth.ErrUserNotFound)

	_, err = m.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, adminauth.ErrUserNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	first, err := m.FindByID(ctx, "u1")
	require.NoError(t, err)
	first.Email = "tampered@example.com"
	first.Roles[0].Name = "tampered"

	second, err := m.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", second.Email)
	assert.Equal(t, "admin", second.Roles[0].Name)
}

func TestMemoryRemove(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	m.Remove("u1")
	_, err := m.FindByID(ctx, "u1")
	assert.ErrorIs(t, err, adminauth.ErrUserNotFound)
	_, err = m.FindByEmail(ctx, "admin@example.com")
	assert.ErrorIs(t, err, adminauth.ErrUserNotFound)

	m.Remove("u1") // absent, no-op
}
