package adminauth

import "context"

// Role is a named role association on a user record.
type Role struct {
	ID   string
	Name string
}

// Permission is a named permission association on a user record.
type Permission struct {
	ID   string
	Name string
}

// User is the credential record the core reads from the [UserStore]. The core
// never writes users; creation and updates happen outside this module.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []Role
	Permissions  []Permission
}

// Profile is the public projection of a [User]: everything a client may see,
// nothing it may not. PasswordHash never leaves the core.
type Profile struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// NewProfile builds the public projection of u.
func NewProfile(u *User) *Profile {
	p := &Profile{
		ID:          u.ID,
		Email:       u.Email,
		Roles:       make([]string, 0, len(u.Roles)),
		Permissions: make([]string, 0, len(u.Permissions)),
	}
	for _, r := range u.Roles {
		p.Roles = append(p.Roles, r.Name)
	}
	for _, perm := range u.Permissions {
		p.Permissions = append(p.Permissions, perm.Name)
	}
	return p
}

// TokenPair bundles a freshly signed access token and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignInResult is returned by [Service.SignIn].
type SignInResult struct {
	User   *Profile  `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// UserStore is the narrow credential-store contract the core depends on.
// Both lookups load role and permission associations eagerly.
//
// Implementations return [ErrUserNotFound] when no user matches; any other
// error is treated as an infrastructure failure and wrapped in
// [ErrStoreUnavailable] by the Service.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
