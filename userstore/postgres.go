package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/adminkit/adminauth"
	"github.com/adminkit/adminauth/userstore/migrations"
)

// Postgres is the production credential store, backed by database/sql over
// the pgx stdlib driver.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle. The caller owns the handle's
// lifecycle; see [Open] for the common open-and-migrate path.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open opens a pgx-backed handle for dsn and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return NewPostgres(db), nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

// Close closes the underlying handle.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// FindByEmail returns the user with the given email, with role and
// permission associations loaded, or adminauth.ErrUserNotFound.
func (p *Postgres) FindByEmail(ctx context.Context, email string) (*adminauth.User, error) {
	return p.findUser(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = $1`, email)
}

// FindByID returns the user with the given ID, with role and permission
// associations loaded, or adminauth.ErrUserNotFound.
func (p *Postgres) FindByID(ctx context.Context, id string) (*adminauth.User, error) {
	return p.findUser(ctx,
		`SELECT id, email, password_hash FROM users WHERE id = $1`, id)
}

func (p *Postgres) findUser(ctx context.Context, query, arg string) (*adminauth.User, error) {
	user := &adminauth.User{}
	err := p.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, adminauth.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Roles, err = p.loadRoles(ctx, user.ID); err != nil {
		return nil, err
	}
	if user.Permissions, err = p.loadPermissions(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

func (p *Postgres) loadRoles(ctx context.Context, userID string) ([]adminauth.Role, error) {
	query :=
		`SELECT r.id, r.name FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.name`

	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var roles []adminauth.Role
	for rows.Next() {
		var r adminauth.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return roles, nil
}

func (p *Postgres) loadPermissions(ctx context.Context, userID string) ([]adminauth.Permission, error) {
	query :=
		`SELECT pm.id, pm.name FROM permissions pm
		 JOIN user_permissions up ON up.permission_id = pm.id
		 WHERE up.user_id = $1
		 ORDER BY pm.name`

	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var perms []adminauth.Permission
	for rows.Next() {
		var pm adminauth.Permission
		if err := rows.Scan(&pm.ID, &pm.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		perms = append(perms, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return perms, nil
}

var _ adminauth.UserStore = (*Postgres)(nil)
