package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopdesk/helpdesk-service/internal/domain"
)

// UserRecord is the flattened identity projection stored externally. The raw
// credential is kept so the engine can reconstruct a domain user (whose
// constructor re-hashes) on a cache miss.
type UserRecord struct {
	ID       int64
	Role     string
	Name     string
	Email    string
	Password string
}

// IdentityRepository is the external identity store consumed by the engine.
// The engine's in-memory collection stays authoritative; this store backs the
// read-through lookup by email.
type IdentityRepository interface {
	Save(ctx context.Context, role domain.Role, user *domain.User, rawPassword string) error
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
}

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) Save(ctx context.Context, role domain.Role, user *domain.User, rawPassword string) error {
	const query = `
        INSERT INTO users (id, role, name, email, password)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		string(role),
		user.Name,
		user.Email,
		rawPassword,
	)
	return err
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const query = `
        SELECT id, role, name, email, password
        FROM users WHERE email=$1`

	var record UserRecord
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&record.ID,
		&record.Role,
		&record.Name,
		&record.Email,
		&record.Password,
	); err != nil {
		return nil, err
	}
	return &record, nil
}
