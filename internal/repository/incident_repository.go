package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopdesk/helpdesk-service/internal/domain"
)

// IncidentRepository persists a flattened projection of incidents on
// creation. The store is a write-only audit trail: no reconstruction path
// exists, the engine's in-memory collection remains the source of truth.
type IncidentRepository interface {
	Save(ctx context.Context, incident *domain.Ticket) error
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository returns a Postgres-backed implementation.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

func (r *incidentRepository) Save(ctx context.Context, incident *domain.Ticket) error {
	const query = `
        INSERT INTO incidents (id, description, urgency, service, requester_email)
        VALUES ($1, $2, $3, $4, $5)`

	var serviceName *string
	if incident.Service != nil {
		serviceName = &incident.Service.Name
	}
	var urgencyName *string
	if incident.Urgency != nil {
		name := incident.Urgency.Name()
		urgencyName = &name
	}

	_, err := r.pool.Exec(ctx, query,
		incident.ID,
		incident.Description,
		urgencyName,
		serviceName,
		incident.Requester.Email,
	)
	return err
}
