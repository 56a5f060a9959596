package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Davi3103/chamados4/internal/domain"
)

// RequesterRepository persists ticket requesters keyed by email.
type RequesterRepository interface {
	Upsert(ctx context.Context, requester *domain.Requester) error
}

type requesterRepository struct {
	pool *pgxpool.Pool
}

// NewRequesterRepository returns a Postgres-backed implementation.
func NewRequesterRepository(pool *pgxpool.Pool) RequesterRepository {
	return &requesterRepository{pool: pool}
}

// Upsert inserts a requester or, when the email already exists, overwrites the
// contact fields of the existing row. The conflict clause makes the
// find-then-write sequence a single atomic statement.
func (r *requesterRepository) Upsert(ctx context.Context, requester *domain.Requester) error {
	const query = `
        INSERT INTO requesters (name, email, phone, company, tax_id_a, tax_id_b)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (email) DO UPDATE SET
            name=EXCLUDED.name,
            phone=EXCLUDED.phone,
            company=EXCLUDED.company,
            tax_id_a=EXCLUDED.tax_id_a,
            tax_id_b=EXCLUDED.tax_id_b,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		requester.Name,
		requester.Email,
		requester.Phone,
		requester.Company,
		requester.TaxIDA,
		requester.TaxIDB,
	).Scan(&requester.ID, &requester.CreatedAt, &requester.UpdatedAt)
}
