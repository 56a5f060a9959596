package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityLogRepository is the append-only activity sink.
type ActivityLogRepository interface {
	Append(ctx context.Context, eventType, message string, actorID int64) error
}

type activityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository constructs the repository.
func NewActivityLogRepository(pool *pgxpool.Pool) ActivityLogRepository {
	return &activityLogRepository{pool: pool}
}

func (r *activityLogRepository) Append(ctx context.Context, eventType, message string, actorID int64) error {
	const query = `
        INSERT INTO activity_log (event_type, message, actor_id)
        VALUES ($1,$2,$3)`

	_, err := r.pool.Exec(ctx, query, eventType, message, actorID)
	return err
}
