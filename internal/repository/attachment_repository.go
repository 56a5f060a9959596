package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Davi3103/chamados4/internal/domain"
)

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs the repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (ticket_id, original_name, stored_name, content_type, size, path)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.OriginalName,
		attachment.StoredName,
		attachment.ContentType,
		attachment.Size,
		attachment.Path,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}
