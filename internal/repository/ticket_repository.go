package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Davi3103/chamados4/internal/domain"
)

// ErrDuplicateNumber signals the generated ticket number collided with an
// existing row. The caller regenerates and retries.
var ErrDuplicateNumber = errors.New("ticket number already exists")

const uniqueViolationCode = "23505"

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

// CreateWithHistory inserts the ticket row and its creation history entry in
// one transaction so no ticket is ever queryable without its audit trail.
// Uniqueness of the number is enforced by the tickets_number_key constraint;
// a collision rolls back and is reported as ErrDuplicateNumber.
func (r *ticketRepository) CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertTicket = `
        INSERT INTO tickets (number, requester_id, category_id, subject, description,
            priority, urgency, impact, terminal, location,
            occurrence_date, occurrence_time, related_url, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at`

	err = tx.QueryRow(ctx, insertTicket,
		ticket.Number,
		ticket.RequesterID,
		ticket.CategoryID,
		ticket.Subject,
		ticket.Description,
		ticket.Priority,
		ticket.Urgency,
		ticket.Impact,
		ticket.Terminal,
		ticket.Location,
		ticket.OccurrenceDate,
		ticket.OccurrenceTime,
		ticket.RelatedURL,
		ticket.Notes,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNumber
		}
		return err
	}

	entry.TicketID = ticket.ID
	const insertHistory = `
        INSERT INTO history (ticket_id, type, title, description)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	if err := tx.QueryRow(ctx, insertHistory,
		entry.TicketID,
		entry.Type,
		entry.Title,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
