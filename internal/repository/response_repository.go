package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// ResponseRepository manages ticket thread responses.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
	Update(ctx context.Context, response *domain.Response) error
	GetByID(ctx context.Context, id string) (*domain.Response, error)
	Delete(ctx context.Context, id string) error
	// ListByTicket returns responses in insertion order.
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Response, error)
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository builds repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, response *domain.Response) error {
	const query = `
        INSERT INTO ticket_responses (ticket_id, author_id, role, response_text)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		response.TicketID,
		response.AuthorID,
		response.Role,
		response.Text,
	).Scan(&response.ID, &response.CreatedAt, &response.UpdatedAt)
}

func (r *responseRepository) Update(ctx context.Context, response *domain.Response) error {
	const query = `
        UPDATE ticket_responses SET response_text=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, response.Text, response.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	const query = `
        SELECT id, ticket_id, author_id, role, response_text, created_at, updated_at
        FROM ticket_responses WHERE id=$1`
	var response domain.Response
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&response.ID,
		&response.TicketID,
		&response.AuthorID,
		&response.Role,
		&response.Text,
		&response.CreatedAt,
		&response.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ticket_responses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *responseRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Response, error) {
	const query = `
        SELECT id, ticket_id, author_id, role, response_text, created_at, updated_at
        FROM ticket_responses WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.TicketID,
			&response.AuthorID,
			&response.Role,
			&response.Text,
			&response.CreatedAt,
			&response.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
