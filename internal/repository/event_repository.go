package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// EventUpdate carries a partial field set for updates.
type EventUpdate struct {
	Title          *string
	Date           *time.Time
	Time           *string
	Description    *string
	Location       *string
	Type           *string
	Cost           *string
	Classification *string
	GpxURL         *string
}

// EventRepository encapsulates calendar event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, id int64, update EventUpdate) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, title, date, time, description, location, type, cost, classification, gpx_url, created_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, date, time, description, location, type, cost, classification, gpx_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Date,
		event.Time,
		event.Description,
		event.Location,
		event.Type,
		event.Cost,
		event.Classification,
		event.GpxURL,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id=$1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Date,
			&event.Time,
			&event.Description,
			&event.Location,
			&event.Type,
			&event.Cost,
			&event.Classification,
			&event.GpxURL,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id int64, update EventUpdate) (*domain.Event, error) {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Title != nil {
		appendSet("title", *update.Title)
	}
	if update.Date != nil {
		appendSet("date", *update.Date)
	}
	if update.Time != nil {
		appendSet("time", *update.Time)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}
	if update.Location != nil {
		appendSet("location", *update.Location)
	}
	if update.Type != nil {
		appendSet("type", *update.Type)
	}
	if update.Cost != nil {
		appendSet("cost", *update.Cost)
	}
	if update.Classification != nil {
		appendSet("classification", *update.Classification)
	}
	if update.GpxURL != nil {
		appendSet("gpx_url", *update.GpxURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE events SET %s WHERE id=$%d RETURNING %s",
		strings.Join(sets, ", "), len(args), eventColumns)

	return scanEvent(r.pool.QueryRow(ctx, query, args...))
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Date,
		&event.Time,
		&event.Description,
		&event.Location,
		&event.Type,
		&event.Cost,
		&event.Classification,
		&event.GpxURL,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}
