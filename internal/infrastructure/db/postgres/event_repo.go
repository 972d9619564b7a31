package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/culturalite/backend/internal/application/event"
	"github.com/culturalite/backend/internal/domain"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// publicWhere builds the shared predicate for CountPublic/ListPublic:
// approved events plus optional case-insensitive substring filters on the
// city field and the joined category name.
func publicWhere(f event.ListFilter) (string, []any) {
	where := []string{"e.status = 'approved'"}
	args := []any{}
	argN := 1

	if f.City != "" {
		where = append(where, fmt.Sprintf("e.city ILIKE '%%' || $%d || '%%'", argN))
		args = append(args, f.City)
		argN++
	}
	if f.Category != "" {
		where = append(where, fmt.Sprintf("c.name ILIKE '%%' || $%d || '%%'", argN))
		args = append(args, f.Category)
		argN++
	}

	return "WHERE " + strings.Join(where, " AND "), args
}

func (r *EventRepo) CountPublic(ctx context.Context, f event.ListFilter) (int, error) {
	whereSQL, args := publicWhere(f)

	q := `
SELECT COUNT(*)
FROM events e
JOIN categories c ON c.id = e.category_id
` + whereSQL

	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return total, nil
}

func (r *EventRepo) ListPublic(ctx context.Context, f event.ListFilter, limit, offset int) ([]domain.Event, error) {
	whereSQL, args := publicWhere(f)
	argN := len(args) + 1

	q := `
SELECT e.id, e.title, e.description, e.city, e.event_date, e.image_url,
       e.status, e.vendor_id, c.id, c.name, c.slug
FROM events e
JOIN categories c ON c.id = e.category_id
` + whereSQL + fmt.Sprintf(`
ORDER BY e.event_date DESC, e.id ASC
LIMIT $%d OFFSET $%d`, argN, argN+1)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		var status string
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.City, &e.EventDate, &e.ImageURL,
			&status, &e.VendorID, &e.Category.ID, &e.Category.Name, &e.Category.Slug,
		); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		e.Status = domain.EventStatus(status)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}

	return out, nil
}
