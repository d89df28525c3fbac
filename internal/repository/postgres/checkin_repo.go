package postgres

import (
	"context"
	"database/sql"

	"eventcheckin/internal/domain"
)

type checkinRepository struct {
	DB *sql.DB
}

func NewCheckinRepository(db *sql.DB) domain.CheckinRepository {
	return &checkinRepository{
		DB: db,
	}
}

// Upsert relies on the composite primary key: when two joins race, exactly
// one INSERT takes effect and the loser sees zero rows affected.
func (r *checkinRepository) Upsert(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		INSERT INTO event_checkins (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *checkinRepository) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	query := `DELETE FROM event_checkins WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *checkinRepository) ListAttendeesByEventID(ctx context.Context, eventID string) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM event_checkins c
		JOIN users u ON u.id = c.user_id
		WHERE c.event_id = $1
		ORDER BY u.name, u.id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		attendees = append(attendees, u)
	}
	return attendees, rows.Err()
}
