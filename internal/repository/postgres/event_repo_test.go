package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventcheckin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("GopherCon", "Berlin", start),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, location, start_time\)`).
					WithArgs("GopherCon", "Berlin", start).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name:  "db error",
			event: domain.NewEvent("GopherCon", "Berlin", start),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			id:   "ev-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time`).
					WithArgs("ev-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "start_time"}).
						AddRow("ev-uuid-1", "GopherCon", "Berlin", start))
			},
			want: &domain.Event{ID: "ev-uuid-1", Name: "GopherCon", Location: "Berlin", StartTime: start},
		},
		{
			name: "not found",
			id:   "nonexistent",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time`).
					WithArgs("nonexistent").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "ev-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	early := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("returns events in query order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, location, start_time\s+FROM events\s+ORDER BY start_time ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "start_time"}).
				AddRow("ev-1", "Meetup", "Munich", early).
				AddRow("ev-2", "GopherCon", "Berlin", late))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "ev-1", got[0].ID)
		require.Equal(t, "ev-2", got[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no events returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, location, start_time`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "start_time"}))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, location, start_time`).
			WillReturnError(sql.ErrConnDone)

		repo := NewEventRepository(db)
		_, err = repo.List(ctx)
		require.Error(t, err)
	})
}
