package postgres

import (
	"context"
	"database/sql"
	"testing"

	"eventcheckin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCheckinRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantCreated bool
		wantErr     bool
	}{
		{
			name: "new edge inserted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO event_checkins`).
					WithArgs("ev-1", "u-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantCreated: true,
		},
		{
			name: "conflict leaves existing edge untouched",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO event_checkins`).
					WithArgs("ev-1", "u-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantCreated: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO event_checkins`).
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
			repo := NewCheckinRepository(db)
			created, err := repo.Upsert(ctx, "ev-1", "u-1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantCreated, created)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCheckinRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantDeleted bool
		wantErr     bool
	}{
		{
			name: "edge removed",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_checkins`).
					WithArgs("ev-1", "u-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantDeleted: true,
		},
		{
			name: "no edge to remove",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_checkins`).
					WithArgs("ev-1", "u-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantDeleted: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_checkins`).
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
			repo := NewCheckinRepository(db)
			deleted, err := repo.Delete(ctx, "ev-1", "u-1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantDeleted, deleted)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCheckinRepository_ListAttendeesByEventID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns attendees", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT u.id, u.name, u.email\s+FROM event_checkins c\s+JOIN users u`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
				AddRow("u-1", "alice", "alice@example.com").
				AddRow("u-2", "bob", "bob@example.com"))

		repo := NewCheckinRepository(db)
		got, err := repo.ListAttendeesByEventID(ctx, "ev-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, &domain.User{ID: "u-1", Name: "alice", Email: "alice@example.com"}, got[0])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no attendees returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT u.id, u.name, u.email`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

		repo := NewCheckinRepository(db)
		got, err := repo.ListAttendeesByEventID(ctx, "ev-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT u.id, u.name, u.email`).
			WillReturnError(sql.ErrConnDone)

		repo := NewCheckinRepository(db)
		_, err = repo.ListAttendeesByEventID(ctx, "ev-1")
		require.Error(t, err)
	})
}
