package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

var eventColumns = []string{"id", "title", "description", "date", "location", "image_path", "owner_id", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success without image",
			event: &domain.Event{
				Title:       "Go Meetup",
				Description: "Monthly meetup",
				Date:        date,
				Location:    "Lisbon",
				OwnerID:     "user-1",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, date, location, image_path, owner_id, created_at, updated_at\)`).
					WithArgs("Go Meetup", "Monthly meetup", date, "Lisbon", sql.NullString{}, "user-1", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "success with image",
			event: func() *domain.Event {
				img := "uploads/1-flyer.png"
				return &domain.Event{
					Title:       "Go Meetup",
					Description: "Monthly meetup",
					Date:        date,
					Location:    "Lisbon",
					ImagePath:   &img,
					OwnerID:     "user-1",
					CreatedAt:   now,
					UpdatedAt:   now,
				}
			}(),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Go Meetup", "Monthly meetup", date, "Lisbon", sql.NullString{String: "uploads/1-flyer.png", Valid: true}, "user-1", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-2"))
			},
			wantID: "ev-uuid-2",
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:       "Go Meetup",
				Description: "Monthly meetup",
				Date:        date,
				Location:    "Lisbon",
				OwnerID:     "user-1",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
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
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("success with null image", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow("ev-1", "Go Meetup", "Monthly meetup", date, "Lisbon", nil, "user-1", now, now))

		repo := NewEventRepository(db)
		got, err := repo.GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, "ev-1", got.ID)
		require.Equal(t, "user-1", got.OwnerID)
		require.Nil(t, got.ImagePath)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success with image", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at`).
			WithArgs("ev-2").
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow("ev-2", "Go Meetup", "Monthly meetup", date, "Lisbon", "uploads/1-flyer.png", "user-1", now, now))

		repo := NewEventRepository(db)
		got, err := repo.GetByID(ctx, "ev-2")
		require.NoError(t, err)
		require.NotNil(t, got.ImagePath)
		require.Equal(t, "uploads/1-flyer.png", *got.ImagePath)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at`).
			WithArgs("ev-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		got, err := repo.GetByID(ctx, "ev-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("returns all events", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at`).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow("ev-1", "Go Meetup", "Monthly meetup", date, "Lisbon", nil, "user-1", now, now).
				AddRow("ev-2", "Rust Meetup", "Also monthly", date.Add(24*time.Hour), "Porto", "uploads/2.png", "user-2", now, now))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "ev-1", got[0].ID)
		require.NotNil(t, got[1].ImagePath)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty list is a non-nil slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, image_path, owner_id, created_at, updated_at`).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WithArgs("New title", "Monthly meetup", date, "Lisbon", sql.NullString{}, now, "ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		err = repo.Update(ctx, &domain.Event{
			ID:          "ev-1",
			Title:       "New title",
			Description: "Monthly meetup",
			Date:        date,
			Location:    "Lisbon",
			UpdatedAt:   now,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows affected maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		err = repo.Update(ctx, &domain.Event{ID: "ev-missing", Date: date, UpdatedAt: now})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "ev-missing"), domain.ErrNotFound)
	})
}
