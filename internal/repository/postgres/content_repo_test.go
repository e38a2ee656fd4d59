package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"festregistration/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentRepository_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		section  string
		mock     func(mock sqlmock.Sqlmock)
		wantBody string
		wantErr  error
	}{
		{
			name:    "found",
			section: "about",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT body FROM site_content`).
					WithArgs("about").
					WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"title":"About"}`)))
			},
			wantBody: `{"title":"About"}`,
		},
		{
			name:    "missing section",
			section: "ghosts",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT body FROM site_content`).
					WithArgs("ghosts").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewContentRepository(db)
			body, err := repo.Get(ctx, tt.section)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantBody, string(body))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestContentRepository_Put(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO site_content`).
		WithArgs("about", []byte(`{"title":"New"}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContentRepository(db)
	err = repo.Put(context.Background(), "about", json.RawMessage(`{"title":"New"}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
