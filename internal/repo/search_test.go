package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/job-scalper/internal/models"
)

func TestSaveSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	postings := []models.JobPosting{
		{Title: "Software Engineer", Link: "https://x/1"},
		{Title: "Sales Rep", Link: "https://x/2"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO searches").
		WithArgs("search-1", "levels", "engineer", "", false, sqlmock.AnyArg(), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM search_postings WHERE search_id = \\$1").
		WithArgs("search-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO search_postings").
		WithArgs("search-1", 0, "Software Engineer", "https://x/1", "search-1", 1, "Sales Rep", "https://x/2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewSearchRepository(db)
	err = repo.SaveSearch(context.Background(), "search-1", models.LevelSearch("engineer", 18, 17), postings)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSearchWithoutPostings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO searches").
		WithArgs("search-2", "intern", "engineer", "", true, sqlmock.AnyArg(), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM search_postings").
		WithArgs("search-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = NewSearchRepository(db).SaveSearch(context.Background(), "search-2", models.InternSearch("engineer", true), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSearchRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO searches").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = NewSearchRepository(db).SaveSearch(context.Background(), "search-3", models.InternSearch("go", false), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error inserting search")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentSearches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Unix(1_700_000_000, 0).UTC()
	mock.ExpectQuery("FROM searches").
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "query", "seed_url", "result_count", "created_at"}).
			AddRow("a", "intern", "engineer", "", 12, createdAt).
			AddRow("b", "url", "", "https://example.com/praca", 3, createdAt.Add(-time.Hour)))

	searches, err := NewSearchRepository(db).ListRecentSearches(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, searches, 2)
	assert.Equal(t, "engineer", searches[0].Label)
	assert.Equal(t, 12, searches[0].ResultCount)
	assert.Equal(t, "https://example.com/praca", searches[1].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}
