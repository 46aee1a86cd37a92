package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/job-scalper/internal/models"
)

type SearchRepository struct {
	db *sql.DB
}

// ArchivedSearch is a row of the searches table.
type ArchivedSearch struct {
	ID          string
	Kind        string
	Label       string
	ResultCount int
	CreatedAt   time.Time
}

func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// SaveSearch archives one completed search and its postings in input order.
// Saving the same search id again replaces its postings.
func (r *SearchRepository) SaveSearch(ctx context.Context, searchID string, criteria models.Criteria, postings []models.JobPosting) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO searches (id, kind, query, seed_url, is_intern, level_codes, result_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
        result_count = EXCLUDED.result_count
    `, searchID, criteria.Kind.String(), criteria.Query, criteria.SeedURL, criteria.IsIntern,
		pq.Array(criteria.Levels()), len(postings))
	if err != nil {
		return fmt.Errorf("error inserting search: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_postings WHERE search_id = $1`, searchID); err != nil {
		return fmt.Errorf("error clearing search postings: %w", err)
	}

	if len(postings) > 0 {
		valueStrings := make([]string, 0, len(postings))
		valueArgs := make([]interface{}, 0, len(postings)*4)
		for i, p := range postings {
			n := i * 4
			valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
			valueArgs = append(valueArgs, searchID, i, p.Title, p.Link)
		}

		sqlStatement := fmt.Sprintf(`
            INSERT INTO search_postings (search_id, position, title, link)
            VALUES %s
        `, strings.Join(valueStrings, ","))

		if _, err := tx.ExecContext(ctx, sqlStatement, valueArgs...); err != nil {
			return fmt.Errorf("error inserting search postings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing search: %w", err)
	}
	return nil
}

// ListRecentSearches returns the newest archived searches first.
func (r *SearchRepository) ListRecentSearches(ctx context.Context, limit int) ([]ArchivedSearch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, kind, query, seed_url, result_count, created_at
        FROM searches
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying searches: %w", err)
	}
	defer rows.Close()

	var searches []ArchivedSearch
	for rows.Next() {
		var (
			s       ArchivedSearch
			query   string
			seedURL string
		)
		if err := rows.Scan(&s.ID, &s.Kind, &query, &seedURL, &s.ResultCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning search row: %w", err)
		}
		s.Label = query
		if s.Kind == models.KindSeedURL.String() {
			s.Label = seedURL
		}
		searches = append(searches, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over search rows: %w", err)
	}

	return searches, nil
}
