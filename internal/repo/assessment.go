package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/job-scalper/internal/models"
)

type AssessmentRepository struct {
	db *sql.DB
}

// AssessedPosting pairs a posting with the verdict produced for it.
type AssessedPosting struct {
	Posting    models.JobPosting
	Assessment models.PostingAssessment
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) SaveAssessments(ctx context.Context, searchID string, assessed []AssessedPosting) error {
	if len(assessed) == 0 {
		return nil
	}

	// Deduplicate by link to avoid conflicting rows in one statement
	byLink := make(map[string]AssessedPosting, len(assessed))
	order := make([]string, 0, len(assessed))
	for _, a := range assessed {
		if _, ok := byLink[a.Posting.Link]; !ok {
			order = append(order, a.Posting.Link)
		}
		byLink[a.Posting.Link] = a
	}

	valueStrings := make([]string, 0, len(order))
	valueArgs := make([]interface{}, 0, len(order)*6)
	for i, link := range order {
		a := byLink[link]
		result, err := json.Marshal(a.Assessment)
		if err != nil {
			return fmt.Errorf("error marshaling assessment for %s: %w", link, err)
		}

		n := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		valueArgs = append(valueArgs, searchID, link, a.Posting.Title, a.Assessment.Recommendation, a.Assessment.ConfidenceScore, result)
	}

	sqlStatement := fmt.Sprintf(`
		INSERT INTO posting_assessments (search_id, link, title, recommendation, confidence, result)
		VALUES %s
		ON CONFLICT (search_id, link) DO UPDATE SET
		title = EXCLUDED.title,
		recommendation = EXCLUDED.recommendation,
		confidence = EXCLUDED.confidence,
		result = EXCLUDED.result,
		updated_at = CURRENT_TIMESTAMP
	`, strings.Join(valueStrings, ","))

	if _, err := r.db.ExecContext(ctx, sqlStatement, valueArgs...); err != nil {
		return fmt.Errorf("error saving assessments: %w", err)
	}

	return nil
}
