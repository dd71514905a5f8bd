package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/participants-admin/models"
	"github.com/lib/pq"
)

var ErrSeedTableMissing = errors.New("participants_seed table does not exist")

// postgresSeed читает таблицу participants_seed один раз; изменения
// участников обратно в базу не пишутся.
type postgresSeed struct {
	db *sql.DB
}

func NewPostgresSeed(db *sql.DB) SeedSource {
	return &postgresSeed{db: db}
}

func (s *postgresSeed) Load(ctx context.Context) ([]models.Participant, error) {
	query := `
		SELECT id, name, email, full_name,
			email_on_review, email_on_submission, email_on_review_of_review,
			parent_id, parent_name, institution_id, institution_name,
			role_id, role_name, take_quiz
		FROM participants_seed
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
			return nil, ErrSeedTableMissing
		}
		return nil, fmt.Errorf("failed to query participant seed: %w", err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		var roleName sql.NullString
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.FullName,
			&p.EmailOnReview,
			&p.EmailOnSubmission,
			&p.EmailOnReviewOfReview,
			&p.Parent.ID,
			&p.Parent.Name,
			&p.Institution.ID,
			&p.Institution.Name,
			&p.Role.ID,
			&roleName,
			&p.TakeQuiz,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant seed row: %w", err)
		}
		p.Role.Name = models.Role(roleName.String)
		if err := checkRole(&p); err != nil {
			return nil, fmt.Errorf("participant %d: %w", p.ID, err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participant seed rows: %w", err)
	}
	return participants, nil
}
