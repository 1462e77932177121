package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/pkg/dberrors"
)

// Choice error types
var (
	ErrChoiceNotFound      = errors.New("choice not found")
	ErrChoiceAlreadyExists = errors.New("choice with this text already exists for the question")
)

// choiceUniqueConstraint is the unique index on (question_id, choice_text)
const choiceUniqueConstraint = "choices_question_id_choice_text_key"

// PostgresChoiceRepository handles database operations for choices
type PostgresChoiceRepository struct {
	db *pgxpool.Pool
}

// NewChoiceRepository creates a new postgres choice repository
func NewChoiceRepository(db *pgxpool.Pool) *PostgresChoiceRepository {
	return &PostgresChoiceRepository{
		db: db,
	}
}

// Create creates a new choice for a question
func (r *PostgresChoiceRepository) Create(ctx context.Context, choice *models.Choice) error {
	query := `
		INSERT INTO choices (question_id, choice_text, votes)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, choice.QuestionID, choice.ChoiceText, choice.Votes).Scan(&choice.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, choiceUniqueConstraint) {
			return ErrChoiceAlreadyExists
		}
		return fmt.Errorf("error creating choice: %w", err)
	}

	return nil
}

// GetByID retrieves a choice by ID
func (r *PostgresChoiceRepository) GetByID(ctx context.Context, id int64) (*models.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, votes
		FROM choices
		WHERE id = $1
	`

	var choice models.Choice
	err := r.db.QueryRow(ctx, query, id).Scan(
		&choice.ID,
		&choice.QuestionID,
		&choice.ChoiceText,
		&choice.Votes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChoiceNotFound
		}
		return nil, fmt.Errorf("error retrieving choice: %w", err)
	}

	return &choice, nil
}

// ListByQuestionID retrieves all choices of a question in insertion order
func (r *PostgresChoiceRepository) ListByQuestionID(ctx context.Context, questionID int64) ([]*models.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, votes
		FROM choices
		WHERE question_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []*models.Choice
	for rows.Next() {
		var choice models.Choice
		if err := rows.Scan(
			&choice.ID,
			&choice.QuestionID,
			&choice.ChoiceText,
			&choice.Votes,
		); err != nil {
			return nil, err
		}
		choices = append(choices, &choice)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return choices, nil
}

// Vote increments the vote count of a choice. The increment happens in
// the database so concurrent votes are never lost.
func (r *PostgresChoiceRepository) Vote(ctx context.Context, questionID, choiceID int64) error {
	query := `
		UPDATE choices
		SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("error recording vote: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrChoiceNotFound
	}

	return nil
}
