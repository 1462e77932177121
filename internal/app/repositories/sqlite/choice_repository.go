package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/repositories"
)

// ChoiceRepository handles choice persistence on SQLite
type ChoiceRepository struct {
	db *sql.DB
}

// NewChoiceRepository creates a new sqlite choice repository
func NewChoiceRepository(db *sql.DB) *ChoiceRepository {
	return &ChoiceRepository{
		db: db,
	}
}

// Create creates a new choice for a question
func (r *ChoiceRepository) Create(ctx context.Context, choice *models.Choice) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO choices (question_id, choice_text, votes) VALUES (?, ?, ?)`,
		choice.QuestionID, choice.ChoiceText, choice.Votes)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return repositories.ErrChoiceAlreadyExists
		}
		return fmt.Errorf("error creating choice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading inserted choice id: %w", err)
	}
	choice.ID = id

	return nil
}

// GetByID retrieves a choice by ID
func (r *ChoiceRepository) GetByID(ctx context.Context, id int64) (*models.Choice, error) {
	var choice models.Choice
	err := r.db.QueryRowContext(ctx,
		`SELECT id, question_id, choice_text, votes FROM choices WHERE id = ?`, id).Scan(
		&choice.ID,
		&choice.QuestionID,
		&choice.ChoiceText,
		&choice.Votes,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrChoiceNotFound
		}
		return nil, fmt.Errorf("error retrieving choice: %w", err)
	}

	return &choice, nil
}

// ListByQuestionID retrieves all choices of a question in insertion order
func (r *ChoiceRepository) ListByQuestionID(ctx context.Context, questionID int64) ([]*models.Choice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choices
		WHERE question_id = ?
		ORDER BY id ASC`,
		questionID)
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

// Vote increments the vote count of a choice belonging to the question
func (r *ChoiceRepository) Vote(ctx context.Context, questionID, choiceID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE choices SET votes = votes + 1 WHERE id = ? AND question_id = ?`,
		choiceID, questionID)
	if err != nil {
		return fmt.Errorf("error recording vote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repositories.ErrChoiceNotFound
	}

	return nil
}
