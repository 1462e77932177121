package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alpersoy/polls/internal/app/models"
)

// Question error types
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// PostgresQuestionRepository handles database operations for questions
type PostgresQuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new postgres question repository
func NewQuestionRepository(db *pgxpool.Pool) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{
		db: db,
	}
}

// Create creates a new question
func (r *PostgresQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO questions (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, question.QuestionText, question.PubDate).Scan(&question.ID)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	return nil
}

// GetByID retrieves a question by ID regardless of publication state
func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE id = $1
	`

	var question models.Question
	err := r.db.QueryRow(ctx, query, id).Scan(
		&question.ID,
		&question.QuestionText,
		&question.PubDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	return &question, nil
}

// GetPublishedByID retrieves a question by ID, treating questions with a
// pub_date after now as nonexistent.
func (r *PostgresQuestionRepository) GetPublishedByID(ctx context.Context, id int64, now time.Time) (*models.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE id = $1 AND pub_date <= $2
	`

	var question models.Question
	err := r.db.QueryRow(ctx, query, id, now).Scan(
		&question.ID,
		&question.QuestionText,
		&question.PubDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	return &question, nil
}

// ListPublished retrieves published questions, newest first. Equal
// pub_dates fall back to insertion order so listings stay deterministic.
func (r *PostgresQuestionRepository) ListPublished(ctx context.Context, now time.Time, limit int) ([]*models.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE pub_date <= $1
		ORDER BY pub_date DESC, id ASC
	`

	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.Query(ctx, query+` LIMIT $2`, now, limit)
	} else {
		rows, err = r.db.Query(ctx, query, now)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListPublishedPage retrieves one page of published questions plus the
// total count of published questions.
func (r *PostgresQuestionRepository) ListPublishedPage(ctx context.Context, now time.Time, offset uint64, limit int) ([]*models.Question, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE pub_date <= $1`, now).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting questions: %w", err)
	}

	query := `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE pub_date <= $1
		ORDER BY pub_date DESC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, now, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// Update updates an existing question
func (r *PostgresQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	query := `
		UPDATE questions
		SET question_text = $1, pub_date = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, question.QuestionText, question.PubDate, question.ID)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// Delete deletes a question by ID. Choices are removed by the cascade.
func (r *PostgresQuestionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM questions WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// scanQuestions drains a question result set
func scanQuestions(rows pgx.Rows) ([]*models.Question, error) {
	var questions []*models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(
			&question.ID,
			&question.QuestionText,
			&question.PubDate,
		); err != nil {
			return nil, err
		}
		questions = append(questions, &question)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}
