package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/repositories"
)

// QuestionRepository handles question persistence on SQLite
type QuestionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new sqlite question repository
func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{
		db: db,
	}
}

// Create creates a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	// Timestamps are stored in UTC so the driver's text encoding
	// compares correctly in SQL.
	question.PubDate = question.PubDate.UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (question_text, pub_date) VALUES (?, ?)`,
		question.QuestionText, question.PubDate)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading inserted question id: %w", err)
	}
	question.ID = id

	return nil
}

// GetByID retrieves a question by ID regardless of publication state
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question_text, pub_date FROM questions WHERE id = ?`, id)

	return scanQuestionRow(row)
}

// GetPublishedByID retrieves a question by ID, treating questions with a
// pub_date after now as nonexistent.
func (r *QuestionRepository) GetPublishedByID(ctx context.Context, id int64, now time.Time) (*models.Question, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question_text, pub_date FROM questions WHERE id = ? AND pub_date <= ?`,
		id, now.UTC())

	return scanQuestionRow(row)
}

// ListPublished retrieves published questions, newest first with
// insertion order as tie-break. limit <= 0 means no limit.
func (r *QuestionRepository) ListPublished(ctx context.Context, now time.Time, limit int) ([]*models.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE pub_date <= ?
		ORDER BY pub_date DESC, id ASC
	`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT ?`, now.UTC(), limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query, now.UTC())
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListPublishedPage retrieves one page of published questions plus the
// total count of published questions.
func (r *QuestionRepository) ListPublishedPage(ctx context.Context, now time.Time, offset uint64, limit int) ([]*models.Question, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE pub_date <= ?`, now.UTC()).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting questions: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM questions
		WHERE pub_date <= ?
		ORDER BY pub_date DESC, id ASC
		LIMIT ? OFFSET ?`,
		now.UTC(), limit, offset)
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
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	question.PubDate = question.PubDate.UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE questions SET question_text = ?, pub_date = ? WHERE id = ?`,
		question.QuestionText, question.PubDate, question.ID)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repositories.ErrQuestionNotFound
	}

	return nil
}

// Delete deletes a question by ID. Choices are removed by the cascade.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repositories.ErrQuestionNotFound
	}

	return nil
}

// scanQuestionRow scans a single question row, mapping sql.ErrNoRows to
// the repository sentinel.
func scanQuestionRow(row *sql.Row) (*models.Question, error) {
	var question models.Question
	err := row.Scan(
		&question.ID,
		&question.QuestionText,
		&question.PubDate,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	return &question, nil
}

// scanQuestions drains a question result set
func scanQuestions(rows *sql.Rows) ([]*models.Question, error) {
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
