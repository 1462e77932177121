package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alpersoy/polls/internal/app/models"
)

// QuestionRepository is the data access contract for poll questions.
// The postgres implementation lives in this package, the sqlite one in
// the sqlite subpackage; both honor the same publication semantics:
// a question is visible iff its pub_date is at or before the supplied
// instant.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	GetPublishedByID(ctx context.Context, id int64, now time.Time) (*models.Question, error)
	// ListPublished returns published questions ordered by pub_date
	// descending, id ascending. limit <= 0 means no limit.
	ListPublished(ctx context.Context, now time.Time, limit int) ([]*models.Question, error)
	// ListPublishedPage returns one page of published questions in the
	// same order together with the total number of published questions.
	ListPublishedPage(ctx context.Context, now time.Time, offset uint64, limit int) ([]*models.Question, int64, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int64) error
}

// ChoiceRepository is the data access contract for question choices.
type ChoiceRepository interface {
	Create(ctx context.Context, choice *models.Choice) error
	GetByID(ctx context.Context, id int64) (*models.Choice, error)
	ListByQuestionID(ctx context.Context, questionID int64) ([]*models.Choice, error)
	// Vote increments the vote count of the choice. The choice must
	// belong to the given question.
	Vote(ctx context.Context, questionID, choiceID int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	QuestionRepository QuestionRepository
	ChoiceRepository   ChoiceRepository
}

// NewRepositories initializes the postgres-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		QuestionRepository: NewQuestionRepository(db),
		ChoiceRepository:   NewChoiceRepository(db),
	}
}
