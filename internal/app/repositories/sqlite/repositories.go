// Package sqlite provides database/sql implementations of the
// repository contracts backed by SQLite. They serve the sqlite driver
// configuration and the test suites, which run against an in-memory
// database so every test starts from an empty store.
package sqlite

import (
	"database/sql"

	"github.com/alpersoy/polls/internal/app/repositories"
)

// NewRepositories initializes the sqlite-backed repositories
func NewRepositories(db *sql.DB) *repositories.Repositories {
	return &repositories.Repositories{
		QuestionRepository: NewQuestionRepository(db),
		ChoiceRepository:   NewChoiceRepository(db),
	}
}
