package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteSchema mirrors the postgres migrations in sqlite dialect. It is
// applied unconditionally at open; every statement is idempotent.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS questions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question_text TEXT NOT NULL,
	pub_date TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS choices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
	choice_text TEXT NOT NULL,
	votes INTEGER NOT NULL DEFAULT 0,
	UNIQUE(question_id, choice_text)
);

CREATE INDEX IF NOT EXISTS idx_questions_pub_date ON questions(pub_date);
CREATE INDEX IF NOT EXISTS idx_choices_question_id ON choices(question_id);
`

// SQLiteDB database connection structure
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens a SQLite database at the given path and applies the
// schema. ":memory:" gives an ephemeral store that lives as long as the
// connection, which is what the test suites use.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A :memory: database exists per connection; more than one open
	// connection would each see an empty schema.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish sqlite connection: %w", err)
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLiteDB{DB: conn}, nil
}

// Close closing method
func (db *SQLiteDB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}
