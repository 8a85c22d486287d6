package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"quizcrafter/models"
)

// Migration is either a schema-defining script or an arbitrary data-shaping
// procedure, identified by a monotonically increasing id. Applied ids are
// recorded in the schema_migrations ledger and never re-run.
type Migration struct {
	ID  int
	SQL string
	Run func(tx *gorm.DB) error
}

var migrations = []Migration{
	{
		ID: 1,
		SQL: `
			CREATE TABLE IF NOT EXISTS quizzes (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS questions (
				id TEXT PRIMARY KEY,
				quiz_id TEXT NOT NULL,
				text TEXT NOT NULL,
				order_index INTEGER NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				FOREIGN KEY (quiz_id) REFERENCES quizzes(id) ON DELETE CASCADE
			);

			CREATE TABLE IF NOT EXISTS options (
				id TEXT PRIMARY KEY,
				question_id TEXT NOT NULL,
				text TEXT NOT NULL,
				is_correct INTEGER NOT NULL DEFAULT 0,
				order_index INTEGER NOT NULL,
				FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
			);

			CREATE TABLE IF NOT EXISTS results (
				id TEXT PRIMARY KEY,
				quiz_id TEXT NOT NULL,
				created_at TEXT NOT NULL,
				correct_count INTEGER NOT NULL,
				total_count INTEGER NOT NULL,
				FOREIGN KEY (quiz_id) REFERENCES quizzes(id) ON DELETE CASCADE
			);

			CREATE TABLE IF NOT EXISTS result_answers (
				id TEXT PRIMARY KEY,
				result_id TEXT NOT NULL,
				question_id TEXT NOT NULL,
				selected_option_id TEXT,
				correct_option_id TEXT NOT NULL,
				is_correct INTEGER NOT NULL,
				FOREIGN KEY (result_id) REFERENCES results(id) ON DELETE CASCADE,
				FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE,
				FOREIGN KEY (selected_option_id) REFERENCES options(id) ON DELETE SET NULL,
				FOREIGN KEY (correct_option_id) REFERENCES options(id) ON DELETE CASCADE
			);

			CREATE INDEX IF NOT EXISTS idx_questions_quiz_id ON questions(quiz_id, order_index);
			CREATE INDEX IF NOT EXISTS idx_options_question_id ON options(question_id, order_index);
			CREATE INDEX IF NOT EXISTS idx_results_quiz_id ON results(quiz_id, created_at);
			CREATE INDEX IF NOT EXISTS idx_result_answers_result_id ON result_answers(result_id);
		`,
	},
	{
		ID: 2,
		Run: func(tx *gorm.DB) error {
			// Older databases predate the description column.
			if tx.Migrator().HasColumn(&models.Quiz{}, "description") {
				return nil
			}
			return tx.Exec("ALTER TABLE quizzes ADD COLUMN description TEXT").Error
		},
	},
}

// Migrate brings the schema up to the latest known version. It is safe to
// call on every startup: already-applied migrations are skipped, and each
// pending migration commits atomically together with its ledger row, so a
// failure leaves the ledger pointing at the last fully applied migration.
func Migrate(db *gorm.DB) error {
	err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		id INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`).Error
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var appliedIDs []int
	if err := db.Table("schema_migrations").Pluck("id", &appliedIDs).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[int]struct{}, len(appliedIDs))
	for _, id := range appliedIDs {
		applied[id] = struct{}{}
	}

	now := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	for _, migration := range migrations {
		if _, ok := applied[migration.ID]; ok {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if migration.SQL != "" {
				if err := tx.Exec(migration.SQL).Error; err != nil {
					return err
				}
			}
			if migration.Run != nil {
				if err := migration.Run(tx); err != nil {
					return err
				}
			}
			return tx.Exec(
				"INSERT INTO schema_migrations (id, applied_at) VALUES (?, ?)",
				migration.ID, now,
			).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %d: %w", migration.ID, err)
		}
	}

	return nil
}
