package store

// runMigrations creates the schema. Statements are idempotent.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Tuning overrides, one row per dotted key such as "visual.glow_rotating".
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// One row per run of the tree.
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			ticks INTEGER NOT NULL DEFAULT 0,
			hand_ticks INTEGER NOT NULL DEFAULT 0,
			pinch_ticks INTEGER NOT NULL DEFAULT 0,
			rotating_ticks INTEGER NOT NULL DEFAULT 0,
			peak_speed REAL NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
