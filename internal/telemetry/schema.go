package telemetry

import (
	"database/sql"

	"codeberg.org/veska/keywatch/internal/errors"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS snapshots (
            timestamp INTEGER PRIMARY KEY,
            total_keystrokes INTEGER,
            keystrokes_per_minute REAL,
            peak_hour INTEGER,
            peak_count INTEGER,
            duration_hours REAL
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}
