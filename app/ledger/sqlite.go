package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteLedger keeps fingerprints in a SQLite database. Rows are only ever
// inserted; as with the text ledger, a missing database file at startup
// means this is the first run.
type SQLiteLedger struct {
	db           *sql.DB
	firstRun     bool
	fingerprints []string
}

func OpenSQLite(path string) (*SQLiteLedger, error) {
	firstRun := !exists(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger database: %w", err)
	}

	if _, dirty, err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	} else if dirty {
		db.Close()
		return nil, fmt.Errorf("ledger database schema is dirty")
	}

	fingerprints, err := loadFingerprints(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteLedger{db: db, firstRun: firstRun, fingerprints: fingerprints}, nil
}

// readSQLite loads the fingerprints of an existing database opened in
// read-only mode. Migrations are not run; a database without the
// fingerprints table yields nothing.
func readSQLite(path string) ([]string, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	defer db.Close()

	var tables int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'fingerprints'`).Scan(&tables)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect ledger database: %w", err)
	}
	if tables == 0 {
		return nil, nil
	}

	return loadFingerprints(db)
}

func loadFingerprints(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT fingerprint FROM fingerprints ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load fingerprints: %w", err)
	}
	defer rows.Close()

	var fingerprints []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint row: %w", err)
		}
		fingerprints = append(fingerprints, fp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fingerprint rows: %w", err)
	}

	return fingerprints, nil
}

func (l *SQLiteLedger) Fingerprints() []string {
	out := make([]string, len(l.fingerprints))
	copy(out, l.fingerprints)
	return out
}

func (l *SQLiteLedger) FirstRun() bool {
	return l.firstRun
}

func (l *SQLiteLedger) Append(fingerprint string) error {
	_, err := l.db.Exec(`
		INSERT INTO fingerprints (fingerprint, recorded_at)
		VALUES (?, ?)
		ON CONFLICT (fingerprint) DO NOTHING
	`, fingerprint, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append fingerprint: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
