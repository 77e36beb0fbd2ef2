package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/titlescan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/normalisers/landrecord"
)

// DBFileName is the database file created in the data directory.
const DBFileName = "records.db"

// Store is a SQLite-based record snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.titlescan/data/records.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".titlescan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s, normaliser: landrecord.New()}
}

// migrate applies every .up.sql migration newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store      *Store
	normaliser *landrecord.Normaliser
}

var _ driven.RecordStore = (*recordStore)(nil)

// Name identifies the source for logging.
func (r *recordStore) Name() string {
	return "sqlite:" + r.store.path
}

// Import upserts records in a single transaction.
func (r *recordStore) Import(ctx context.Context, raws []domain.RawRecord) (int, error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (record_key, instrument_number, record_timestamp, doc_type_short, parties, source, fields)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_key) DO UPDATE SET
			instrument_number = excluded.instrument_number,
			record_timestamp = excluded.record_timestamp,
			doc_type_short = excluded.doc_type_short,
			parties = excluded.parties,
			source = excluded.source,
			fields = excluded.fields,
			imported_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing import: %w", err)
	}
	defer stmt.Close()

	for i, raw := range raws {
		fieldsJSON, err := json.Marshal(raw.Fields)
		if err != nil {
			return 0, fmt.Errorf("marshalling record %d: %w", i, err)
		}
		doc := r.normaliser.Normalise(raw)
		_, err = stmt.ExecContext(ctx,
			landrecord.RecordKey(raw),
			doc.InstrumentNumber,
			doc.RecordTimestamp,
			doc.DocTypeShort,
			partiesOf(doc),
			raw.Source,
			string(fieldsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(raws), nil
}

// Search returns records whose party names contain owner, in import order.
func (r *recordStore) Search(ctx context.Context, owner string) ([]domain.RawRecord, error) {
	pattern := "%" + escapeLike(strings.ToUpper(strings.TrimSpace(owner))) + "%"

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT source, fields FROM records
		WHERE parties LIKE ? ESCAPE '\'
		ORDER BY rowid
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: querying records: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	out := []domain.RawRecord{}
	for rows.Next() {
		var source, fieldsJSON string
		if err := rows.Scan(&source, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, fmt.Errorf("unmarshalling record: %w", err)
		}
		out = append(out, domain.RawRecord{Source: source, Fields: fields})
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (r *recordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// partiesOf joins upper-cased grantor and grantee names, one per line.
func partiesOf(doc domain.Document) string {
	names := make([]string, 0, len(doc.Grantors)+len(doc.Grantees))
	for _, n := range doc.Grantors {
		names = append(names, strings.ToUpper(n))
	}
	for _, n := range doc.Grantees {
		names = append(names, strings.ToUpper(n))
	}
	return strings.Join(names, "\n")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
