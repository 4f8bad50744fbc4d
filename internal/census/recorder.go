package census

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const createTables = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	rows             INTEGER NOT NULL,
	cols             INTEGER NOT NULL,
	seeding          TEXT NOT NULL,
	seed             INTEGER NOT NULL,
	level            REAL NOT NULL,
	outcome          TEXT NOT NULL,
	period           INTEGER NOT NULL,
	generations      INTEGER NOT NULL,
	initial_pop      INTEGER NOT NULL,
	final_population INTEGER NOT NULL,
	peak_population  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id     TEXT NOT NULL,
	generation INTEGER NOT NULL,
	population INTEGER NOT NULL
);`

var errClosed = errors.New("recorder is closed")

// SQLiteRecorder buffers samples and writes them to a SQLite database in
// batches.
type SQLiteRecorder struct {
	sync.Mutex
	db        *sql.DB
	path      string
	batchSize int
	pending   []Sample
	runs      int
	samples   int
}

// DefaultDBName returns a fresh database file name.
func DefaultDBName() string {
	return "life_census_" + xid.New().String() + ".sqlite3"
}

// NewSQLiteRecorder creates the database at path and its tables. It refuses
// to reuse an existing file.
func NewSQLiteRecorder(path string, batchSize int) (*SQLiteRecorder, error) {
	if path == "" {
		path = DefaultDBName()
	}
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Errorf("[NewSQLiteRecorder] file %s already exists", path)
	}
	if batchSize <= 0 {
		batchSize = 10000
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewSQLiteRecorder] failed to open %s", path)
	}
	if _, err := db.Exec(createTables); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "[NewSQLiteRecorder] failed to create tables")
	}

	return &SQLiteRecorder{db: db, path: path, batchSize: batchSize}, nil
}

// Path returns the database file name.
func (r *SQLiteRecorder) Path() string { return r.path }

// Record buffers s and flushes when the batch is full.
func (r *SQLiteRecorder) Record(s Sample) error {
	r.Lock()
	defer r.Unlock()

	if r.db == nil {
		return errClosed
	}
	r.pending = append(r.pending, s)
	if len(r.pending) >= r.batchSize {
		return r.flushLocked()
	}
	return nil
}

// Finish writes the run summary.
func (r *SQLiteRecorder) Finish(res Result) error {
	r.Lock()
	defer r.Unlock()

	if r.db == nil {
		return errClosed
	}
	_, err := r.db.Exec(
		`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Job.ID, res.Job.Dims.Rows, res.Job.Dims.Cols, string(res.Job.Seeding),
		res.Job.Seed, res.Job.Level, string(res.Outcome), res.Period,
		res.Generations, res.InitialPop, res.FinalPopulation, res.PeakPopulation,
	)
	if err != nil {
		return errors.Wrapf(err, "[Finish] failed to insert run %s", res.Job.ID)
	}
	r.runs++
	return nil
}

// Flush writes buffered samples in one transaction.
func (r *SQLiteRecorder) Flush() error {
	r.Lock()
	defer r.Unlock()
	return r.flushLocked()
}

func (r *SQLiteRecorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}
	if r.db == nil {
		return errClosed
	}

	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "[Flush] failed to begin transaction")
	}
	stmt, err := tx.Prepare(`INSERT INTO samples VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "[Flush] failed to prepare insert")
	}
	defer stmt.Close()

	for _, s := range r.pending {
		if _, err := stmt.Exec(s.RunID, s.Generation, s.Population); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "[Flush] failed to insert sample for %s", s.RunID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "[Flush] failed to commit")
	}

	r.samples += len(r.pending)
	r.pending = r.pending[:0]
	return nil
}

// Close flushes and closes the database. It is safe to call twice.
func (r *SQLiteRecorder) Close() error {
	r.Lock()
	defer r.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.flushLocked()
	if cerr := r.db.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "[Close] failed to close database")
	}
	r.db = nil
	return err
}

// String reports how much has been written.
func (r *SQLiteRecorder) String() string {
	r.Lock()
	defer r.Unlock()
	return fmt.Sprintf("%s: %d runs, %d samples", r.path, r.runs, r.samples)
}

// MemoryRecorder keeps everything in memory.
type MemoryRecorder struct {
	sync.Mutex
	Samples []Sample
	Results []Result
}

// Record appends s.
func (m *MemoryRecorder) Record(s Sample) error {
	m.Lock()
	defer m.Unlock()
	m.Samples = append(m.Samples, s)
	return nil
}

// Finish appends r.
func (m *MemoryRecorder) Finish(r Result) error {
	m.Lock()
	defer m.Unlock()
	m.Results = append(m.Results, r)
	return nil
}
