// Package storage persists checklist documents on disk and keeps a sqlite
// journal of the edits applied to them.
package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one journal row. The journal is an audit trail only; entries are
// never replayed.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	File      string    `json:"file" yaml:"file"`
	Op        string    `json:"op" yaml:"op"`
	Args      string    `json:"args" yaml:"args"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

type Journal struct {
	db *sql.DB
}

func Open(dbPath string) (*Journal, error) {
	if dbPath == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	j := &Journal{db: db}
	if err := j.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS journal (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file TEXT NOT NULL,
	op TEXT NOT NULL,
	created_at TEXT NOT NULL
);`
	if _, err := j.db.Exec(ddl); err != nil {
		return err
	}
	return j.ensureColumns()
}

// ensureColumns backfills columns added after the first schema version.
func (j *Journal) ensureColumns() error {
	required := map[string]string{
		"args": "ALTER TABLE journal ADD COLUMN args TEXT NOT NULL DEFAULT '';",
	}
	existing := map[string]struct{}{}
	rows, err := j.db.Query(`PRAGMA table_info(journal);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := j.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

// Record appends an entry and returns its id.
func (j *Journal) Record(file, op, args string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := j.db.Exec(`INSERT INTO journal (file, op, args, created_at) VALUES (?, ?, ?, ?);`, file, op, args, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	query := `SELECT id, file, op, args, created_at FROM journal ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.Query(query+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdStr string
		if err := rows.Scan(&e.ID, &e.File, &e.Op, &e.Args, &createdStr); err != nil {
			return nil, err
		}
		if created, err := time.Parse(time.RFC3339Nano, createdStr); err == nil {
			e.CreatedAt = created
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
