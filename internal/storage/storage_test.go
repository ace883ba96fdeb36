package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tickmd/internal/checklist"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "todo.md"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "todo.md")
	c := checklist.New()
	c.Add("Task 1")
	c.Add("Task 2")
	c.Do(checklist.Index(2))

	if err := Dump(path, c); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "- [ ] Task 1\n- [x] Task 2\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Serialize() != c.Serialize() {
		t.Errorf("Load() = %q, want %q", got.Serialize(), c.Serialize())
	}
}

func TestDumpEmptyWritesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	if err := Dump(path, checklist.New()); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("file = %q, want empty", data)
	}
}

func TestDumpLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c := checklist.New()
	c.Add("x")
	if err := Dump(filepath.Join(dir, "todo.md"), c); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestDumpKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	if err := os.WriteFile(path, []byte("- [ ] a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c := checklist.New()
	c.Add("b")
	if err := Dump(path, c); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}
}

func TestDumpThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	realPath := filepath.Join(dir, "real.md")
	link := filepath.Join(dir, "todo.md")
	if err := os.WriteFile(realPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(realPath, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	c := checklist.New()
	c.Add("via link")
	if err := Dump(link, c); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("todo.md was replaced by a regular file")
	}
	data, err := os.ReadFile(realPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "- [ ] via link\n" {
		t.Errorf("real.md = %q", data)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	if err := os.WriteFile(path, []byte("- [ ] ok\nnot a task\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var perr *checklist.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want *checklist.ParseError", err)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestJournalRecordAndRecent(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer j.Close()

	for _, op := range []string{"add", "do", "rm"} {
		if _, err := j.Record("/tmp/todo.md", op, "1"); err != nil {
			t.Fatalf("Record(%s) error = %v", op, err)
		}
	}

	entries, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Op != "rm" || entries[1].Op != "do" {
		t.Errorf("ops = %s,%s, want rm,do", entries[0].Op, entries[1].Op)
	}
	if entries[0].File != "/tmp/todo.md" || entries[0].Args != "1" {
		t.Errorf("entry = %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	all, err := j.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestJournalBackfillsArgsColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`CREATE TABLE journal (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file TEXT NOT NULL,
	op TEXT NOT NULL,
	created_at TEXT NOT NULL
);`)
	if err == nil {
		_, err = db.Exec(`INSERT INTO journal (file, op, created_at) VALUES ('a.md', 'add', '2024-01-02T03:04:05Z');`)
	}
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer j.Close()
	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Args != "" || entries[0].Op != "add" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
