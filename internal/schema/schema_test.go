package schema

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"
)

func TestLoadAndOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "schema.sqlite")
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	stmts := []string{
		`CREATE TABLE comments (id INTEGER PRIMARY KEY, note_id INTEGER REFERENCES notes(id), body TEXT)`,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, title VARCHAR(80), body TEXT, score REAL, raw BLOB, misc)`,
		`CREATE INDEX notes_title ON notes(title)`,
		`CREATE VIEW titles AS SELECT title FROM notes`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	s, err := Load(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if got := TableOrder(s); !reflect.DeepEqual(got, []string{"notes", "comments"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	notes := s.Tables["notes"]
	if !reflect.DeepEqual(notes.PrimaryKeys, []string{"id"}) {
		t.Fatalf("unexpected pk: %v", notes.PrimaryKeys)
	}
	if got := notes.TextColumns(); !reflect.DeepEqual(got, []string{"title", "body", "misc"}) {
		t.Fatalf("unexpected text columns: %v", got)
	}
	if !notes.HasColumn("raw") || notes.HasColumn("nope") {
		t.Fatal("HasColumn mismatch")
	}
	if len(s.Indexes) != 1 || len(s.Views) != 1 {
		t.Fatalf("unexpected indexes/views: %d/%d", len(s.Indexes), len(s.Views))
	}
}

func TestMatchAny(t *testing.T) {
	if !MatchAny([]string{"note*"}, "notes") {
		t.Fatal("expected glob match")
	}
	if MatchAny(nil, "notes") || MatchAny([]string{"x"}, "notes") {
		t.Fatal("unexpected match")
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := QuoteIdent(`a"b`); got != `"a""b"` {
		t.Fatalf("unexpected quoting: %s", got)
	}
}
