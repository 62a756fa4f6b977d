package schema

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"sort"
	"strings"
)

type Schema struct {
	Tables   map[string]*Table
	Views    []SQLItem
	Indexes  []SQLItem
	Triggers []SQLItem
}

type SQLItem struct {
	Name      string
	TableName string
	SQL       string
	Type      string
}

type Table struct {
	Name         string
	SQL          string
	Columns      []Column
	PrimaryKeys  []string
	ForeignKeys  []ForeignKey
	WithoutRowID bool
}

type Column struct {
	Name       string
	Type       string
	NotNull    bool
	DefaultSQL *string
	PK         bool
}

// IsText reports whether the declared type has TEXT affinity, or no type
// at all, in which case SQLite stores strings as given.
func (c Column) IsText() bool {
	t := strings.ToUpper(c.Type)
	if t == "" {
		return true
	}
	if strings.Contains(t, "INT") {
		return false
	}
	return strings.Contains(t, "CHAR") || strings.Contains(t, "CLOB") || strings.Contains(t, "TEXT")
}

func (t *Table) TextColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if c.IsText() && !c.PK {
			out = append(out, c.Name)
		}
	}
	return out
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

type ForeignKey struct {
	ID       int
	Seq      int
	Table    string
	From     string
	To       string
	OnUpdate string
	OnDelete string
}

func Load(ctx context.Context, db *sql.DB) (*Schema, error) {
	s := &Schema{Tables: map[string]*Table{}}
	rows, err := db.QueryContext(ctx, `SELECT name, tbl_name, type, sql FROM sqlite_master WHERE name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite_master: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, tblName, typ string
		var sqlText sql.NullString
		if err := rows.Scan(&name, &tblName, &typ, &sqlText); err != nil {
			return nil, fmt.Errorf("scan sqlite_master: %w", err)
		}
		item := SQLItem{Name: name, TableName: tblName, SQL: sqlText.String, Type: typ}
		switch typ {
		case "table":
			if !sqlText.Valid {
				continue
			}
			tbl := &Table{Name: name, SQL: sqlText.String}
			tbl.WithoutRowID = strings.Contains(strings.ToUpper(sqlText.String), "WITHOUT ROWID")
			cols, pkCols, err := loadTableInfo(ctx, db, name)
			if err != nil {
				return nil, err
			}
			fks, err := loadForeignKeys(ctx, db, name)
			if err != nil {
				return nil, err
			}
			tbl.Columns = cols
			tbl.PrimaryKeys = pkCols
			tbl.ForeignKeys = fks
			s.Tables[name] = tbl
		case "index":
			s.Indexes = append(s.Indexes, item)
		case "trigger":
			s.Triggers = append(s.Triggers, item)
		case "view":
			s.Views = append(s.Views, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sqlite_master: %w", err)
	}
	return s, nil
}

func loadTableInfo(ctx context.Context, db *sql.DB, table string) ([]Column, []string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdent(table)))
	if err != nil {
		return nil, nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()
	var cols []Column
	pkMap := map[int]string{}
	for rows.Next() {
		var cid int
		var name, colType string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &colType, &notnull, &dflt, &pk); err != nil {
			return nil, nil, fmt.Errorf("scan table_info %s: %w", table, err)
		}
		col := Column{Name: name, Type: colType, NotNull: notnull == 1, PK: pk > 0}
		if dflt.Valid {
			col.DefaultSQL = &dflt.String
		}
		cols = append(cols, col)
		if pk > 0 {
			pkMap[pk] = name
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate table_info %s: %w", table, err)
	}
	var pkCols []string
	if len(pkMap) > 0 {
		keys := make([]int, 0, len(pkMap))
		for k := range pkMap {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			pkCols = append(pkCols, pkMap[k])
		}
	}
	return cols, pkCols, nil
}

func loadForeignKeys(ctx context.Context, db *sql.DB, table string) ([]ForeignKey, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", QuoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("foreign_key_list %s: %w", table, err)
	}
	defer rows.Close()
	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		var id, seq int
		if err := rows.Scan(&id, &seq, &fk.Table, &fk.From, &fk.To, &fk.OnUpdate, &fk.OnDelete, new(string)); err != nil {
			return nil, fmt.Errorf("scan foreign_key_list %s: %w", table, err)
		}
		fk.ID = id
		fk.Seq = seq
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign_key_list %s: %w", table, err)
	}
	return fks, nil
}

func QuoteIdent(name string) string {
	escaped := strings.ReplaceAll(name, "\"", "\"\"")
	return "\"" + escaped + "\""
}

// MatchAny reports whether name matches one of the glob patterns.
func MatchAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return false
	}
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// TableOrder returns table names with referenced tables before the tables
// that point at them, so rows can be copied with foreign keys enforced.
func TableOrder(s *Schema) []string {
	graph := map[string][]string{}
	indeg := map[string]int{}
	for name := range s.Tables {
		indeg[name] = 0
	}
	for name, tbl := range s.Tables {
		for _, fk := range tbl.ForeignKeys {
			if _, ok := s.Tables[fk.Table]; !ok {
				continue
			}
			graph[fk.Table] = append(graph[fk.Table], name)
			indeg[name]++
		}
	}
	var queue []string
	for name, deg := range indeg {
		if deg == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)
	var order []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, dep := range graph[n] {
			indeg[dep]--
			if indeg[dep] == 0 {
				queue = append(queue, dep)
			}
		}
		sort.Strings(queue)
	}
	if len(order) != len(s.Tables) {
		// tables caught in a foreign key cycle go last, by name
		seen := make(map[string]bool, len(order))
		for _, o := range order {
			seen[o] = true
		}
		var cyclic []string
		for name := range s.Tables {
			if !seen[name] {
				cyclic = append(cyclic, name)
			}
		}
		sort.Strings(cyclic)
		order = append(order, cyclic...)
	}
	return order
}
