// Package dbcipher copies a SQLite database while passing selected text
// columns through a cipher. With Atbash, running the copy a second time on
// the output restores the original values.
package dbcipher

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dyne/atbash/internal/config"
	"github.com/dyne/atbash/internal/log"
	"github.com/dyne/atbash/internal/schema"
	"github.com/dyne/atbash/internal/transform"
	_ "modernc.org/sqlite"
)

type Options struct {
	InPath   string
	OutPath  string
	Config   *config.Config
	FKMode   string
	Triggers string
	Jobs     int
	// AllText ciphers every text column of every included table that has
	// no explicit column configuration.
	AllText bool
	Logger  *log.Logger
}

type Stats struct {
	Tables int
	Rows   int64
	Values int64
}

func Run(ctx context.Context, opts Options) (Stats, error) {
	var stats Stats
	if opts.InPath == "" || opts.OutPath == "" {
		return stats, fmt.Errorf("input and output paths are required")
	}
	if samePath(opts.InPath, opts.OutPath) {
		return stats, fmt.Errorf("output must differ from input: %s", opts.OutPath)
	}
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	if opts.FKMode == "" {
		opts.FKMode = "on"
	}
	if _, err := os.Stat(opts.InPath); err != nil {
		return stats, fmt.Errorf("open input: %w", err)
	}
	if err := os.RemoveAll(opts.OutPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return stats, fmt.Errorf("remove output: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.OutPath), 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}

	inDB, err := sql.Open("sqlite", sqliteDSN(opts.InPath))
	if err != nil {
		return stats, fmt.Errorf("open input: %w", err)
	}
	defer inDB.Close()

	outDB, err := sql.Open("sqlite", sqliteDSN(opts.OutPath))
	if err != nil {
		return stats, fmt.Errorf("open output: %w", err)
	}
	defer outDB.Close()
	// PRAGMA foreign_keys is per connection
	outDB.SetMaxOpenConns(1)

	if err := setFKMode(ctx, outDB, opts.FKMode); err != nil {
		return stats, err
	}

	s, err := schema.Load(ctx, inDB)
	if err != nil {
		return stats, err
	}
	order := schema.TableOrder(s)
	if err := createSchema(ctx, outDB, s, order, opts); err != nil {
		return stats, err
	}
	for _, name := range order {
		if !TableIncluded(opts.Config, name) {
			opts.Logger.Infof("skip table %s", name)
			continue
		}
		tbl := s.Tables[name]
		if tbl == nil {
			continue
		}
		ciphers, err := ColumnCiphers(opts.Config, tbl, opts.AllText)
		if err != nil {
			return stats, err
		}
		for col, tr := range ciphers {
			if !transform.Involutive(tr) {
				opts.Logger.Warnf("%s.%s: cipher %s is not its own inverse; copying the output again will not restore it", name, col, tr.Name())
			}
		}
		opts.Logger.Infof("copy table %s (%d ciphered columns)", name, len(ciphers))
		rows, values, err := copyTable(ctx, inDB, outDB, tbl, ciphers, opts)
		if err != nil {
			return stats, err
		}
		stats.Tables++
		stats.Rows += rows
		stats.Values += values
	}
	if err := createPostDataSchema(ctx, outDB, s, opts); err != nil {
		return stats, err
	}
	opts.Logger.Infof("copy complete: %d tables, %d rows, %d values ciphered", stats.Tables, stats.Rows, stats.Values)
	return stats, nil
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000", path)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func setFKMode(ctx context.Context, db *sql.DB, mode string) error {
	mode = strings.ToLower(mode)
	switch mode {
	case "on", "off":
		_, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA foreign_keys = %s", strings.ToUpper(mode)))
		if err != nil {
			return fmt.Errorf("set foreign_keys: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("invalid fk mode: %s", mode)
	}
}

func createSchema(ctx context.Context, outDB *sql.DB, s *schema.Schema, order []string, opts Options) error {
	tx, err := outDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer tx.Rollback()
	for _, name := range order {
		if !TableIncluded(opts.Config, name) {
			continue
		}
		tbl := s.Tables[name]
		if tbl == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, tbl.SQL); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// createPostDataSchema recreates views, indexes and (optionally) triggers
// once the rows are in, so triggers do not fire on copied data.
func createPostDataSchema(ctx context.Context, outDB *sql.DB, s *schema.Schema, opts Options) error {
	tx, err := outDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin post-data tx: %w", err)
	}
	defer tx.Rollback()
	items := make([]schema.SQLItem, 0, len(s.Views)+len(s.Indexes)+len(s.Triggers))
	items = append(items, s.Views...)
	items = append(items, s.Indexes...)
	if strings.ToLower(opts.Triggers) != "off" {
		items = append(items, s.Triggers...)
	}
	for _, item := range items {
		if item.SQL == "" {
			continue
		}
		if item.Type != "view" && !TableIncluded(opts.Config, item.TableName) {
			continue
		}
		if _, err := tx.ExecContext(ctx, item.SQL); err != nil {
			return fmt.Errorf("create %s %s: %w", item.Type, item.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit post-data: %w", err)
	}
	return nil
}

// ColumnCiphers resolves the transformer for each ciphered column of tbl.
// Configured columns must exist in the table.
func ColumnCiphers(cfg *config.Config, tbl *schema.Table, allText bool) (map[string]transform.Transformer, error) {
	result := map[string]transform.Transformer{}
	var tc *config.TableConfig
	if cfg != nil {
		tc = cfg.Tables[tbl.Name]
	}
	if tc != nil && len(tc.Columns) > 0 {
		for col, colCfg := range tc.Columns {
			if !tbl.HasColumn(col) {
				return nil, fmt.Errorf("table %s has no column %s", tbl.Name, col)
			}
			tr, err := transform.Build(colCfg)
			if err != nil {
				return nil, fmt.Errorf("build cipher %s.%s: %w", tbl.Name, col, err)
			}
			if tr != nil {
				result[col] = tr
			}
		}
		return result, nil
	}
	if !allText {
		return result, nil
	}
	tr, err := transform.ByName(cfg.CipherName())
	if err != nil {
		return nil, err
	}
	for _, col := range tbl.TextColumns() {
		result[col] = tr
	}
	return result, nil
}

func TableIncluded(cfg *config.Config, name string) bool {
	if cfg == nil {
		return true
	}
	if len(cfg.IncludeTables) > 0 && !schema.MatchAny(cfg.IncludeTables, name) {
		return false
	}
	if schema.MatchAny(cfg.ExcludeTables, name) {
		return false
	}
	return true
}

func quotedCols(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, schema.QuoteIdent(c))
	}
	return out
}

func placeholders(n int) string {
	vals := make([]string, n)
	for i := range vals {
		vals[i] = "?"
	}
	return strings.Join(vals, ", ")
}

func sortedColumns(m map[string]transform.Transformer) []string {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
