package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/dyne/atbash/internal/atbash"
	"github.com/dyne/atbash/internal/log"
	"github.com/dyne/atbash/internal/schema"
	_ "modernc.org/sqlite"
)

// sampleRows bounds how many values per column are checked for letters.
const sampleRows = 200

func Run(ctx context.Context, inPath string, w io.Writer, logger *log.Logger) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_busy_timeout=5000", inPath))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer db.Close()

	s, err := schema.Load(ctx, db)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Tables:")
	for _, name := range schema.TableOrder(s) {
		tbl := s.Tables[name]
		if tbl == nil {
			continue
		}
		count, err := rowCount(ctx, db, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "- %s (%d rows)\n", name, count)
		candidates, err := cipherCandidates(ctx, db, tbl)
		if err != nil {
			return err
		}
		if len(candidates) > 0 {
			fmt.Fprintf(w, "  cipher candidates: %s\n", strings.Join(candidates, ", "))
		}
	}
	logger.Infof("inspect complete")
	return nil
}

func rowCount(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(1) FROM %s", schema.QuoteIdent(table))
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// cipherCandidates returns the text columns whose sampled values contain
// Latin or Hangul letters.
func cipherCandidates(ctx context.Context, db *sql.DB, tbl *schema.Table) ([]string, error) {
	var out []string
	for _, col := range tbl.TextColumns() {
		ok, err := hasLetters(ctx, db, tbl.Name, col)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, col)
		}
	}
	return out, nil
}

func hasLetters(ctx context.Context, db *sql.DB, table, col string) (bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL LIMIT %d", schema.QuoteIdent(col), schema.QuoteIdent(table), schema.QuoteIdent(col), sampleRows)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("sample %s.%s: %w", table, col, err)
	}
	defer rows.Close()
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return false, fmt.Errorf("scan %s.%s: %w", table, col, err)
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case []byte:
			s = string(t)
		default:
			continue
		}
		if atbash.HasLetters(s) {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterate %s.%s: %w", table, col, err)
	}
	return false, nil
}
