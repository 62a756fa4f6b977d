package plan

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"

	"github.com/dyne/atbash/internal/config"
	"github.com/dyne/atbash/internal/dbcipher"
	"github.com/dyne/atbash/internal/log"
	"github.com/dyne/atbash/internal/schema"
	"github.com/dyne/atbash/internal/transform"
	_ "modernc.org/sqlite"
)

// Run prints, per table in copy order, the cipher each column would get.
func Run(ctx context.Context, inPath string, cfg *config.Config, allText bool, w io.Writer, logger *log.Logger) error {
	if cfg == nil {
		cfg = &config.Config{}
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_busy_timeout=5000", inPath))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer db.Close()

	s, err := schema.Load(ctx, db)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Plan:")
	for _, name := range schema.TableOrder(s) {
		if !dbcipher.TableIncluded(cfg, name) {
			fmt.Fprintf(w, "- %s (skipped)\n", name)
			continue
		}
		fmt.Fprintf(w, "- %s\n", name)
		ciphers, err := dbcipher.ColumnCiphers(cfg, s.Tables[name], allText)
		if err != nil {
			return err
		}
		if len(ciphers) == 0 {
			fmt.Fprintln(w, "  (no ciphers)")
			continue
		}
		cols := make([]string, 0, len(ciphers))
		for c := range ciphers {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			tr := ciphers[c]
			suffix := ""
			if !transform.Involutive(tr) {
				suffix = " (one-way)"
			}
			fmt.Fprintf(w, "  - %s: %s%s\n", c, tr.Name(), suffix)
		}
	}
	logger.Infof("plan complete")
	return nil
}
